package invoker

import "log/slog"

// Mode selects which domain-membership operation a Request performs.
type Mode int

const (
	ModeJoin Mode = iota
	ModeUnjoin
)

// String implements the fmt.Stringer interface for Mode.
func (m Mode) String() string {
	if m == ModeUnjoin {
		return "unjoin"
	}
	return "join"
}

// Request is the flat record resolved from the command line and profiles.
type Request struct {
	Host     string
	User     string
	Password string
	OU       string
	Domain   string
	Unjoin   bool
}

// Mode returns the operation the request selects.
func (r Request) Mode() Mode {
	if r.Unjoin {
		return ModeUnjoin
	}
	return ModeJoin
}

type field struct {
	name  string
	value string
}

// Validate checks that every field required by the selected mode is set.
// Missing fields are reported by their flag names.
func (r Request) Validate() error {
	required := []field{{"user", r.User}, {"pass", r.Password}}
	if !r.Unjoin {
		required = append(required, field{"ou", r.OU}, field{"domain", r.Domain})
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Mode: r.Mode(), Missing: missing}
	}
	return nil
}

// LogValue implements slog.LogValuer. The password is never emitted.
func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", r.Mode().String()),
		slog.String("host", r.Host),
		slog.String("user", r.User),
		slog.Bool("password_set", r.Password != ""),
		slog.String("ou", r.OU),
		slog.String("domain", r.Domain),
	)
}
