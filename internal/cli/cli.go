package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/kcjoin/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type boolFlag interface {
	IsBoolFlag() bool
}

// Parse resolves command-line arguments into an app.Config. It returns a
// boolean indicating if the program should exit cleanly (help was
// requested), or an ExitError for invalid ambient settings.
//
// Every token is matched on its own against the flag grammar: value flags
// need the combined "-name=value" form and switches must be bare. Tokens
// that do not match are skipped without error, and a repeated flag keeps
// its last value.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("kcjoin", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
kcjoin - join or leave an Active Directory domain, optionally renaming the host first.

Usage:
  kcjoin -user=USER -pass=PASSWORD -ou=OU -domain=DOMAIN [-host=NAME]
  kcjoin -unjoin -user=USER -pass=PASSWORD [-host=NAME]

Options:
`)
		flagSet.PrintDefaults()
	}

	var cfg app.Config
	flagSet.StringVar(&cfg.Request.Host, "host", "", "New computer name to apply before joining or unjoining.")
	flagSet.StringVar(&cfg.Request.User, "user", "", "Account used to perform the operation (required).")
	flagSet.StringVar(&cfg.Request.Password, "pass", "", "Password of the account (required).")
	flagSet.StringVar(&cfg.Request.OU, "ou", "", "Organizational unit for the computer account (required to join).")
	flagSet.StringVar(&cfg.Request.Domain, "domain", "", "Domain to join (required to join).")
	flagSet.BoolVar(&cfg.Request.Unjoin, "unjoin", false, "Leave the current domain instead of joining one.")
	flagSet.StringVar(&cfg.ProfilePath, "profile", "", "HCL profile file or directory supplying default values.")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&cfg.LogLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	for _, arg := range args {
		name, value, hasValue, ok := splitToken(arg)
		if !ok {
			slog.Debug("Skipping positional argument.")
			continue
		}
		if (name == "h" || name == "help") && !hasValue {
			flagSet.Usage()
			return nil, true, nil
		}

		f := flagSet.Lookup(name)
		if f == nil {
			slog.Debug("Skipping unknown flag.", "flag", name)
			continue
		}
		if bf, isBool := f.Value.(boolFlag); isBool && bf.IsBoolFlag() {
			if hasValue {
				slog.Debug("Skipping switch given a value.", "flag", name)
				continue
			}
			value = "true"
		} else if !hasValue {
			slog.Debug("Skipping flag without a combined value.", "flag", name)
			continue
		}

		if err := flagSet.Set(name, value); err != nil {
			slog.Debug("Skipping malformed flag.", "flag", name, "error", err)
		}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// splitToken breaks an option token into its name and optional combined
// value. Options start with "-", "--" or "/". ok is false for anything else.
func splitToken(arg string) (name, value string, hasValue, ok bool) {
	var body string
	switch {
	case strings.HasPrefix(arg, "--"):
		body = arg[2:]
	case strings.HasPrefix(arg, "-"), strings.HasPrefix(arg, "/"):
		body = arg[1:]
	default:
		return "", "", false, false
	}

	name, value, hasValue = strings.Cut(body, "=")
	if name == "" {
		return "", "", false, false
	}
	return name, value, hasValue, true
}
