package invoker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/kcjoin/internal/membership"
)

// ValidationError reports required fields missing for the selected mode.
// No privileged call has been made when it is returned.
type ValidationError struct {
	Mode    Mode
	Missing []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required argument(s) for %s: %s", e.Mode, "-"+strings.Join(e.Missing, ", -"))
}

// osFailure holds the platform status shared by the operation errors.
type osFailure struct {
	Code    uint32
	Message string
	Err     error
}

func newOSFailure(err error) osFailure {
	f := osFailure{Err: err}
	var statusErr *membership.StatusError
	if errors.As(err, &statusErr) {
		f.Code = statusErr.Code
		f.Message = statusErr.Message
	} else {
		f.Message = err.Error()
	}
	return f
}

func (f osFailure) String() string {
	return fmt.Sprintf("error %d: %s", f.Code, f.Message)
}

// RenameError reports a failed host rename. No domain call follows it.
type RenameError struct {
	Host string
	osFailure
}

// Error implements the error interface for RenameError.
func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to change computer name to %q: %s", e.Host, e.osFailure)
}

// Unwrap returns the underlying primitive error.
func (e *RenameError) Unwrap() error { return e.Err }

// JoinError reports a failed join-domain call.
type JoinError struct {
	Domain string
	osFailure
}

// Error implements the error interface for JoinError.
func (e *JoinError) Error() string {
	return fmt.Sprintf("failed to join domain %q: %s", e.Domain, e.osFailure)
}

// Unwrap returns the underlying primitive error.
func (e *JoinError) Unwrap() error { return e.Err }

// UnjoinError reports a failed leave-domain call.
type UnjoinError struct {
	User string
	osFailure
}

// Error implements the error interface for UnjoinError.
func (e *UnjoinError) Error() string {
	return fmt.Sprintf("failed to unjoin domain using %s: %s", e.User, e.osFailure)
}

// Unwrap returns the underlying primitive error.
func (e *UnjoinError) Unwrap() error { return e.Err }
