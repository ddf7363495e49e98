package membership

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupported is returned by Open on platforms without a domain-membership
// facility.
var ErrUnsupported = errors.New("domain membership operations are only supported on Windows")

// JoinOption is a bit set of NETSETUP_* flags passed to the join primitive.
type JoinOption uint32

const (
	// JoinDomain joins a domain rather than a workgroup.
	JoinDomain      JoinOption = 0x00000001
	// AccountCreate creates the computer account in the directory.
	AccountCreate   JoinOption = 0x00000002
	// JoinWithNewName uses the pending (renamed) computer name for the account.
	JoinWithNewName JoinOption = 0x00000400
)

// Has reports whether every bit of flag is set in o.
func (o JoinOption) Has(flag JoinOption) bool {
	return o&flag == flag
}

// UnjoinOption is a bit set of NETSETUP_* flags passed to the unjoin primitive.
type UnjoinOption uint32

// AccountDelete disables and deletes the computer account on unjoin.
const AccountDelete UnjoinOption = 0x00000004

// Has reports whether every bit of flag is set in o.
func (o UnjoinOption) Has(flag UnjoinOption) bool {
	return o&flag == flag
}

// JoinRequest carries the arguments of a join-domain call.
type JoinRequest struct {
	Domain   string
	OU       string
	User     string
	Password string
	Options  JoinOption
}

// UnjoinRequest carries the arguments of a leave-domain call.
type UnjoinRequest struct {
	User     string
	Password string
	Options  UnjoinOption
}

// Service is the capability set of the local directory-membership facility.
// Every method blocks until the platform returns; there is no timeout.
type Service interface {
	// RenameHost changes the physical DNS hostname of the local machine.
	RenameHost(ctx context.Context, name string) error
	// JoinDomain joins the local machine to a domain.
	JoinDomain(ctx context.Context, req JoinRequest) error
	// UnjoinDomain removes the local machine from its domain.
	UnjoinDomain(ctx context.Context, req UnjoinRequest) error
}

// Describer turns a platform status code into human-readable text.
type Describer interface {
	Describe(code uint32) string
}

// DescriberFunc adapts a plain function to the Describer interface.
type DescriberFunc func(code uint32) string

// Describe calls f(code).
func (f DescriberFunc) Describe(code uint32) string {
	return f(code)
}

// StatusError is returned by a Service when a primitive reports failure.
type StatusError struct {
	Op      string
	Code    uint32
	Message string
}

// Error implements the error interface for StatusError.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: error %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: error %d: %s", e.Op, e.Code, e.Message)
}

// NewStatusError builds a StatusError for op, decoding code with d when one
// is provided.
func NewStatusError(op string, code uint32, d Describer) *StatusError {
	e := &StatusError{Op: op, Code: code}
	if d != nil {
		e.Message = d.Describe(code)
	}
	return e
}
