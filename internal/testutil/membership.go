package testutil

import (
	"context"
	"sync"

	"github.com/vk/kcjoin/internal/membership"
)

// Call records a single invocation of a FakeService primitive.
type Call struct {
	Op     string // "rename", "join" or "unjoin"
	Host   string
	Join   membership.JoinRequest
	Unjoin membership.UnjoinRequest
}

// FakeService is a recording membership.Service. Each primitive returns the
// matching configured error, or nil.
type FakeService struct {
	RenameErr error
	JoinErr   error
	UnjoinErr error

	mu    sync.Mutex
	calls []Call
}

var _ membership.Service = (*FakeService)(nil)

// RenameHost implements membership.Service.
func (f *FakeService) RenameHost(_ context.Context, name string) error {
	f.record(Call{Op: "rename", Host: name})
	return f.RenameErr
}

// JoinDomain implements membership.Service.
func (f *FakeService) JoinDomain(_ context.Context, req membership.JoinRequest) error {
	f.record(Call{Op: "join", Join: req})
	return f.JoinErr
}

// UnjoinDomain implements membership.Service.
func (f *FakeService) UnjoinDomain(_ context.Context, req membership.UnjoinRequest) error {
	f.record(Call{Op: "unjoin", Unjoin: req})
	return f.UnjoinErr
}

// Calls returns a copy of every recorded call in order.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the recorded calls for a single operation.
func (f *FakeService) CallsTo(op string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// Opener returns an opener func that always yields svc, for entry points
// that take the platform Open function as a dependency.
func Opener(svc membership.Service) func() (membership.Service, error) {
	return func() (membership.Service, error) {
		return svc, nil
	}
}
