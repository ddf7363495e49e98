package invoker

import (
	"context"

	"github.com/vk/kcjoin/internal/ctxlog"
	"github.com/vk/kcjoin/internal/membership"
)

// Result describes what an invocation changed, including partial progress
// when a later step fails.
type Result struct {
	Mode    Mode
	Renamed bool
	Host    string
	Domain  string
	OU      string
	User    string
}

// Invoker runs a single join or unjoin against a membership.Service.
type Invoker struct {
	svc membership.Service
}

// New returns an Invoker backed by svc.
func New(svc membership.Service) *Invoker {
	return &Invoker{svc: svc}
}

// Run validates req, renames the host when requested, then performs exactly
// one join or unjoin call. Any failure aborts the remaining steps; nothing
// already changed is rolled back.
func (i *Invoker) Run(ctx context.Context, req Request) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	res := &Result{Mode: req.Mode(), User: req.User}

	if err := req.Validate(); err != nil {
		return res, err
	}
	logger.Debug("Request validated.", "request", req)

	if req.Host != "" {
		logger.Info("Changing computer name.", "host", req.Host)
		if err := i.svc.RenameHost(ctx, req.Host); err != nil {
			return res, &RenameError{Host: req.Host, osFailure: newOSFailure(err)}
		}
		res.Renamed = true
		res.Host = req.Host
	}

	if req.Unjoin {
		return res, i.unjoin(ctx, req)
	}
	res.Domain = req.Domain
	res.OU = req.OU
	return res, i.join(ctx, req, res.Renamed)
}

func (i *Invoker) join(ctx context.Context, req Request, renamed bool) error {
	opts := membership.JoinDomain | membership.AccountCreate
	if renamed {
		opts |= membership.JoinWithNewName
	}
	ctxlog.FromContext(ctx).Info("Joining domain.", "domain", req.Domain, "ou", req.OU, "user", req.User, "options", uint32(opts))

	err := i.svc.JoinDomain(ctx, membership.JoinRequest{
		Domain:   req.Domain,
		OU:       req.OU,
		User:     req.User,
		Password: req.Password,
		Options:  opts,
	})
	if err != nil {
		return &JoinError{Domain: req.Domain, osFailure: newOSFailure(err)}
	}
	return nil
}

func (i *Invoker) unjoin(ctx context.Context, req Request) error {
	ctxlog.FromContext(ctx).Info("Leaving domain.", "user", req.User)

	err := i.svc.UnjoinDomain(ctx, membership.UnjoinRequest{
		User:     req.User,
		Password: req.Password,
		Options:  membership.AccountDelete,
	})
	if err != nil {
		return &UnjoinError{User: req.User, osFailure: newOSFailure(err)}
	}
	return nil
}
