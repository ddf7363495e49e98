package app

import (
	"context"
	"fmt"

	"github.com/vk/kcjoin/internal/ctxlog"
	"github.com/vk/kcjoin/internal/invoker"
	"github.com/vk/kcjoin/internal/profile"
)

// Run merges the profile (if any) into the request, performs the rename and
// domain operation, and prints the outcome. The returned error is the one
// reported to the user; it is nil only when the whole operation succeeded.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "config", a.config)

	req := a.config.Request
	if a.config.ProfilePath != "" {
		p, err := profile.Load(ctx, a.config.ProfilePath)
		if err != nil {
			return err
		}
		p.Apply(&req)
		a.logger.Info("Profile applied.", "files", p.Files, "request", req)
	}

	res, err := a.invoker.Run(ctx, req)
	if res != nil && res.Renamed {
		fmt.Fprintf(a.outW, "Successfully changed computer name: %s\n", res.Host)
	}
	if err != nil {
		a.logger.Debug("Operation failed.", "mode", req.Mode(), "error", err)
		return err
	}

	switch res.Mode {
	case invoker.ModeUnjoin:
		fmt.Fprintf(a.outW, "Unjoined domain using %s\n", res.User)
	default:
		fmt.Fprintf(a.outW, "Joined %s domain using %s in container %s\n", res.Domain, res.User, res.OU)
	}
	fmt.Fprintln(a.outW, "Success!")

	a.logger.Debug("App.Run method finished.")
	return nil
}
