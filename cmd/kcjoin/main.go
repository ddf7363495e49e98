package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/kcjoin/internal/app"
	"github.com/vk/kcjoin/internal/cli"
	"github.com/vk/kcjoin/internal/membership"
)

// opener performs the process-scoped setup of the membership primitives.
type opener func() (membership.Service, error)

// main is the entrypoint for the kcjoin utility.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:], membership.Open); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stdout, "ERROR:", exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stdout, "ERROR:", err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string, open opener) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	svc, err := open()
	if err != nil {
		return fmt.Errorf("failed to initialize domain membership service: %w", err)
	}

	return app.NewApp(outW, logW, appConfig, svc).Run(context.Background())
}
