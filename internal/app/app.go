package app

import (
	"io"
	"log/slog"

	"github.com/vk/kcjoin/internal/invoker"
	"github.com/vk/kcjoin/internal/membership"
)

// App encapsulates the dependencies and configuration of a single run.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	invoker *invoker.Invoker
}

// NewApp wires an App around svc. Status lines go to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, svc membership.Service) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		invoker: invoker.New(svc),
	}
}
