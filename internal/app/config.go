package app

import (
	"fmt"
	"log/slog"

	"github.com/vk/kcjoin/internal/invoker"
)

// Config holds the resolved record plus the ambient settings of a run.
type Config struct {
	Request invoker.Request

	ProfilePath string
	LogFormat   string
	LogLevel    string
}

// NewConfig validates the ambient settings and returns a copy of cfg with
// defaults applied. The request itself is validated later, by the invoker,
// once profiles have been merged.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LogValue implements slog.LogValuer so a Config can be logged without
// leaking the password.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("request", c.Request),
		slog.String("profile", c.ProfilePath),
		slog.String("log_format", c.LogFormat),
		slog.String("log_level", c.LogLevel),
	)
}
