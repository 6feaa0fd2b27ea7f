// Package logging builds the process-wide slog.Logger from configuration.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/shubhamkumaar/socioBuy-backend/internal/config"
)

// New returns a logger writing to stdout. Format selects the handler (json
// for log shipping, text otherwise); unknown levels fall back to info.
func New(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
