package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shubhamkumaar/socioBuy-backend/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNew_RespectsConfiguredLevel(t *testing.T) {
	logger := New(config.LoggingConfig{Level: "error", Format: "json"})

	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelWarn) {
		t.Error("warn must be suppressed at error level")
	}
	if !logger.Enabled(ctx, slog.LevelError) {
		t.Error("error must be enabled at error level")
	}
}
