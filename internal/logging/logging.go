// Package logging configures the process-wide slog logger.
//
// Every mutating operation in zonekeeper writes one audit line through this
// logger carrying the actor, client IP, operation name, and the record tuple
// involved, so structured output (JSON) is the default.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jroosing/zonekeeper/internal/config"
)

// Configure builds a slog.Logger from the logging config, installs it as the
// default logger, and returns it.
func Configure(cfg config.LoggingConfig) *slog.Logger {
	return configure(cfg, os.Stderr)
}

func configure(cfg config.LoggingConfig, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Structured && strings.EqualFold(cfg.StructuredFormat, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	attrs := make([]slog.Attr, 0, len(cfg.ExtraFields)+1)
	for k, v := range cfg.ExtraFields {
		attrs = append(attrs, slog.String(k, v))
	}
	if cfg.IncludePID {
		attrs = append(attrs, slog.Int("pid", os.Getpid()))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
