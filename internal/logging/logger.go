package logging

import (
	"io"
	"log/slog"
	"strings"
)

// NewWithWriter creates a configured application logger writing to w.
// Commands pass stderr so operator progress lines on stdout stay readable.
// It standardizes common keys (e.g., "error" -> "err").
// Pass a *slog.LevelVar to change the level after construction.
func NewWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps LOG_LEVEL values (DEBUG, INFO, WARNING, ERROR, ...) to a slog level.
// Unknown or empty values fall back to def.
func ParseLevel(s string, def slog.Level) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return def
	}
}
