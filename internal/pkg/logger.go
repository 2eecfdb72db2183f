package pkg

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON logger; unknown levels fall back to info.
func NewLogger(level string, out io.Writer) *slog.Logger {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: logLevel}))
}
