package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Log = slog.Default()

func Init(level string) {
	// JSON handler for production-ready logging
	Log = New(os.Stdout, level)
	slog.SetDefault(Log)
}

// New builds a JSON logger writing to w. Tests pass a buffer.
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
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
