package logger

import (
	"io"
	"log/slog"
)

// New returns a structured JSON logger writing to w with source location
// enabled. Level should be a valid slog level string: DEBUG, INFO, WARN, ERROR.
// Unrecognized values default to ERROR.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	}))
}

// ParseLevel converts a level name to a slog.Level, falling back to ERROR.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelError
	}
	return lvl
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
