package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var logger = newLogger(os.Stderr, slog.LevelWarn)

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func ResolveLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

// InitLogger replaces the package logger with one writing to w at the
// named level.
func InitLogger(w io.Writer, level string) error {
	logLevel, err := ResolveLogLevel(level)
	if err != nil {
		return err
	}
	logger = newLogger(w, logLevel)
	return nil
}
