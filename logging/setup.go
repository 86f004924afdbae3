package logging

import (
	"io"
	"log/slog"
	"os"
)

type LogLevel string

const (
	LogLevelNone  LogLevel = "none"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

var logger *slog.Logger

// Setup points the package logger at stderr, or discards everything for LogLevelNone.
func Setup(optslevel LogLevel) {
	SetupWriter(optslevel, os.Stderr)
}

func SetupWriter(optslevel LogLevel, sink io.Writer) {
	if optslevel == LogLevelNone {
		sink = io.Discard
	}

	level := slog.LevelDebug
	if optslevel == LogLevelInfo {
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: level,
	})
	logger = slog.New(handler)
}
