package logging

import (
	"context"
	"log/slog"
)

func Log(level LogLevel, msg string, args ...any) {
	if logger == nil {
		return
	}
	switch level {
	case LogLevelDebug:
		logger.Debug(msg, args...)
	case LogLevelInfo:
		logger.Info(msg, args...)
	default:
		panic("passing something else than Debug/Info, if you want to disable logging then call binary with -lnone or --loglevel=none")
	}
}

func LogErr(err error, msg string) {
	if err == nil || logger == nil {
		return
	}

	logger.Error(msg, "error", err.Error())
}

// Enabled reports whether a record at level would be written.
func Enabled(level LogLevel) bool {
	if logger == nil {
		return false
	}
	l := slog.LevelInfo
	if level == LogLevelDebug {
		l = slog.LevelDebug
	}
	return logger.Enabled(context.Background(), l)
}
