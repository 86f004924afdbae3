package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSetupWriterLevels(t *testing.T) {
	tests := []struct {
		level     LogLevel
		wantInfo  bool
		wantDebug bool
	}{
		{LogLevelNone, false, false},
		{LogLevelInfo, true, false},
		{LogLevelDebug, true, true},
	}

	defer func() { logger = nil }()
	for _, tt := range tests {
		var buf bytes.Buffer
		SetupWriter(tt.level, &buf)

		Log(LogLevelInfo, "info message", "k", 1)
		Log(LogLevelDebug, "debug message", "k", 2)

		out := buf.String()
		if got := strings.Contains(out, "info message"); got != tt.wantInfo {
			t.Errorf("%s: info written = %v, want %v (%q)", tt.level, got, tt.wantInfo, out)
		}
		if got := strings.Contains(out, "debug message"); got != tt.wantDebug {
			t.Errorf("%s: debug written = %v, want %v (%q)", tt.level, got, tt.wantDebug, out)
		}
		if got := Enabled(LogLevelDebug); got != tt.wantDebug && tt.level != LogLevelNone {
			t.Errorf("%s: Enabled(debug) = %v", tt.level, got)
		}
	}
}

func TestLogErr(t *testing.T) {
	defer func() { logger = nil }()
	var buf bytes.Buffer
	SetupWriter(LogLevelInfo, &buf)

	LogErr(nil, "nothing")
	LogErr(errors.New("boom"), "command failed")

	out := buf.String()
	if strings.Contains(out, "nothing") {
		t.Errorf("nil error was logged: %q", out)
	}
	if !strings.Contains(out, "command failed") || !strings.Contains(out, "error=boom") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestLogBeforeSetupIsNoop(t *testing.T) {
	logger = nil
	Log(LogLevelInfo, "ignored")
	LogErr(errors.New("ignored"), "ignored")
	if Enabled(LogLevelInfo) {
		t.Fatal("Enabled before Setup")
	}
}
