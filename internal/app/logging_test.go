package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevelNames(t *testing.T) {
	for level, name := range map[LogLevel]string{
		LogLevelDebug: "DEBUG",
		LogLevelInfo:  "INFO",
		LogLevelWarn:  "WARN",
		LogLevelError: "ERROR",
		LogLevel(-1):  "UNKNOWN",
		LogLevel(9):   "UNKNOWN",
	} {
		if got := level.String(); got != name {
			t.Errorf("LogLevel(%d) = %q, want %q", int(level), got, name)
		}
		if level.String() != "UNKNOWN" && ParseLogLevel(name) != level {
			t.Errorf("ParseLogLevel(%q) did not return %d", name, int(level))
		}
	}
}

func TestParseLogLevelSpellings(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"debug":   LogLevelDebug,
		" Info ":  LogLevelInfo,
		"warning": LogLevelWarn,
		"WARNING": LogLevelWarn,
		"Error":   LogLevelError,
		"verbose": LogLevelInfo,
		"":        LogLevelInfo,
	} {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func newBufferLogger(buf *bytes.Buffer, level LogLevel) *Logger {
	l := NewLogger(LoggerConfig{Level: level, Output: buf, Prefix: "test"})
	l.sink.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 45, 123e6, time.UTC)
	}
	return l
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, LogLevelInfo)

	logger.Info("moved to %d:%d", 3, 4)

	expected := "2024-03-01T12:30:45.123 [INFO] test: moved to 3:4\n"
	if buf.String() != expected {
		t.Errorf("got %q, expected %q", buf.String(), expected)
	}
}

func TestLogger_DropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, LogLevelWarn)

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w %d", 1)
	logger.Error("e %d", 2)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %q", buf.String())
	}
	if !strings.HasSuffix(lines[0], "[WARN] test: w 1") || !strings.HasSuffix(lines[1], "[ERROR] test: e 2") {
		t.Errorf("unexpected lines %q", lines)
	}
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, LogLevelInfo).
		WithField("session", "s1").
		WithFields(map[string]any{"mode": "insert", "events": 3}).
		WithComponent("loop")

	logger.Info("step")

	if !strings.HasSuffix(buf.String(), "step {component=loop, events=3, mode=insert, session=s1}\n") {
		t.Errorf("unexpected fields in %q", buf.String())
	}
}

func TestLogger_WithFieldDoesNotModifyParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newBufferLogger(&buf, LogLevelInfo)
	_ = parent.WithField("child", true)

	parent.Info("plain")

	if strings.Contains(buf.String(), "child") {
		t.Errorf("parent logger picked up child field: %s", buf.String())
	}
}

func TestLogger_Enabled(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, LogLevelWarn)

	logger.Info("hidden")
	if buf.Len() != 0 || logger.Enabled(LogLevelInfo) {
		t.Fatalf("info leaked at warn level: %q", buf.String())
	}

	logger.Warn("shown")
	if !logger.Enabled(LogLevelWarn) || !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn not written: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	logger := NullLogger().WithField("k", "v")

	// Must not panic or write anywhere.
	logger.Debug("test")
	logger.Error("test")

	if logger.Enabled(LogLevelError) {
		t.Error("expected NullLogger to be disabled")
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	want := LoggerConfig{Level: LogLevelInfo, Prefix: "keyline"}
	if got := DefaultLoggerConfig(); got != want {
		t.Errorf("DefaultLoggerConfig() = %+v", got)
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyline.log")

	logger, closer, err := OpenLogFile(path, LogLevelDebug)
	if err != nil {
		t.Fatalf("OpenLogFile() failed: %v", err)
	}
	logger.Debug("first")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// Appends rather than truncating.
	logger, closer, err = OpenLogFile(path, LogLevelInfo)
	if err != nil {
		t.Fatalf("OpenLogFile() failed: %v", err)
	}
	logger.Debug("filtered")
	logger.Info("second")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}
	if !strings.HasSuffix(lines[0], "keyline: first") || !strings.HasSuffix(lines[1], "keyline: second") {
		t.Errorf("unexpected log contents: %q", data)
	}
}

func TestOpenLogFile_EmptyPath(t *testing.T) {
	logger, closer, err := OpenLogFile("", LogLevelDebug)
	if err != nil {
		t.Fatalf("OpenLogFile() failed: %v", err)
	}
	if logger.Enabled(LogLevelError) {
		t.Error("expected a disabled logger for an empty path")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestOpenLogFile_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "keyline.log")

	_, _, err := OpenLogFile(path, LogLevelInfo)

	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %v", err)
	}
	if opErr.Target != path || opErr.Context != "log file" {
		t.Errorf("unexpected error fields: %+v", opErr)
	}
}

func TestLogger_ChildSharesSink(t *testing.T) {
	var buf bytes.Buffer
	parent := newBufferLogger(&buf, LogLevelWarn)
	child := parent.WithComponent("loop")

	child.Debug("hidden")
	child.Warn("visible")
	parent.Warn("plain")

	out := buf.String()
	if strings.Contains(out, "hidden") || child.Enabled(LogLevelDebug) {
		t.Errorf("child ignored parent level: %q", out)
	}
	if !strings.Contains(out, "[WARN] test: visible {component=loop}\n") || !strings.Contains(out, "[WARN] test: plain\n") {
		t.Errorf("unexpected output %q", out)
	}
}
