package app

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// LogLevel orders log messages by severity.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel reads a level name in any case. "warning" is accepted for
// warn, and anything unrecognized gives LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "WARNING" {
		return LogLevelWarn
	}
	for i, name := range levelNames {
		if s == name {
			return LogLevel(i)
		}
	}
	return LogLevelInfo
}

// Logger writes leveled lines such as
//
//	2024-03-01T12:30:45.123 [INFO] keyline: moved to 3:4 {session=ab12}
//
// While the editor runs the terminal belongs to the display, so a Logger
// writes to a file or nowhere. Loggers derived with WithField share the
// parent's output and level.
type Logger struct {
	sink   *logSink
	prefix string
	fields map[string]any
	suffix string
}

// logSink is the state shared by a logger and everything derived from it.
type logSink struct {
	mu    sync.Mutex
	out   io.Writer // nil discards
	level LogLevel
	now   func() time.Time
}

type LoggerConfig struct {
	Level LogLevel

	// Output receives the log lines. Nil discards them.
	Output io.Writer

	// Prefix names the program on every line.
	Prefix string
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Level: LogLevelInfo, Prefix: "keyline"}
}

func NewLogger(cfg LoggerConfig) *Logger {
	return &Logger{
		sink:   &logSink{out: cfg.Output, level: cfg.Level, now: time.Now},
		prefix: cfg.Prefix,
	}
}

// OpenLogFile returns a logger that appends to path, creating the file if
// needed. An empty path gives a disabled logger. The closer is never nil.
func OpenLogFile(path string, level LogLevel) (*Logger, io.Closer, error) {
	if path == "" {
		return NullLogger(), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, NewOperationError("open", path, err).WithContext("log file")
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = level
	cfg.Output = f
	return NewLogger(cfg), f, nil
}

// NullLogger returns a logger that writes nothing.
func NullLogger() *Logger {
	return NewLogger(LoggerConfig{})
}

func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a child logger that appends fields to every line.
// Fields already on l are kept unless overridden.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)

	return &Logger{
		sink:   l.sink,
		prefix: l.prefix,
		fields: merged,
		suffix: formatFields(merged),
	}
}

// WithComponent tags lines with the part of the editor that wrote them.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// formatFields renders fields in key order as " {k=v, ...}".
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return " {" + strings.Join(pairs, ", ") + "}"
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.out != nil && level >= l.sink.level
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any) { l.log(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any) { l.log(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(LogLevelError, msg, args) }

func (l *Logger) log(level LogLevel, msg string, args []any) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out == nil || level < s.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	prefix := ""
	if l.prefix != "" {
		prefix = l.prefix + ": "
	}
	_, _ = fmt.Fprintf(s.out, "%s [%s] %s%s%s\n",
		s.now().Format("2006-01-02T15:04:05.000"), level, prefix, msg, l.suffix)
}
