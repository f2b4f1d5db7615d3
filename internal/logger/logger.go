// Package logger provides a simple logging interface for rtop components.
// Theme loading, config resolution and the dashboard log through it without
// depending on where the output ends up: stderr for CLI commands, a file
// while the full-screen dashboard owns the terminal.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DebugEnv enables Debug output when set to any non-empty value.
const DebugEnv = "RTOP_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// envLogger writes through a *log.Logger. Debug messages are only printed
// when RTOP_DEBUG is set.
type envLogger struct {
	prefix string
	out    *log.Logger
}

// NewEnvLogger creates a stderr logger that respects RTOP_DEBUG.
// The prefix is prepended to all log messages (e.g., "[theme]").
func NewEnvLogger(prefix string) Logger {
	return NewWriterLogger(prefix, os.Stderr)
}

// NewWriterLogger is NewEnvLogger with an explicit destination.
func NewWriterLogger(prefix string, w io.Writer) Logger {
	return &envLogger{
		prefix: prefix,
		out:    log.New(w, "", log.LstdFlags),
	}
}

func (l *envLogger) line(level, format string) string {
	var b strings.Builder
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteByte(' ')
	}
	if level != "" {
		b.WriteString(level)
		b.WriteString(": ")
	}
	b.WriteString(format)
	return b.String()
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if os.Getenv(DebugEnv) != "" {
		l.out.Printf(l.line("DEBUG", format), args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.out.Printf(l.line("", format), args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.out.Printf(l.line("WARN", format), args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.out.Printf(l.line("ERROR", format), args...)
}

// MaxFileSize is the size at which OpenFile moves an existing log aside.
const MaxFileSize = 1 << 20

// OpenFile creates a logger appending to path, creating parent directories
// as needed. A log over MaxFileSize is renamed to path.1 first, replacing
// any older copy. The returned closer releases the file.
func OpenFile(prefix, path string) (Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	if err := rotate(path, MaxFileSize); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewWriterLogger(prefix, f), f, nil
}

// rotate renames path to path.1 when it is larger than maxBytes.
func rotate(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() <= maxBytes {
		return nil
	}
	return os.Rename(path, path+".1")
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing. Safe for concurrent use,
// since theme reloads log from a background command.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	return len(l.AtLevel(level)) > 0
}

// AtLevel returns the messages logged at level, in order.
func (l *BufferLogger) AtLevel(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, m := range l.Messages {
		if m.Level == level {
			out = append(out, m.Message)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr.
func (l *BufferLogger) Contains(level, substr string) bool {
	for _, m := range l.AtLevel(level) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewEnvLogger("[rtop]")
)

// Default returns the process-wide default logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the default logger.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
