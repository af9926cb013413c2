package internal

import (
	"log"
	"os"
)

// LogLevel represents logging verbosity.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// ParseLogLevel maps a LOG_LEVEL string to a level, defaulting to INFO.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "ERROR":
		return LogLevelError
	case "WARN":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// Logger provides leveled logging over the standard log package.
type Logger struct {
	level LogLevel
}

// NewLogger creates a logger with the specified level.
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger creates a logger from the LOG_LEVEL environment variable.
func NewDefaultLogger() *Logger {
	return NewLogger(ParseLogLevel(os.Getenv("LOG_LEVEL")))
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
