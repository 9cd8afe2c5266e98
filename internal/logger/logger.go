// Package logger provides leveled console logging for the renderer binaries.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents the severity level of a log message
type Level int

// Log levels
const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelPrefixes = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO ",
	WARN:  "WARN ",
	ERROR: "ERROR",
}

var levelColors = map[Level]string{
	DEBUG: "\033[36m", // Cyan
	INFO:  "\033[32m", // Green
	WARN:  "\033[33m", // Yellow
	ERROR: "\033[31m", // Red
}

// Logger writes timestamped, leveled messages. It satisfies core.Logger via
// Printf, which logs at INFO.
type Logger struct {
	level     Level
	logger    *log.Logger
	useColors bool
}

// ParseLevel maps a level name to a Level, defaulting to INFO
func ParseLevel(levelStr string) Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// New creates a logger writing to stdout at the named level
func New(levelStr string) *Logger {
	l := &Logger{
		level:     ParseLevel(levelStr),
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		useColors: true,
	}

	// Disable colors when stdout is not a terminal
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		l.useColors = false
	}

	return l
}

func (l *Logger) logf(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	prefix := fmt.Sprintf("[%s]", levelPrefixes[level])
	if l.useColors {
		prefix = levelColors[level] + prefix + "\033[0m"
	}

	l.logger.Println(prefix, strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logf(DEBUG, format, v...)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.logf(INFO, format, v...)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logf(WARN, format, v...)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logf(ERROR, format, v...)
}

// Printf logs at INFO so the logger can be passed anywhere a plain
// printf-style logger is expected
func (l *Logger) Printf(format string, v ...interface{}) {
	l.logf(INFO, format, v...)
}

// SetLevel changes the minimum level
func (l *Logger) SetLevel(levelStr string) {
	l.level = ParseLevel(levelStr)
}

// SetOutput redirects the logger, disabling colors
func (l *Logger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
	l.useColors = false
}
