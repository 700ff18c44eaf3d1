// Package log is a small leveled logger over the standard library logger.
package log

import (
	"io"
	"log"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name case-insensitively. Unknown names map
// to LevelInfo.
func LevelFromString(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

type Logger struct {
	mu     sync.RWMutex
	logger *log.Logger
	level  Level
}

// New returns a logger writing to out. Timestamps are included.
func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.LstdFlags|log.Lmicroseconds),
		level:  level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

func (l *Logger) enabled(level Level) bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level && l.level != LevelNone
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.enabled(LevelDebug) {
		l.logger.Printf("DEBUG: "+format, v...)
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.enabled(LevelInfo) {
		l.logger.Printf("INFO: "+format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l.enabled(LevelWarn) {
		l.logger.Printf("WARN: "+format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l.enabled(LevelError) {
		l.logger.Printf("ERROR: "+format, v...)
	}
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}
