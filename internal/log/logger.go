// SPDX-License-Identifier: MIT
//
// Package log provides the leveled logger used across the panel core.
// Components log through a named Component logger so pipeline stages
// can be told apart in mixed output ("Geometry: ...", "Audio: ...").
package log

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"sync/atomic"
)

// Level defines the severity of a log message.
type Level uint32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the string representation of the Level.
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
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string (case-insensitive) to a Level.
// Returns LevelInfo and false if the string is not recognized.
func ParseLevel(levelStr string) (Level, bool) {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	case "FATAL":
		return LevelFatal, true
	default:
		return LevelInfo, false
	}
}

// currentLevel holds the current global log level atomically.
var currentLevel atomic.Uint32

// logger is the standard logger instance used internally.
var logger = stdlog.New(os.Stderr, "", stdlog.Ldate|stdlog.Ltime|stdlog.Lmicroseconds)

func init() {
	SetLevel(LevelInfo)
}

// SetLevel sets the global logging level atomically.
func SetLevel(level Level) {
	currentLevel.Store(uint32(level))
}

// GetLevel gets the current global logging level atomically.
func GetLevel() Level {
	return Level(currentLevel.Load())
}

func shouldLog(level Level) bool {
	return level >= GetLevel()
}

// Component is a named logger. The zero value logs without a prefix.
type Component string

func (c Component) emit(level Level, msg string) {
	if c == "" {
		logger.Printf("[%s] %s", level, msg)
		return
	}
	logger.Printf("[%s] %s: %s", level, string(c), msg)
}

// Debugf logs a formatted debug message if the level is appropriate.
func (c Component) Debugf(format string, v ...any) {
	if shouldLog(LevelDebug) {
		c.emit(LevelDebug, fmt.Sprintf(format, v...))
	}
}

// Infof logs a formatted info message if the level is appropriate.
func (c Component) Infof(format string, v ...any) {
	if shouldLog(LevelInfo) {
		c.emit(LevelInfo, fmt.Sprintf(format, v...))
	}
}

// Warnf logs a formatted warning message if the level is appropriate.
func (c Component) Warnf(format string, v ...any) {
	if shouldLog(LevelWarn) {
		c.emit(LevelWarn, fmt.Sprintf(format, v...))
	}
}

// Errorf logs a formatted error message if the level is appropriate.
func (c Component) Errorf(format string, v ...any) {
	if shouldLog(LevelError) {
		c.emit(LevelError, fmt.Sprintf(format, v...))
	}
}

// Fatalf logs a formatted fatal message and exits the application.
// Fatal messages are always logged regardless of the current level.
func (c Component) Fatalf(format string, v ...any) {
	if c == "" {
		logger.Fatalf("[%s] %s", LevelFatal, fmt.Sprintf(format, v...))
		return
	}
	logger.Fatalf("[%s] %s: %s", LevelFatal, string(c), fmt.Sprintf(format, v...))
}

// Package-level helpers for call sites without a component identity.

// Debugf logs a formatted debug message.
func Debugf(format string, v ...any) { Component("").Debugf(format, v...) }

// Infof logs a formatted info message.
func Infof(format string, v ...any) { Component("").Infof(format, v...) }

// Warnf logs a formatted warning message.
func Warnf(format string, v ...any) { Component("").Warnf(format, v...) }

// Errorf logs a formatted error message.
func Errorf(format string, v ...any) { Component("").Errorf(format, v...) }

// Fatalf logs a formatted fatal message and exits the application.
func Fatalf(format string, v ...any) { Component("").Fatalf(format, v...) }
