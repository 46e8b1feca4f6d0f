// Package logger provides the leveled console logger used by the CLI layer.
//
// Validation findings are never logged: they travel through the report. The
// logger carries operational chatter only (which spec was loaded, history
// store failures, per-submission progress).
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log level constants for filtering.
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// Console logs timestamped messages to a writer with level filtering. It is
// safe for concurrent use.
type Console struct {
	writer io.Writer
	level  int
	mutex  sync.Mutex
	color  bool
}

// NewConsole creates a Console writing to w. level is one of debug, info,
// warn, error (case-insensitive); empty or unknown values default to info.
// If w is nil, messages are discarded.
func NewConsole(w io.Writer, level string, useColor bool) *Console {
	return &Console{
		writer: w,
		level:  parseLevel(level),
		color:  useColor,
	}
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debugf logs a debug-level message.
func (c *Console) Debugf(format string, args ...interface{}) {
	c.logf(levelDebug, "DEBUG", nil, format, args...)
}

// Infof logs an info-level message.
func (c *Console) Infof(format string, args ...interface{}) {
	c.logf(levelInfo, "INFO", nil, format, args...)
}

// Warnf logs a warn-level message.
func (c *Console) Warnf(format string, args ...interface{}) {
	c.logf(levelWarn, "WARN", color.New(color.FgYellow), format, args...)
}

// Errorf logs an error-level message.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.logf(levelError, "ERROR", color.New(color.FgRed), format, args...)
}

func (c *Console) logf(level int, tag string, tagColor *color.Color, format string, args ...interface{}) {
	if c.writer == nil || level < c.level {
		return
	}
	if c.color && tagColor != nil {
		tag = tagColor.Sprint(tag)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	fmt.Fprintf(c.writer, "[%s] %s %s\n", time.Now().Format("15:04:05"), tag, fmt.Sprintf(format, args...))
}
