// Package logger provides a thin structured logging wrapper used across the
// sandbox services.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry carrying the module field.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for the named module at the given level. Unknown
// levels fall back to info.
func New(module, level string) *Logger {
	parsed := logrus.InfoLevel
	if raw := strings.TrimSpace(level); raw != "" {
		if lvl, err := logrus.ParseLevel(raw); err == nil {
			parsed = lvl
		}
	}
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(parsed)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{entry: base.WithField("module", module)}
}

// NewDefault creates a logger for the named module honouring LOG_LEVEL when
// set.
func NewDefault(module string) *Logger {
	return New(module, os.Getenv("LOG_LEVEL"))
}

// WithField returns a logger with an additional structured field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithError returns a logger with the error attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

func (l *Logger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
