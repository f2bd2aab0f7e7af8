package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus for structured logging
type Logger struct {
	*logrus.Entry
}

// Setup configures the standard logrus logger from LOG_LEVEL / LOG_FORMAT values.
// Unknown levels fall back to info.
func Setup(level, format string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// Component returns a logger tagged with the component name
func Component(name string) *Logger {
	return New().WithField("component", name)
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}

// WithError attaches an error to the logger
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Entry: l.Entry.WithError(err),
	}
}
