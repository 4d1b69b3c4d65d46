package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

type implLogger struct {
	entry *logrus.Entry
}

// New creates a new Logger instance writing to stdout.
// format is "json" or "text"; unknown levels fall back to info.
func New(level, format string) Logger {
	return NewWithOutput(os.Stdout, level, format)
}

// NewWithOutput creates a Logger writing to w
func NewWithOutput(w io.Writer, level, format string) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(parseLevel(level))

	if strings.ToLower(format) == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	return &implLogger{entry: logrus.NewEntry(l)}
}

// Nop returns a logger that discards everything, handy in tests
func Nop() Logger {
	return NewWithOutput(io.Discard, "error", "text")
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// WithRequestID stores a request id that every log entry made with ctx will carry
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestID returns the request id stored in ctx, if any
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (l *implLogger) withContext(ctx context.Context) *logrus.Entry {
	if id := RequestID(ctx); id != "" {
		return l.entry.WithField("request_id", id)
	}
	return l.entry
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.withContext(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.withContext(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.withContext(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.withContext(ctx).Errorf(msg, args...)
}

func (l *implLogger) WithField(key string, value interface{}) Logger {
	return &implLogger{entry: l.entry.WithField(key, value)}
}
