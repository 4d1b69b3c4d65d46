package logger

import "context"

// Logger is the leveled, context-aware logger shared by every package
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})

	// WithField returns a child logger that adds key=value to every entry
	WithField(key string, value interface{}) Logger
}
