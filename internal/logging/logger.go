// Package logging is the structured logger the storefront client writes
// through. Call sites pass a context and key/value pairs; New picks a slog
// or zap backend from configuration.
package logging

import "context"

// Logger takes alternating key/value pairs after the message:
//
//	log.Info(ctx, "request sent", "method", method, "path", path)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	// Error is for failures nobody anticipated. Expected rejections such
	// as a wrong password go to Warn.
	Error(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger
}

// Flush syncs a logger that buffers its output, such as the zap backend.
// Other loggers need nothing and return nil.
func Flush(l Logger) error {
	if s, ok := l.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
