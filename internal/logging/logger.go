// Package logging defines the structured-logging interface shared by the
// client packages. The only implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key–value pairs, e.g.:
//
//	log.Info(ctx, "session restored", "user_id", u.ID)
type Logger interface {
	// Debug logs low-level diagnostics (request ids, skipped work).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs state transitions and other notable events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs recoverable failures, e.g. a best-effort cleanup that failed.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures that leave something for the user to fix.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
