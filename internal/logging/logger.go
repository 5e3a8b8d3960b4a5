// Package logging defines the structured-logging interface used across the
// server. SlogLogger and ZapLogger are the two implementations; New picks
// one by name.
package logging

import (
	"context"
	"fmt"
	"io"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a logger writing to w. In development the output is human
// readable and includes debug messages; otherwise it is JSON at info level.
func New(backend string, development bool, w io.Writer) (Logger, error) {
	switch backend {
	case "", BackendSlog:
		return NewSlog(w, development), nil
	case BackendZap:
		return NewZap(w, development), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
