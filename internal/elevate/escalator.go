package elevate

import (
	"context"
	"log/slog"
	"time"
)

// Escalator performs op on path with elevated rights. It reports true
// only when the helper answered Success; every other outcome, transport
// failures included, is false.
type Escalator interface {
	Escalate(ctx context.Context, op Operation, path string) bool
}

// EscalatorFunc adapts a function to Escalator
type EscalatorFunc func(ctx context.Context, op Operation, path string) bool

func (f EscalatorFunc) Escalate(ctx context.Context, op Operation, path string) bool {
	return f(ctx, op, path)
}

// Disabled never escalates
var Disabled Escalator = EscalatorFunc(func(context.Context, Operation, string) bool {
	return false
})

type timeoutEscalator struct {
	next    Escalator
	timeout time.Duration
}

// WithTimeout bounds each escalation by d. A zero or negative d returns
// e unchanged, so the wait is unbounded. A timed-out escalation reports
// false even though the helper may still complete it.
func WithTimeout(e Escalator, d time.Duration) Escalator {
	if d <= 0 {
		return e
	}
	return &timeoutEscalator{next: e, timeout: d}
}

func (t *timeoutEscalator) Escalate(ctx context.Context, op Operation, path string) bool {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan bool, 1)
	go func() {
		done <- t.next.Escalate(ctx, op, path)
	}()

	select {
	case ok := <-done:
		return ok
	case <-ctx.Done():
		slog.Warn("elevated operation timed out", "fileop", op, "path", path, "timeout", t.timeout)
		return false
	}
}
