package aztemp

import "context"

// Disposable releases a temporary test resource. Every fixture in this module
// implements Disposable so fixtures can be collected and disposed together.
type Disposable interface {
	// Dispose reverts or removes whatever the fixture set up. Dispose must be
	// safe to call more than once; calls after the first are no-ops.
	Dispose(ctx context.Context) error
}

// DisposeFunc adapts a plain function to the Disposable interface.
type DisposeFunc func(ctx context.Context) error

// Dispose calls the wrapped function.
func (fn DisposeFunc) Dispose(ctx context.Context) error {
	return fn(ctx)
}
