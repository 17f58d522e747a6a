package aztemp

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

const (
	defaultMaxRetries    = 2
	defaultRetryInterval = 100 * time.Millisecond
)

// Disposables collects Disposable handles and disposes them together.
// Disposal runs in reverse (LIFO) order so dependent resources are released
// before the resources they depend on. Failed disposals are retried with
// exponential backoff and any leftover errors are aggregated into a single
// error.
type Disposables struct {
	log           *zap.Logger
	maxRetries    uint64
	retryInterval time.Duration

	mu       sync.Mutex
	items    []Disposable
	disposed bool
	result   error
}

// DisposablesOption configures a Disposables collection.
type DisposablesOption func(*Disposables)

// WithLogger sets the logger used to report failed disposal attempts.
func WithLogger(log *zap.Logger) DisposablesOption {
	return func(d *Disposables) {
		d.log = log
	}
}

// WithMaxRetries sets how many times a failed disposal is retried before its
// error is recorded. The default is 2 retries (3 attempts total).
func WithMaxRetries(n uint64) DisposablesOption {
	return func(d *Disposables) {
		d.maxRetries = n
	}
}

// WithRetryInterval sets the initial backoff interval between retries.
func WithRetryInterval(interval time.Duration) DisposablesOption {
	return func(d *Disposables) {
		d.retryInterval = interval
	}
}

// NewDisposables returns an empty Disposables collection.
func NewDisposables(opts ...DisposablesOption) *Disposables {
	d := &Disposables{
		log:           zap.NewNop(),
		maxRetries:    defaultMaxRetries,
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add appends items to the collection. Add is safe for concurrent use. Items
// added after Dispose are never disposed, so fixtures guard against that with
// their own disposed state.
func (d *Disposables) Add(items ...Disposable) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, items...)
}

// Len returns the number of collected items.
func (d *Disposables) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Dispose disposes every collected item in reverse order. A failing item is
// retried with exponential backoff; its final error is recorded and disposal
// moves on to the next item, so one failure never abandons the rest. The
// returned error aggregates everything that could not be disposed, or is nil
// when all items succeeded. Calling Dispose again returns the first result.
func (d *Disposables) Dispose(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return d.result
	}
	d.disposed = true

	var errs *multierror.Error
	for i := len(d.items) - 1; i >= 0; i-- {
		if err := d.disposeWithRetry(ctx, d.items[i]); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	d.result = errs.ErrorOrNil()
	return d.result
}

func (d *Disposables) disposeWithRetry(ctx context.Context, item Disposable) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = d.retryInterval

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		if err := item.Dispose(ctx); err != nil {
			d.log.Warn("failed to dispose item",
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(expo, d.maxRetries), ctx))
}
