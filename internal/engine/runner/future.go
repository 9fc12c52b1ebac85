package runner

import "context"

// Future is a write-once completion cell. The result is set exactly once and
// every waiter observes the same value or failure, which is what makes the
// per-task staleness and execution caches safe under concurrent first access:
// the first requester installs the future and starts the one computation, all
// later requesters attach to the same pending result.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// complete resolves the future. It must be called exactly once.
func (f *Future[T]) complete(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Wait blocks until the future resolves or the context is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
