package async

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Future represents the result of an asynchronous operation that only
// returns an error.
type Future struct {
	err  error
	once sync.Once
	done chan struct{}
}

// Await blocks until the operation completes and returns its error.
func (f *Future) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout blocks until the operation completes or the timeout
// elapses. Returns ErrTimeout if the deadline is hit first.
func (f *Future) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-f.done:
		return f.err
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// IsComplete reports whether the operation has finished, without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn in a new goroutine and returns a Future for its error.
func Exec(ctx context.Context, fn func(context.Context) error) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents doing work when the context is pre-canceled.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		err := fn(ctx)
		f.once.Do(func() {
			f.err = err
		})
	}()

	return f
}

// Fire runs fn in a new goroutine and routes its error, if any, to the
// logger instead of the caller. The operation is detached from the caller's
// cancellation so an in-flight request finishing early does not abort the
// side-effect write.
//
// This is the primitive behind "never block or fail the primary path"
// writes: session activity stamps and trace sends.
func Fire(ctx context.Context, log *slog.Logger, op string, fn func(context.Context) error) *Future {
	detached := context.WithoutCancel(ctx)

	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)

		if err := fn(detached); err != nil {
			f.once.Do(func() {
				f.err = err
			})
			if log != nil {
				log.ErrorContext(detached, "async operation failed",
					slog.String("op", op),
					slog.Any("error", err),
				)
			}
		}
	}()

	return f
}

// AwaitAll waits for all futures and returns the first error encountered.
func AwaitAll(futures ...*Future) error {
	for _, future := range futures {
		if err := future.Await(); err != nil {
			return err
		}
	}
	return nil
}
