// Package async provides fire-and-forget execution for side-effect writes
// that must never block or fail the primary request path.
//
// The control plane performs several writes whose failure is tolerable:
// stamping a session's last-access time on lookup, and persisting trace
// events. Those run through Fire, which detaches from the caller's
// cancellation and routes errors to a logger instead of the caller.
//
// # Usage
//
// Fire-and-forget with error logging:
//
//	async.Fire(ctx, log, "session.renew", func(ctx context.Context) error {
//		return store.StampAccess(ctx, sid)
//	})
//
// When the caller needs the result, Exec returns a Future:
//
//	future := async.Exec(ctx, func(ctx context.Context) error {
//		return sink.Flush(ctx)
//	})
//	// ... other work ...
//	if err := future.AwaitWithTimeout(time.Second); err != nil {
//		// errors.Is(err, async.ErrTimeout) when the deadline was hit
//	}
//
// # Concurrency Safety
//
// All operations are safe for concurrent use. Each call spawns exactly one
// goroutine; Future uses sync.Once internally to prevent races on completion.
package async
