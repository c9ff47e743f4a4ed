package async

import "errors"

// ErrTimeout is returned by AwaitWithTimeout when the deadline elapses
// before the underlying operation completes.
var ErrTimeout = errors.New("async: await timed out")
