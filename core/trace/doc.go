// Package trace provides the audit sink: structured event notifications
// persisted to a short-retention collection and mirrored to the log.
//
// Events carry a service name, an HTTP-status-like code, an action from a
// fixed taxonomy (INITIALIZATION, MESSAGE, WARNING, ERROR, CRITICAL), and
// free-form context. The mongo-backed Schema retains records for four hours
// via a TTL index; trace is an audit log, not a permanent record.
//
// The cardinal rule of this package: recording failures never propagate.
// Schema.Send persists fire-and-forget and logs write failures through its
// own error path, so tracing can be sprinkled into any operation without
// changing that operation's failure behavior.
//
//	sink.Send(ctx, trace.Event{
//		Service: "user_model",
//		Status:  trace.StatusConflict,
//		Action:  trace.ActionWarning,
//		Context: map[string]any{"message": "failed to set indices"},
//	})
//
// LogSink (log only) and Nop (drop everything) cover development and tests.
package trace
