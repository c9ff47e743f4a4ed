package trace

import "context"

// Status is an HTTP-status-like code attached to every trace event.
type Status string

const (
	StatusContinue            Status = "100 Continue"
	StatusProcessing          Status = "102 Processing"
	StatusOK                  Status = "200 OK"
	StatusCreated             Status = "201 Created"
	StatusAccepted            Status = "202 Accepted"
	StatusNoContent           Status = "204 No Content"
	StatusFound               Status = "302 Found"
	StatusBadRequest          Status = "400 Bad Request"
	StatusUnauthorized        Status = "401 Unauthorized"
	StatusForbidden           Status = "403 Forbidden"
	StatusNotFound            Status = "404 Not Found"
	StatusConflict            Status = "409 Conflict"
	StatusTooManyRequests     Status = "429 Too Many Requests"
	StatusInternalServerError Status = "500 Internal Server Error"
	StatusServiceUnavailable  Status = "503 Service Unavailable"
)

// Action classifies a trace event within the fixed taxonomy.
type Action string

const (
	ActionInitialization Action = "INITIALIZATION"
	ActionMessage        Action = "MESSAGE"
	ActionWarning        Action = "WARNING"
	ActionError          Action = "ERROR"
	ActionCritical       Action = "CRITICAL"
)

// Event is a structured audit notification. Context carries free-form
// details; a nil Context is normalized to an empty map before persistence.
type Event struct {
	Service string         `bson:"service" json:"service"`
	Status  Status         `bson:"status" json:"status"`
	Action  Action         `bson:"action" json:"action"`
	Context map[string]any `bson:"context" json:"context"`
}

// Sink receives trace events. Implementations must never let a recording
// failure propagate to the caller of the operation being traced.
type Sink interface {
	Send(ctx context.Context, event Event)
}
