package response

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every JSON response: a numeric status mirroring
// the HTTP status, the fixed description for that status, a request-specific
// message, an error flag, and optional payload fields merged into the top
// level of the object.
type Envelope struct {
	Status      Status `json:"status"`
	Description string `json:"description"`
	Message     string `json:"message"`
	Error       bool   `json:"error"`

	payload map[string]any
}

// Success builds a 200 envelope with the given message.
func Success(message string) Envelope {
	return Envelope{
		Status:      StatusOK,
		Description: StatusOK.Description(),
		Message:     message,
	}
}

// Failure builds an error envelope for the given status.
func Failure(status Status, message string) Envelope {
	return Envelope{
		Status:      status,
		Description: status.Description(),
		Message:     message,
		Error:       true,
	}
}

// With returns a copy of the envelope carrying an extra top-level payload
// field. Reserved field names (status, description, message, error) are
// ignored to keep the envelope contract intact.
func (e Envelope) With(key string, value any) Envelope {
	switch key {
	case "status", "description", "message", "error":
		return e
	}
	payload := make(map[string]any, len(e.payload)+1)
	for k, v := range e.payload {
		payload[k] = v
	}
	payload[key] = value
	e.payload = payload
	return e
}

// MarshalJSON flattens payload fields into the envelope object.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 4+len(e.payload))
	for k, v := range e.payload {
		out[k] = v
	}
	out["status"] = e.Status
	out["description"] = e.Description
	out["message"] = e.Message
	out["error"] = e.Error
	return json.Marshal(out)
}

// JSON writes the envelope as the response body, with the HTTP status
// taken from the envelope itself.
func JSON(c echo.Context, e Envelope) error {
	return c.JSON(int(e.Status), e)
}
