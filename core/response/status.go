package response

import "net/http"

// Status is the numeric status carried inside the envelope body. It mirrors
// the HTTP status of the response itself, so clients can rely on the body
// alone when the transport status is unavailable.
type Status int

const (
	StatusOK                  Status = http.StatusOK
	StatusBadRequest          Status = http.StatusBadRequest
	StatusUnauthorized        Status = http.StatusUnauthorized
	StatusConflict            Status = http.StatusConflict
	StatusInternalServerError Status = http.StatusInternalServerError
)

// Code returns the symbolic constant name for the status.
func (s Status) Code() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusBadRequest:
		return "BAD_REQUEST"
	case StatusUnauthorized:
		return "UNAUTHORIZED"
	case StatusConflict:
		return "CONFLICT"
	case StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	}
	return "INTERNAL_SERVER_ERROR"
}

// Description returns the fixed human-readable sentence for the status.
// These strings are part of the client contract and must not change.
func (s Status) Description() string {
	switch s {
	case StatusOK:
		return "Request was successful."
	case StatusBadRequest:
		return "Request failed due to one or more validation exceptions while processing this request."
	case StatusUnauthorized:
		return "Request failed due to one or more authorization exceptions while processing this request."
	case StatusConflict:
		return "Request failed due to one or more conflicting state exceptions while processing this request."
	case StatusInternalServerError:
		return "Request failed due to one or more unexpected exceptions while processing this request."
	}
	return StatusInternalServerError.Description()
}
