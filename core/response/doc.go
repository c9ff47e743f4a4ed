// Package response defines the JSON envelope returned by every endpoint:
//
//	{"status": 200, "description": "Request was successful.",
//	 "message": "Authentication Successful.", "error": false, ...payload}
//
// The numeric status inside the body always matches the HTTP status of the
// response, and each status carries a fixed description sentence. Payload
// fields added with With are merged into the top level of the object.
package response
