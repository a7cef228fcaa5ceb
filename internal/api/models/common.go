// Package models defines the JSON request and response types for the
// zonekeeper REST API.
package models

// ErrorResponse carries a single error message. Validation failures embed
// the offending field in the message ("content: ...").
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse reports the outcome of an operation with no other payload.
type StatusResponse struct {
	Status string `json:"status"`
}
