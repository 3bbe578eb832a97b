// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// ErrorResponse is the JSON shape produced by the error middleware.
// Declared here for API documentation; handlers never build it directly.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
