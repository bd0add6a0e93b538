package utils

import "net/http" // HTTP status codes

// APIError is a typed error carrying an HTTP status code and a client-safe message.
// Handlers attach it to the gin context; the error middleware converts it into
// the uniform response envelope.
type APIError struct {
	StatusCode int    // HTTP status code for the response
	Message    string // Client-facing message
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a typed API error
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// Common constructors for the error taxonomy
func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, message) // 400 malformed input
}

func Unauthorized(message string) *APIError {
	return NewAPIError(http.StatusUnauthorized, message) // 401 missing/expired/invalid token
}

func Forbidden(message string) *APIError {
	return NewAPIError(http.StatusForbidden, message) // 403 insufficient role
}

func NotFound(message string) *APIError {
	return NewAPIError(http.StatusNotFound, message) // 404 missing resource
}

func Conflict(message string) *APIError {
	return NewAPIError(http.StatusConflict, message) // 409 duplicate email or constraint violation
}
