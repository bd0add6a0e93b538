package utils

import "github.com/gin-gonic/gin" // Gin web framework

// Response is the uniform JSON envelope for every endpoint
type Response struct {
	Success    bool   `json:"success"`    // True on success paths
	StatusCode int    `json:"statusCode"` // Mirrors the HTTP status code
	Message    string `json:"message"`    // Human-readable outcome
	Data       any    `json:"data"`       // Payload, null when a handler has none
}

// Respond writes a success envelope with the given status, data and message
func Respond(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, Response{
		Success:    true,       // Success path
		StatusCode: statusCode, // Mirrors the HTTP status
		Message:    message,    // Outcome message
		Data:       data,       // Payload
	})
}

// ErrorResponse is the error envelope; it carries no data key
type ErrorResponse struct {
	Success    bool   `json:"success"`    // Always false
	StatusCode int    `json:"statusCode"` // Mirrors the HTTP status code
	Message    string `json:"message"`    // Error message
}

// RespondError writes an error envelope without a data field
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{
		Success:    false,      // Error path
		StatusCode: statusCode, // Mirrors the HTTP status
		Message:    message,    // Error message
	})
}
