package middleware

import (
	"errors"                       // Error unwrapping
	"net/http"                     // HTTP status codes
	"store_ratings/internal/utils" // Typed API errors and envelope

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ErrorHandler converts any error attached to the gin context into the
// uniform response envelope. Typed APIErrors keep their status and message;
// anything else becomes a generic 500 with the detail logged server-side only.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Run the handler chain first

		// Nothing to do if no handler recorded an error
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors[0].Err // First error wins
		var apiErr *utils.APIError
		if errors.As(err, &apiErr) {
			// Typed error: status and message are client-safe
			utils.RespondError(c, apiErr.StatusCode, apiErr.Message)
			return
		}
		// Unknown error: log the detail, leak nothing to the client
		logrus.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path, // Request path
			"method": c.Request.Method,   // Request method
			"error":  err.Error(),        // Internal detail
		}).Error("Unhandled error") // Log unexpected failure
		utils.RespondError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
