package middleware

import (
	"net/http"                     // HTTP status codes
	"store_ratings/internal/utils" // JWT utility functions and envelope
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys populated on successful authentication
const (
	ContextUserIDKey = "userID" // Authenticated user ID
	ContextRoleIDKey = "roleID" // Authenticated role ID
)

// JWTAuthMiddleware validates the bearer token and enforces role membership.
// An empty role list admits any authenticated user. Routes declare their
// required roles once at registration; this is the single enforcement point.
func JWTAuthMiddleware(secret string, roles ...uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			utils.RespondError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseAccessToken(tokenStr, secret)
		if err != nil {
			// Signature or expiry check failed, abort with unauthorized status
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		// Enforce role membership when the route declared a required set
		if len(roles) > 0 && !containsRole(roles, claims.RoleID) {
			// Valid token, wrong role: forbidden
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID) // Store user ID in context
		c.Set(ContextRoleIDKey, claims.RoleID) // Store role ID in context
		c.Next()                               // Proceed to the next handler
	}
}

// containsRole reports whether roleID is in the allowed set
func containsRole(roles []uint, roleID uint) bool {
	for _, r := range roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// CurrentUserID extracts the authenticated user ID from the gin context
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserIDKey) // Get userID from context
	if !exists {
		return 0, false // Middleware did not run
	}
	id, ok := v.(uint)
	return id, ok
}
