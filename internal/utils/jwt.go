package utils

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Token lifetimes
const (
	AccessTokenTTL  = time.Hour          // Access tokens expire after 1 hour
	RefreshTokenTTL = 7 * 24 * time.Hour // Refresh tokens expire after 7 days
)

// AccessClaims carries identity and role for a single session window
type AccessClaims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	RoleID               uint `json:"role_id"` // Custom claim for role ID
	jwt.RegisteredClaims      // Standard JWT claims
}

// RefreshClaims carries only the identity; the role is re-read on refresh
type RefreshClaims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims      // Standard JWT claims
}

// GenerateAccessToken creates a short-lived JWT carrying user ID and role
func GenerateAccessToken(userID, roleID uint, secret string) (string, error) {
	// Set token claims
	claims := AccessClaims{
		UserID: userID, // Custom claim for user ID
		RoleID: roleID, // Custom claim for role ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenTTL)), // Token expires in 1 hour
			IssuedAt:  jwt.NewNumericDate(time.Now()),                     // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// GenerateRefreshToken creates a long-lived JWT used solely to mint access tokens
func GenerateRefreshToken(userID uint, secret string) (string, error) {
	// Set token claims
	claims := RefreshClaims{
		UserID: userID, // Custom claim for user ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTokenTTL)), // Token expires in 7 days
			IssuedAt:  jwt.NewNumericDate(time.Now()),                      // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseAccessToken parses and validates an access token string
func ParseAccessToken(tokenStr, secret string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors (bad signature, expired, malformed)
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}

// ParseRefreshToken parses and validates a refresh token string
func ParseRefreshToken(tokenStr, secret string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*RefreshClaims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
