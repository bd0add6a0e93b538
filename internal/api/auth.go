package api

import (
	"errors"                            // Error unwrapping
	"net/http"                          // HTTP status codes
	"store_ratings/internal/domain"     // Importing domain models
	"store_ratings/internal/middleware" // Context helpers
	"store_ratings/internal/utils"      // Utility functions
	"strings"                           // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// SignupRequest carries the self-registration payload
type SignupRequest struct {
	Name     string `json:"name"`     // Full name (20-60 characters)
	Email    string `json:"email"`    // Email address
	Address  string `json:"address"`  // Optional address
	Password string `json:"password"` // Plaintext password, hashed before storage
}

// LoginRequest carries the login payload
type LoginRequest struct {
	Email    string `json:"email"`    // Email address
	Password string `json:"password"` // Plaintext password
}

// RefreshRequest carries the refresh token payload
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"` // Refresh token string
}

// UpdatePasswordRequest carries the password change payload
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"` // Current plaintext password
	NewPassword     string `json:"newPassword"`     // New plaintext password
}

// TokenPairResponse bundles a user with a fresh token pair
type TokenPairResponse struct {
	User         *domain.User `json:"user"`         // The authenticated user
	AccessToken  string       `json:"accessToken"`  // Short-lived access token
	RefreshToken string       `json:"refreshToken"` // Long-lived refresh token
}

// validateUserFields applies the shared signup/creation field rules and
// returns a typed error for the first violation
func validateUserFields(name, email, address, password string) *utils.APIError {
	if !isValidName(name) {
		return utils.BadRequest("Name must be between 20 and 60 characters")
	}
	if !isValidEmail(email) {
		return utils.BadRequest("Valid email is required")
	}
	if !isValidAddress(address) {
		return utils.BadRequest("Address must not exceed 400 characters")
	}
	if password == "" {
		return utils.BadRequest("Password is required")
	}
	if !isValidPassword(password) {
		return utils.BadRequest("Password must be 8-16 characters, include 1 uppercase letter and 1 special character")
	}
	return nil
}

// issueTokenPair mints the access and refresh tokens for a user
func issueTokenPair(user *domain.User, secret string) (string, string, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.RoleID, secret) // Mint access token
	if err != nil {
		return "", "", err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, secret) // Mint refresh token
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// SignupHandler registers a new normal_user and returns a token pair
func SignupHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.Error(utils.BadRequest("Invalid request"))
			return
		}
		// Validate all fields with the exact rule set
		if apiErr := validateUserFields(req.Name, req.Email, req.Address, req.Password); apiErr != nil {
			c.Error(apiErr)
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email)) // Emails are stored lowercase
		// Check if the email is already registered
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.Error(utils.Conflict("Email already registered"))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.Error(err) // Unexpected database error
			return
		}
		// Hash the password; plaintext is never persisted or logged
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.Error(err) // Hashing failure is an internal error
			return
		}
		// Self-registration always creates a normal_user
		user := domain.User{
			Name:         req.Name,              // Validated name
			Email:        email,                 // Lowercased email
			PasswordHash: string(hash),          // Bcrypt hash
			RoleID:       domain.RoleNormalUser, // Default role
		}
		if req.Address != "" {
			user.Address = &req.Address // Optional address
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			c.Error(err)
			return
		}
		// Mint the token pair
		accessToken, refreshToken, err := issueTokenPair(&user, jwtSecret)
		if err != nil {
			c.Error(err)
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"role_id": user.RoleID, // Assigned role
		}).Info("User registered")
		// Return the user with the token pair
		utils.Respond(c, http.StatusCreated, TokenPairResponse{
			User:         &user,        // Created user
			AccessToken:  accessToken,  // Access token
			RefreshToken: refreshToken, // Refresh token
		}, "User registered successfully")
	}
}

// LoginHandler authenticates a user and returns a token pair
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(utils.BadRequest("Invalid request"))
			return
		}
		if req.Email == "" {
			c.Error(utils.BadRequest("Email is required"))
			return
		}
		if req.Password == "" {
			c.Error(utils.BadRequest("Password is required"))
			return
		}
		var user domain.User // Fetch user by email
		if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Error(utils.NotFound("User does not exist"))
				return
			}
			c.Error(err)
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.Error(utils.Unauthorized("Password is incorrect"))
			return
		}
		// Mint the token pair
		accessToken, refreshToken, err := issueTokenPair(&user, jwtSecret)
		if err != nil {
			c.Error(err)
			return
		}
		// Log the login
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // Authenticated user ID
		}).Info("User logged in")
		utils.Respond(c, http.StatusOK, TokenPairResponse{
			User:         &user,        // Authenticated user
			AccessToken:  accessToken,  // Access token
			RefreshToken: refreshToken, // Refresh token
		}, "User logged in successfully")
	}
}

// RefreshHandler mints a new access token from a valid refresh token.
// The user's role is re-read from the database so a role change takes effect
// on the next refresh instead of riding the old claim until expiry.
func RefreshHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
			c.Error(utils.Unauthorized("Refresh token required"))
			return
		}
		// Verify signature and expiry of the refresh token
		claims, err := utils.ParseRefreshToken(req.RefreshToken, jwtSecret)
		if err != nil {
			c.Error(utils.Unauthorized("Invalid or expired refresh token"))
			return
		}
		var user domain.User // Re-read the user for the current role
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.Error(utils.Unauthorized("Invalid or expired refresh token"))
			return
		}
		// Mint a fresh access token with the current role
		accessToken, err := utils.GenerateAccessToken(user.ID, user.RoleID, jwtSecret)
		if err != nil {
			c.Error(err)
			return
		}
		utils.Respond(c, http.StatusOK, gin.H{"accessToken": accessToken}, "Token refreshed")
	}
}

// UpdatePasswordHandler changes the authenticated user's password
func UpdatePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.CurrentUserID(c) // Get userID from context
		if !exists {
			c.Error(utils.Unauthorized("Unauthorized"))
			return
		}
		var req UpdatePasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(utils.BadRequest("Invalid request"))
			return
		}
		var user domain.User // Fetch the current hash
		if err := db.First(&user, userID).Error; err != nil {
			c.Error(utils.NotFound("User not found"))
			return
		}
		// The current password must match before anything changes
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			c.Error(utils.BadRequest("Current password is incorrect"))
			return
		}
		// The new password follows the same rule set as signup
		if !isValidPassword(req.NewPassword) {
			c.Error(utils.BadRequest("New password must be 8-16 characters, include 1 uppercase letter and 1 special character"))
			return
		}
		// Hash and persist the new password
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.Error(err)
			return
		}
		if err := db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
			c.Error(err)
			return
		}
		// Log the password change without any credential detail
		logrus.WithFields(logrus.Fields{
			"user_id": userID, // User whose password changed
		}).Info("Password updated")
		utils.Respond(c, http.StatusOK, nil, "Password updated successfully")
	}
}

// MeHandler returns the authenticated user's profile
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.CurrentUserID(c) // Get userID from context
		if !exists {
			c.Error(utils.Unauthorized("Unauthorized"))
			return
		}
		var user domain.User // Fetch the profile
		if err := db.First(&user, userID).Error; err != nil {
			c.Error(utils.NotFound("User not found"))
			return
		}
		utils.Respond(c, http.StatusOK, user, "Profile fetched")
	}
}
