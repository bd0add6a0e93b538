package api

import (
	"context"                       // Context for Redis operations
	"errors"                        // Error unwrapping
	"net/http"                      // HTTP status codes
	"store_ratings/internal/domain" // Importing domain models
	"store_ratings/internal/utils"  // Utility functions
	"strings"                       // String manipulation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// dashboardCacheKey caches the admin dashboard counts
const dashboardCacheKey = "admin:dashboard"

// UserListItem is one row of the admin user listing
type UserListItem struct {
	ID          uint    `json:"id"`           // User ID
	Name        string  `json:"name"`         // User name
	Email       string  `json:"email"`        // User email
	Address     *string `json:"address"`      // User address, may be null
	Role        string  `json:"role"`         // Role name via join
	StoreRating float64 `json:"store_rating"` // Average rating across owned stores, 0 when none
}

// CreateUserRequest carries the admin user-creation payload
type CreateUserRequest struct {
	Name     string `json:"name"`     // Full name (20-60 characters)
	Email    string `json:"email"`    // Email address
	Address  string `json:"address"`  // Optional address
	Password string `json:"password"` // Plaintext password, hashed before storage
	Role     string `json:"role"`     // Role by name: system_admin, normal_user, store_owner
}

// DashboardResponse is the admin dashboard counts payload
type DashboardResponse struct {
	Users   int64 `json:"users"`   // Total users
	Stores  int64 `json:"stores"`  // Total stores
	Ratings int64 `json:"ratings"` // Total ratings
}

// ListUsersHandler returns users with role and owner-aggregate rating,
// filtered and sorted through the allow-list
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Base query: users joined to role name and the per-owner average
		// rating over all stores they own
		query := db.Table("users u").
			Select(`u.id, u.name, u.email, u.address, r.name AS role,
				COALESCE(sr.avg_store_rating, 0) AS store_rating`).
			Joins("JOIN roles r ON u.role_id = r.id").
			Joins(`LEFT JOIN (
				SELECT s.owner_id, ROUND(AVG(rt.rating), 2) AS avg_store_rating
				FROM stores s
				LEFT JOIN ratings rt ON s.id = rt.store_id
				GROUP BY s.owner_id
			) sr ON sr.owner_id = u.id`)
		// Substring filters, always bound parameters
		if name := c.Query("name"); name != "" {
			query = query.Where("u.name ILIKE ?", "%"+name+"%") // Case-insensitive name filter
		}
		if email := c.Query("email"); email != "" {
			query = query.Where("u.email ILIKE ?", "%"+email+"%") // Case-insensitive email filter
		}
		if address := c.Query("address"); address != "" {
			query = query.Where("u.address ILIKE ?", "%"+address+"%") // Case-insensitive address filter
		}
		if role := c.Query("role"); role != "" {
			query = query.Where("r.name = ?", role) // Exact role match
		}
		// Order via the allow-list with id tie-break
		query = query.Order(orderClause(userSortColumns, c.DefaultQuery("sort", "name"), c.DefaultQuery("dir", "asc"), "name", "u.id"))
		var users []UserListItem // Listing rows
		if err := query.Scan(&users).Error; err != nil {
			c.Error(err)
			return
		}
		if users == nil {
			users = []UserListItem{} // Empty list, not null
		}
		utils.Respond(c, http.StatusOK, users, "Users fetched")
	}
}

// CreateUserHandler creates a user with an explicit role; admin only
func CreateUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(utils.BadRequest("Invalid request"))
			return
		}
		// Same field rules as signup
		if apiErr := validateUserFields(req.Name, req.Email, req.Address, req.Password); apiErr != nil {
			c.Error(apiErr)
			return
		}
		// Resolve the role by name
		var role domain.Role
		if err := db.Where("name = ?", req.Role).First(&role).Error; err != nil {
			c.Error(utils.BadRequest("Role not found"))
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email)) // Emails are stored lowercase
		// Check if the email is already registered
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.Error(utils.Conflict("Email already registered"))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.Error(err)
			return
		}
		// Hash the password
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.Error(err)
			return
		}
		user := domain.User{
			Name:         req.Name,     // Validated name
			Email:        email,        // Lowercased email
			PasswordHash: string(hash), // Bcrypt hash
			RoleID:       role.ID,      // Requested role
		}
		if req.Address != "" {
			user.Address = &req.Address // Optional address
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			c.Error(err)
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // New user ID
			"role":    role.Name, // Assigned role
		}).Info("User created by admin")
		// Invalidate the dashboard counts cache
		_ = utils.DeleteCache(context.Background(), rdb, dashboardCacheKey)
		utils.Respond(c, http.StatusCreated, user, "User created")
	}
}

// DashboardHandler returns entity counts for the admin dashboard, cached
func DashboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var counts DashboardResponse
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, dashboardCacheKey, &counts)
		if err == nil && found {
			utils.Respond(c, http.StatusOK, counts, "Dashboard data")
			return
		}
		// Count each entity
		if err := db.Model(&domain.User{}).Count(&counts.Users).Error; err != nil {
			c.Error(err)
			return
		}
		if err := db.Model(&domain.Store{}).Count(&counts.Stores).Error; err != nil {
			c.Error(err)
			return
		}
		if err := db.Model(&domain.Rating{}).Count(&counts.Ratings).Error; err != nil {
			c.Error(err)
			return
		}
		// Cache the counts until the next write invalidates them
		_ = utils.SetCache(ctx, rdb, dashboardCacheKey, counts, utils.CacheTTL)
		utils.Respond(c, http.StatusOK, counts, "Dashboard data")
	}
}
