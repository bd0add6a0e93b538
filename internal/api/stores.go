package api

import (
	"context"                           // Context for Redis operations
	"errors"                            // Error unwrapping
	"net/http"                          // HTTP status codes
	"store_ratings/internal/domain"     // Importing domain models
	"store_ratings/internal/middleware" // Context helpers
	"store_ratings/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// StoreListItem is one row of the store listing with its aggregate rating
type StoreListItem struct {
	ID            uint    `json:"id"`             // Store ID
	Name          string  `json:"name"`           // Store name
	Email         string  `json:"email"`          // Store email
	Address       string  `json:"address"`        // Store address
	OwnerID       *uint   `json:"owner_id"`       // Owner user ID, null when unowned
	OwnerName     *string `json:"owner_name"`     // Owner name via join
	OwnerEmail    *string `json:"owner_email"`    // Owner email via join
	AverageRating float64 `json:"average_rating"` // ROUND(AVG,2), 0 when unrated
	UserRating    *int    `json:"user_rating"`    // Requesting user's own rating, null when unset
}

// CreateStoreRequest carries the admin store-creation payload
type CreateStoreRequest struct {
	Name    string `json:"name"`     // Store name
	Email   string `json:"email"`    // Contact email
	Address string `json:"address"`  // Store address
	OwnerID *uint  `json:"owner_id"` // Optional owning user, must hold store_owner role
}

// ListStoresHandler returns stores with aggregate ratings, filtered and sorted.
// Filters bind as parameters; the sort column resolves through the allow-list.
func ListStoresHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.CurrentUserID(c) // Get userID from context
		if !exists {
			c.Error(utils.Unauthorized("Unauthorized"))
			return
		}
		// Base query: stores joined to their owner and aggregate rating
		query := db.Table("stores s").
			Select(`s.id, s.name, s.email, s.address, s.owner_id,
				u.name AS owner_name, u.email AS owner_email,
				COALESCE(ROUND(AVG(r.rating), 2), 0) AS average_rating`).
			Joins("LEFT JOIN users u ON s.owner_id = u.id").
			Joins("LEFT JOIN ratings r ON s.id = r.store_id")
		// Substring filters, always bound parameters
		if name := c.Query("name"); name != "" {
			query = query.Where("s.name ILIKE ?", "%"+name+"%") // Case-insensitive name filter
		}
		if address := c.Query("address"); address != "" {
			query = query.Where("s.address ILIKE ?", "%"+address+"%") // Case-insensitive address filter
		}
		// Group for the aggregate, order via the allow-list with id tie-break
		query = query.Group("s.id, u.name, u.email").
			Order(orderClause(storeSortColumns, c.DefaultQuery("sort", "name"), c.DefaultQuery("dir", "asc"), "name", "s.id"))
		var stores []StoreListItem // Listing rows
		if err := query.Scan(&stores).Error; err != nil {
			c.Error(err)
			return
		}
		if stores == nil {
			stores = []StoreListItem{} // Empty list, not null
		}
		// Attach the requesting user's own rating per store
		if len(stores) > 0 {
			storeIDs := make([]uint, len(stores)) // Collect listed store IDs
			for i, s := range stores {
				storeIDs[i] = s.ID
			}
			var userRatings []domain.Rating // The user's ratings over the listed stores
			if err := db.Where("user_id = ? AND store_id IN ?", userID, storeIDs).Find(&userRatings).Error; err != nil {
				c.Error(err)
				return
			}
			byStore := make(map[uint]int, len(userRatings)) // store_id -> rating value
			for _, r := range userRatings {
				byStore[r.StoreID] = r.Rating
			}
			for i := range stores {
				if v, ok := byStore[stores[i].ID]; ok {
					rating := v
					stores[i].UserRating = &rating // Set the user's own rating
				}
			}
		}
		utils.Respond(c, http.StatusOK, stores, "Stores fetched")
	}
}

// CreateStoreHandler creates a store; the route is gated to system_admin
func CreateStoreHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateStoreRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(utils.BadRequest("Invalid request"))
			return
		}
		if req.Name == "" {
			c.Error(utils.BadRequest("Store name is required"))
			return
		}
		// An assigned owner must exist and hold the store_owner role
		if req.OwnerID != nil {
			var owner domain.User
			err := db.Where("id = ? AND role_id = ?", *req.OwnerID, domain.RoleStoreOwner).First(&owner).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Error(utils.BadRequest("Invalid or non-store-owner owner_id"))
				return
			} else if err != nil {
				c.Error(err)
				return
			}
		}
		store := domain.Store{
			Name:    req.Name,    // Store name
			Email:   req.Email,   // Contact email
			Address: req.Address, // Store address
			OwnerID: req.OwnerID, // Optional owner
		}
		// Attempt to create the store in the database
		if err := db.Create(&store).Error; err != nil {
			c.Error(err)
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"store_id": store.ID,    // New store ID
			"owner_id": req.OwnerID, // Assigned owner, may be nil
		}).Info("Store created")
		// Invalidate the dashboard counts cache
		_ = utils.DeleteCache(context.Background(), rdb, dashboardCacheKey)
		utils.Respond(c, http.StatusCreated, store, "Store created")
	}
}
