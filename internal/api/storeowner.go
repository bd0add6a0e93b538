package api

import (
	"net/http"                          // HTTP status codes
	"store_ratings/internal/domain"     // Importing domain models
	"store_ratings/internal/middleware" // Context helpers
	"store_ratings/internal/utils"      // Utility functions
	"time"                              // Timestamps

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// OwnerRatingRow is one rating received across the owner's stores
type OwnerRatingRow struct {
	ID        uint      `json:"id"`         // Rating ID
	Rating    int       `json:"rating"`     // Rating value
	CreatedAt time.Time `json:"created_at"` // Submission time
	UserName  string    `json:"user_name"`  // Rater's name via join
	StoreID   uint      `json:"store_id"`   // Which of the owner's stores was rated
}

// OwnerAverageResponse is the cross-store average payload
type OwnerAverageResponse struct {
	AverageRating float64 `json:"average_rating"` // ROUND(AVG,2) across all owned stores, 0 when none
}

// ownedStoreIDs returns the IDs of stores owned by the given user
func ownedStoreIDs(db *gorm.DB, ownerID uint) ([]uint, error) {
	var storeIDs []uint // Owned store IDs
	err := db.Model(&domain.Store{}).Where("owner_id = ?", ownerID).Pluck("id", &storeIDs).Error
	return storeIDs, err
}

// OwnerRatingsHandler lists the ratings received by the caller's stores
func OwnerRatingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, exists := middleware.CurrentUserID(c) // Get userID from context
		if !exists {
			c.Error(utils.Unauthorized("Unauthorized"))
			return
		}
		storeIDs, err := ownedStoreIDs(db, ownerID) // Find stores owned by the caller
		if err != nil {
			c.Error(err)
			return
		}
		if len(storeIDs) == 0 {
			// No stores yet: empty list, not an error
			utils.Respond(c, http.StatusOK, []OwnerRatingRow{}, "No stores found")
			return
		}
		var ratings []OwnerRatingRow // Ratings across all owned stores
		if err := db.Table("ratings r").
			Select("r.id, r.rating, r.created_at, u.name AS user_name, r.store_id").
			Joins("JOIN users u ON r.user_id = u.id").
			Where("r.store_id IN ?", storeIDs).
			Order("r.created_at DESC").
			Scan(&ratings).Error; err != nil {
			c.Error(err)
			return
		}
		if ratings == nil {
			ratings = []OwnerRatingRow{} // Empty list, not null
		}
		utils.Respond(c, http.StatusOK, ratings, "Users who rated your store")
	}
}

// OwnerAverageRatingHandler returns the average rating across the caller's stores
func OwnerAverageRatingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, exists := middleware.CurrentUserID(c) // Get userID from context
		if !exists {
			c.Error(utils.Unauthorized("Unauthorized"))
			return
		}
		storeIDs, err := ownedStoreIDs(db, ownerID) // Find stores owned by the caller
		if err != nil {
			c.Error(err)
			return
		}
		if len(storeIDs) == 0 {
			// No stores yet: zero average, consistent with empty aggregates elsewhere
			utils.Respond(c, http.StatusOK, OwnerAverageResponse{AverageRating: 0}, "No stores found")
			return
		}
		var avg OwnerAverageResponse // Cross-store aggregate
		if err := db.Table("ratings").
			Select("COALESCE(ROUND(AVG(rating), 2), 0) AS average_rating").
			Where("store_id IN ?", storeIDs).
			Scan(&avg).Error; err != nil {
			c.Error(err)
			return
		}
		utils.Respond(c, http.StatusOK, avg, "Average store rating")
	}
}
