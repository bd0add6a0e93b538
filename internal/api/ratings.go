package api

import (
	"context"                           // Context for Redis operations
	"errors"                            // Error unwrapping
	"net/http"                          // HTTP status codes
	"store_ratings/internal/domain"     // Importing domain models
	"store_ratings/internal/middleware" // Context helpers
	"store_ratings/internal/utils"      // Utility functions
	"strconv"                           // String conversion
	"time"                              // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
	"gorm.io/gorm/clause"          // ON CONFLICT upsert clause
)

// SubmitRatingRequest carries the rating payload
type SubmitRatingRequest struct {
	Rating int `json:"rating"` // Rating value, 1-5 inclusive
}

// RatingAverage is the aggregate block of the store rating summary
type RatingAverage struct {
	AvgRating    float64 `json:"avg_rating"`    // ROUND(AVG,2), 0 when unrated
	TotalReviews int64   `json:"total_reviews"` // Number of ratings
}

// RatingReview is one review row with the rater's name
type RatingReview struct {
	ID        uint      `json:"id"`         // Rating ID
	Rating    int       `json:"rating"`     // Rating value
	CreatedAt time.Time `json:"created_at"` // Submission time
	UserName  string    `json:"user_name"`  // Rater's name via join
}

// RatingSummary is the cached GET response for a store
type RatingSummary struct {
	Average RatingAverage  `json:"average"` // Aggregate block
	Reviews []RatingReview `json:"reviews"` // Individual reviews, newest first
}

// ratingsCacheKey builds the cache key for a store's rating summary
func ratingsCacheKey(storeID uint) string {
	return "ratings:store:" + strconv.Itoa(int(storeID))
}

// storeIDParam parses the :storeId path parameter
func storeIDParam(c *gin.Context) (uint, *utils.APIError) {
	id, err := strconv.Atoi(c.Param("storeId")) // Parse path parameter
	if err != nil || id <= 0 {
		return 0, utils.BadRequest("Invalid store ID")
	}
	return uint(id), nil
}

// GetStoreRatingsHandler returns the average rating and review list for a store
func GetStoreRatingsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, apiErr := storeIDParam(c) // Parse the store ID
		if apiErr != nil {
			c.Error(apiErr)
			return
		}
		ctx := context.Background()         // Context for Redis operations
		cacheKey := ratingsCacheKey(storeID) // Cache key for this store's summary
		var summary RatingSummary
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, cacheKey, &summary)
		if err == nil && found {
			utils.Respond(c, http.StatusOK, summary, "Ratings fetched")
			return
		}
		// Live aggregation: average rounds to 2 decimals, 0 when no ratings
		if err := db.Table("ratings").
			Select("COALESCE(ROUND(AVG(rating), 2), 0) AS avg_rating, COUNT(*) AS total_reviews").
			Where("store_id = ?", storeID).
			Scan(&summary.Average).Error; err != nil {
			c.Error(err)
			return
		}
		// Individual reviews with the rater's name, newest first
		if err := db.Table("ratings r").
			Select("r.id, r.rating, r.created_at, u.name AS user_name").
			Joins("JOIN users u ON r.user_id = u.id").
			Where("r.store_id = ?", storeID).
			Order("r.created_at DESC").
			Scan(&summary.Reviews).Error; err != nil {
			c.Error(err)
			return
		}
		if summary.Reviews == nil {
			summary.Reviews = []RatingReview{} // Empty list, not null
		}
		// Cache the summary until the next write invalidates it
		_ = utils.SetCache(ctx, rdb, cacheKey, summary, utils.CacheTTL)
		utils.Respond(c, http.StatusOK, summary, "Ratings fetched")
	}
}

// SubmitRatingHandler inserts or updates the caller's rating for a store.
// The write is a single atomic upsert keyed by the (user_id, store_id)
// unique index; a resubmission overwrites the value and refreshes the
// timestamp instead of adding a second row.
func SubmitRatingHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.CurrentUserID(c) // Get userID from context
		if !exists {
			c.Error(utils.Unauthorized("Unauthorized"))
			return
		}
		storeID, apiErr := storeIDParam(c) // Parse the store ID
		if apiErr != nil {
			c.Error(apiErr)
			return
		}
		var req SubmitRatingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(utils.BadRequest("Invalid request"))
			return
		}
		// Value must be in [1,5] for both initial and update submissions
		if req.Rating < 1 || req.Rating > 5 {
			c.Error(utils.BadRequest("Rating must be between 1 and 5"))
			return
		}
		// The store must exist; a dangling FK should not surface as a 500
		var store domain.Store
		if err := db.First(&store, storeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Error(utils.NotFound("Store not found"))
				return
			}
			c.Error(err)
			return
		}
		// Atomic upsert: INSERT ... ON CONFLICT (user_id, store_id) DO UPDATE
		rating := domain.Rating{
			UserID:  userID,     // Rater
			StoreID: storeID,    // Rated store
			Rating:  req.Rating, // Submitted value
		}
		if err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}}, // Conflict target
			DoUpdates: clause.Assignments(map[string]any{
				"rating":     req.Rating, // Overwrite the value
				"updated_at": time.Now(), // Refresh the timestamp
			}),
		}).Create(&rating).Error; err != nil {
			c.Error(err)
			return
		}
		// Re-read the resulting row so the response carries the real ID and timestamps
		if err := db.Where("user_id = ? AND store_id = ?", userID, storeID).First(&rating).Error; err != nil {
			c.Error(err)
			return
		}
		// Log the submission
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,     // Rater
			"store_id": storeID,    // Rated store
			"rating":   req.Rating, // Submitted value
		}).Info("Rating saved")
		// Invalidate the summary and dashboard caches
		ctx := context.Background()
		_ = utils.DeleteCache(ctx, rdb, ratingsCacheKey(storeID))
		_ = utils.DeleteCache(ctx, rdb, dashboardCacheKey)
		utils.Respond(c, http.StatusCreated, rating, "Rating saved/updated")
	}
}
