package domain

import "time"

// Rating Model
// At most one row per (user, store) pair, enforced by the composite unique
// index and the ON CONFLICT upsert in the ratings handler.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                              // Primary key
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_store" json:"user_id"`  // Foreign key to User
	StoreID   uint      `gorm:"not null;uniqueIndex:idx_user_store" json:"store_id"` // Foreign key to Store
	Rating    int       `gorm:"not null" json:"rating"`                            // Rating value, 1-5 inclusive
	CreatedAt time.Time `json:"created_at"`                                        // Set on insert
	UpdatedAt time.Time `json:"updated_at"`                                        // Refreshed on resubmission
}
