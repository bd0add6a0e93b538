package domain

// Store Model
type Store struct {
	ID      uint   `gorm:"primaryKey" json:"id"`   // Primary key
	Name    string `gorm:"not null" json:"name"`   // Store name
	Email   string `json:"email"`                  // Contact email
	Address string `gorm:"size:400" json:"address"` // Store address
	OwnerID *uint  `json:"owner_id"`               // Optional foreign key to the owning User (store_owner role)
	Owner   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"` // Owner relation
}
