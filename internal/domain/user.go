package domain

// Role IDs seeded by the migration
const (
	RoleSystemAdmin uint = 1 // system_admin role ID
	RoleNormalUser  uint = 2 // normal_user role ID
	RoleStoreOwner  uint = 3 // store_owner role ID
)

// Role Model (static reference data)
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`        // Primary key
	Name string `gorm:"unique;not null" json:"name"` // Role name: system_admin, normal_user, store_owner
}

// User Model
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`                  // Primary key
	Name         string  `gorm:"not null" json:"name"`                  // Full name (20-60 characters)
	Email        string  `gorm:"unique;not null" json:"email"`          // Unique email, stored lowercase
	Address      *string `gorm:"size:400" json:"address"`               // Optional address (max 400 characters)
	PasswordHash string  `gorm:"not null" json:"-"`                     // Hashed password, never serialized
	RoleID       uint    `gorm:"not null;default:2" json:"role_id"`     // Foreign key to Role, defaults to normal_user
	Role         Role    `gorm:"constraint:OnUpdate:CASCADE;" json:"-"` // Role relation
}
