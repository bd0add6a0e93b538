package db

import (
	"store_ratings/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/gorm"            // GORM ORM library
)

// Migrate performs automatic migration for the database schema and seeds roles
func Migrate(dsn string) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.Role{}, &domain.User{}, &domain.Store{}, &domain.Rating{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	SeedRoles(db)                       // Seed the static role reference data
	logrus.Info("Migration completed.") // Log successful migration
}

// SeedRoles inserts the three fixed roles if they are missing
func SeedRoles(db *gorm.DB) {
	// Fixed role IDs: the auth layer relies on these values
	roles := []domain.Role{
		{ID: domain.RoleSystemAdmin, Name: "system_admin"},
		{ID: domain.RoleNormalUser, Name: "normal_user"},
		{ID: domain.RoleStoreOwner, Name: "store_owner"},
	}
	for _, role := range roles {
		// FirstOrCreate keeps reruns idempotent
		if err := db.Where(domain.Role{ID: role.ID}).FirstOrCreate(&role).Error; err != nil {
			logrus.Fatalf("role seeding failed: %v", err) // Log fatal error if seeding fails
		}
	}
}
