package main

import (
	"store_ratings/internal/config" // Custom import path (Config)
	"store_ratings/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Run schema migration and role seeding against PostgreSQL
	db.Migrate(cfg.DSN())
}
