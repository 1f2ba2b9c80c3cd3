package main

import (
	"github.com/SaidRavestG/secugen-api/internal/config" // Custom import path (Config)
	"github.com/SaidRavestG/secugen-api/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	db.Migrate(cfg.DSN()) // Create the users and fingerprints tables
}
