package main

import (
	"log"

	"github.com/animatic-studio/config"
	"github.com/animatic-studio/database"
)

func main() {
	log.Println("Starting database migration...")

	config.LoadEnv()

	// Initialize opens the connection and runs AutoMigrate for all models
	database.Initialize()

	log.Println("Database migration completed successfully!")
}
