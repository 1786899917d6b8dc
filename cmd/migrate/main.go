package main

import (
	"log"
	"os"

	"civic-bridge-be/internal/model"
	"civic-bridge-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		dsn = "sqlite://civic_bridge.db"
		log.Printf("Info: DB_CONNECTION_STRING is not set, using %s", dsn)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.Open(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate All Models
	models := model.Schema()
	log.Printf("Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Migration complete")
}
