package main

import (
	"log"
	"os"

	"docgentor-be/internal/model"
	"docgentor-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate
	models := []interface{}{
		&model.AppSettings{},
		&model.Entitlement{},
		&model.PaymentRedemption{},
		&model.EntitlementAuditLog{},
	}
	log.Printf("Running AutoMigrate for %d tables...", len(models))

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Fatalf("Error: AutoMigrate failed for %T: %v", m, err)
		}
	}

	log.Println("✅ Migration finished")
}
