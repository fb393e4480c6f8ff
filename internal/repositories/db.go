package repositories

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/modelia/ai-studio-server/internal/models"
)

// Connect opens the database and runs migrations. The unique index on
// users.email is what guarantees a register race yields one winner.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Successfully connected to database")
	return db, nil
}

// Migrate applies the schema. Split out so tests can run it against sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Generation{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
