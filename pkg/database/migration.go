package database

import (
	"fmt"

	"github.com/Payphone-Digital/catalog-api/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs schema migrations for all models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.User{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
