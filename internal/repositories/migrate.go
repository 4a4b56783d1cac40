package repositories

import (
	"fmt"

	"mwork_admission/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate создает таблицы допуска, включая частичный уникальный индекс заявок.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Casting{},
		&models.CastingRole{},
		&models.Assignment{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
