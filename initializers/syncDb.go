package initializers

import (
	"errors"

	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ReportSnapshot{},
	)
}

// SeedAdmin creates the configured admin account when it does not exist yet.
func SeedAdmin(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return db.Create(&models.User{Username: username, Password: hashed, Role: models.RoleAdmin}).Error
}

func SyncDatabase() {
	if err := Migrate(DB); err != nil {
		zap.S().Fatalf("Database migration failed: %v", err)
	}
	if err := SeedAdmin(DB, Cfg.AdminUsername, Cfg.AdminPassword); err != nil {
		zap.S().Errorf("Failed to seed admin user: %v", err)
	}
	zap.S().Info("Database synced successfully.")
}
