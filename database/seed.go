package database

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"cartoonhub/internal/auth"
	"cartoonhub/internal/config"
	"cartoonhub/internal/httpapi/models"
)

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
// Skipped when ADMIN_PASSWORD is unset.
func SeedAdmin(db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminPassword == "" {
		logger.Info("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:      cfg.AdminEmail,
		Password:   hashed,
		FirstName:  "Super",
		LastName:   "Admin",
		Role:       models.RoleAdmin,
		IsVerified: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded admin account", "email", cfg.AdminEmail)
	return nil
}
