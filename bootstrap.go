package main

import (
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/auth"
	"github.com/slaim1322111/sitepaynote/config"
	"github.com/slaim1322111/sitepaynote/logger"
	"github.com/slaim1322111/sitepaynote/models"
)

// prepareSchema migrates the schema and seeds initial data. Migration
// failures are fatal only under STRICT_MIGRATE; the default prefers
// availability and keeps the process starting on a degraded schema.
func prepareSchema(db *gorm.DB, cfg *config.Config) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Purchase{},
		&models.Review{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Message{},
	)
	if err != nil {
		if cfg.StrictMigrate {
			logger.Log.Fatalw("AutoMigrate failed", "error", err)
		}
		logger.Log.Warnw("AutoMigrate failed, continuing anyway", "error", err)
	}

	// Seeding is always best-effort.
	if err := ensureAdminUser(db); err != nil {
		logger.Log.Warnw("Could not ensure admin user", "error", err)
	}
	if err := seedListings(db); err != nil {
		logger.Log.Warnw("Could not seed listings", "error", err)
	}
}

// ensureAdminUser creates the development admin account (admin/admin) when
// no user with that name exists yet.
func ensureAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     "admin",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Log.Infow("Seeded admin user", "user_id", admin.ID)
	return nil
}

// seedListings creates a pair of sample listings on an empty catalog.
func seedListings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Listing{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []models.Listing{
		{
			Title:       "Лунная соната (фортепиано) — Ноты",
			Description: "Качественное сканированное издание нот для первой части «Лунной сонаты» (Beethoven).",
			Price:       500.00,
			Seller:      "Alice",
			Composer:    "Beethoven",
			Genre:       "classical",
		},
		{
			Title:       "Сборник гитарных риффов",
			Description: "Табы и аккорды на 20 классических риффов для гитары.",
			Price:       350.00,
			Seller:      "Bob",
			Genre:       "rock",
		},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			return err
		}
	}
	logger.Log.Infow("Seeded sample listings", "count", len(seed))
	return nil
}
