package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/config"
)

// SetupRoutes is the single entry point that wires up the public catalog,
// auth, user and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Public auth routes
	SetupAuthRoutes(r, db, cfg)

	// Catalog, listings, purchases, gated downloads (guests allowed)
	SetupCatalogRoutes(r, db, cfg)

	// Logged-in user routes
	SetupUserRoutes(r, db, cfg)

	// Admin routes
	SetupAdminRoutes(r, db, cfg)
}
