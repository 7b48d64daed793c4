package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/config"
	adminController "github.com/slaim1322111/sitepaynote/controllers/admin"
	"github.com/slaim1322111/sitepaynote/middleware"
)

// SetupAdminRoutes registers the "/admin/*" endpoints. A non-admin hitting
// them is redirected back to the catalog, not hard-denied.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(cfg.JWTSecret))
	{
		adminGroup.GET("/approve/:id", adminController.ApproveListing(db))
		adminGroup.GET("/pending", adminController.ListPendingListings(db))

		adminGroup.GET("/users", adminController.GetAllUsers(db))
		adminGroup.POST("/user/:id/add-balance", adminController.AddUserBalance(db))
		adminGroup.POST("/user/:id/set-balance", adminController.SetUserBalance(db))

		adminGroup.GET("/listings/export-excel", adminController.ExportListingsToExcel(db))
		adminGroup.GET("/moderation/ws", adminController.ModerationFeedHandler)
	}
}
