package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/auth"
	"github.com/slaim1322111/sitepaynote/config"
	"github.com/slaim1322111/sitepaynote/middleware"
)

// SetupAuthRoutes registers registration, login and logout.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.POST("/register", auth.RegisterHandler(db))
	r.POST("/login", auth.LoginHandler(db, cfg.JWTSecret))
	r.GET("/logout", middleware.ValidateToken(cfg.JWTSecret), auth.LogoutHandler())
}
