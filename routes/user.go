package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/config"
	cartController "github.com/slaim1322111/sitepaynote/controllers/cart"
	favoriteController "github.com/slaim1322111/sitepaynote/controllers/favorite"
	userController "github.com/slaim1322111/sitepaynote/controllers/user"
	"github.com/slaim1322111/sitepaynote/middleware"
)

// SetupUserRoutes registers everything that needs a signed-in user.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authed := r.Group("/")
	authed.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		authed.GET("/dashboard", userController.Dashboard(db))

		cartGroup := authed.Group("/cart")
		{
			cartGroup.GET("", cartController.GetCart(db))
			cartGroup.POST("/:listing_id", cartController.AddCartItem(db))
			cartGroup.DELETE("/:listing_id", cartController.DeleteCartItem(db))
			cartGroup.DELETE("", cartController.ClearCart(db))
		}

		favGroup := authed.Group("/favorites")
		{
			favGroup.GET("", favoriteController.GetFavorites(db))
			favGroup.POST("/:listing_id", favoriteController.AddFavorite(db))
			favGroup.DELETE("/:listing_id", favoriteController.RemoveFavorite(db))
		}
	}
}
