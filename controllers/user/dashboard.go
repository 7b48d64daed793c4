package userController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/models"
)

// Dashboard serves the signed-in user's view: their uploads, their purchases
// with the listings joined in, and, for admins, the moderation queue.
func Dashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")

		var uploads []models.Listing
		if err := db.Where("seller = ?", username).
			Order("created_at DESC").Find(&uploads).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch uploads"})
			return
		}

		var purchases []models.Purchase
		if err := db.Preload("Listing").Where("buyer = ?", username).
			Order("purchased_at DESC").Find(&purchases).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
			return
		}

		resp := gin.H{
			"uploads":   uploads,
			"purchases": purchases,
		}

		if c.GetBool("is_admin") {
			var pending []models.Listing
			if err := db.Where("is_approved = ?", false).
				Order("created_at DESC").Find(&pending).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending listings"})
				return
			}
			resp["pending"] = pending
		}

		c.JSON(http.StatusOK, resp)
	}
}
