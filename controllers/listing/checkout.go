package listingController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/models"
)

// GetCheckout serves the receipt for a completed purchase.
func GetCheckout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var purchase models.Purchase
		if err := db.Preload("Listing").
			First(&purchase, "id = ?", c.Param("purchase_id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"purchase": purchase,
			"listing":  purchase.Listing,
		})
	}
}
