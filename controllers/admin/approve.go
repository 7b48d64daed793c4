package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/logger"
	"github.com/slaim1322111/sitepaynote/models"
)

// ApproveListing flips a listing from pending to approved. The transition is
// one-way and idempotent: approving an approved listing changes nothing.
func ApproveListing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var listing models.Listing
		if err := db.First(&listing, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if !listing.IsApproved {
			if err := db.Model(&listing).Update("is_approved", true).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve listing"})
				return
			}
			logger.Log.Infow("Listing approved",
				"listing_id", listing.ID, "admin", c.GetString("username"))
		}

		c.JSON(http.StatusOK, gin.H{"message": "Listing approved", "listing_id": listing.ID})
	}
}

// ListPendingListings returns the moderation queue, newest first.
func ListPendingListings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.Listing
		if err := db.Where("is_approved = ?", false).
			Order("created_at DESC").Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending listings"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}
