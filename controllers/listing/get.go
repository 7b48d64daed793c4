package listingController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/models"
)

// GetListing serves the listing detail: the listing itself, its reviews and
// whether the requester may download the attached file.
func GetListing(db *gorm.DB) gin.HandlerFunc {
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

		var reviews []models.Review
		if err := db.Where("listing_id = ?", listing.ID).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		username := c.GetString("username")
		isAdmin := c.GetBool("is_admin")

		c.JSON(http.StatusOK, gin.H{
			"listing":              listing,
			"reviews":              reviews,
			"user_can_access_file": CanAccessFile(db, listing, username, isAdmin),
		})
	}
}

// CanAccessFile reports whether a requester may download a listing's file:
// the purchaser, the seller, or an admin.
func CanAccessFile(db *gorm.DB, listing models.Listing, username string, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	if username == "" {
		return false
	}
	if username == listing.Seller {
		return true
	}
	var count int64
	db.Model(&models.Purchase{}).
		Where("listing_id = ? AND buyer = ?", listing.ID, username).
		Count(&count)
	return count > 0
}
