package favoriteController

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/models"
)

// GET /favorites
func GetFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var favorites []models.Favorite
		if err := db.Preload("Listing").Where("user_id = ?", c.GetUint("user_id")).
			Order("created_at DESC").Find(&favorites).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
			return
		}
		c.JSON(http.StatusOK, favorites)
	}
}

// POST /favorites/:listing_id
// Idempotent: favoriting twice returns the existing row.
func AddFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var listing models.Listing
		if err := db.First(&listing, "id = ?", c.Param("listing_id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate listing"})
			return
		}

		var favorite models.Favorite
		err := db.Where("user_id = ? AND listing_id = ?", userID, listing.ID).
			First(&favorite).Error
		if err == nil {
			c.JSON(http.StatusOK, favorite)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorite"})
			return
		}

		favorite = models.Favorite{
			UserID:    userID,
			ListingID: listing.ID,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&favorite).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
			return
		}
		c.JSON(http.StatusCreated, favorite)
	}
}

// DELETE /favorites/:listing_id
func RemoveFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("user_id = ? AND listing_id = ?",
			c.GetUint("user_id"), c.Param("listing_id")).Delete(&models.Favorite{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
	}
}
