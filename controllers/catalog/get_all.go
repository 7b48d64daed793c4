package catalogController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/models"
)

// GetListings serves the catalog with optional filters: free-text title
// match, genre, composer and a price range, AND-combined. Everyone but
// admins sees approved listings only.
func GetListings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		genre := c.Query("genre")
		composer := c.Query("composer")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")

		query := db.Model(&models.Listing{})

		if !c.GetBool("is_admin") {
			query = query.Where("is_approved = ?", true)
		}

		// LOWER(...) LIKE instead of ILIKE so the same query runs on both
		// PostgreSQL and the SQLite development fallback.
		if q != "" {
			query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+q+"%")
		}
		if genre != "" {
			query = query.Where("LOWER(genre) LIKE LOWER(?)", "%"+genre+"%")
		}
		if composer != "" {
			query = query.Where("LOWER(composer) LIKE LOWER(?)", "%"+composer+"%")
		}

		// Unparsable price bounds are ignored rather than rejected; the
		// catalog is a search form, not an API contract.
		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			}
		}

		var listings []models.Listing
		if err := query.Order("created_at DESC").Find(&listings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
			return
		}

		c.JSON(http.StatusOK, listings)
	}
}
