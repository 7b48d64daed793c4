package fileController

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/config"
	listingController "github.com/slaim1322111/sitepaynote/controllers/listing"
	"github.com/slaim1322111/sitepaynote/models"
)

// DownloadUpload serves GET /uploads/:filename, gated to the purchaser, the
// seller, or an admin. Everyone else gets 404, not 403: a denied response
// must not reveal that the file exists.
func DownloadUpload(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := filepath.Base(c.Param("filename"))

		var listing models.Listing
		if err := db.Where("file_name = ?", filename).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		username := c.GetString("username")
		if !listingController.CanAccessFile(db, listing, username, c.GetBool("is_admin")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		path := filepath.Join(cfg.UploadDir, filename)
		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		c.FileAttachment(path, filename)
	}
}
