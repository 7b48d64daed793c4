package listingController

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/slaim1322111/sitepaynote/controllers/admin"

	"github.com/slaim1322111/sitepaynote/config"
	"github.com/slaim1322111/sitepaynote/logger"
	"github.com/slaim1322111/sitepaynote/models"
)

var unsafeFilenameChars = regexp.MustCompile(`[^\w\d\-_\.]`)

// NewListingInfo serves the creation-form metadata: what the client may
// upload. Auth required, like the form itself.
func NewListingInfo(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"allowed_extensions": cfg.AllowedExtensionList(),
			"max_upload_bytes":   cfg.MaxUploadBytes,
		})
	}
}

// CreateListing handles POST /listing/new: a multipart form with title,
// price, optional metadata and an optional file attachment. New listings
// start unapproved and invisible until a moderator approves them.
func CreateListing(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := strings.TrimSpace(c.PostForm("title"))
		priceStr := strings.TrimSpace(c.PostForm("price"))
		if title == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and price are required"})
			return
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a number"})
			return
		}

		var filename string
		if file, err := c.FormFile("file"); err == nil && file.Filename != "" {
			ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
			if !cfg.ExtensionAllowed(ext) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "File type not allowed. Allowed: " +
						strings.Join(cfg.AllowedExtensionList(), ","),
				})
				return
			}
			if cfg.MaxUploadBytes > 0 && file.Size > cfg.MaxUploadBytes {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{
					"error": fmt.Sprintf("File too large: limit is %d bytes", cfg.MaxUploadBytes),
				})
				return
			}

			clean := unsafeFilenameChars.ReplaceAllString(filepath.Base(file.Filename), "_")
			filename = fmt.Sprintf("%d_%s", time.Now().Unix(), clean)

			if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
				return
			}
			if err := c.SaveUploadedFile(file, filepath.Join(cfg.UploadDir, filename)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
				return
			}
		}

		listing := models.Listing{
			Title:       title,
			Description: strings.TrimSpace(c.PostForm("description")),
			Price:       price,
			Seller:      c.GetString("username"),
			Genre:       strings.TrimSpace(c.PostForm("genre")),
			Composer:    strings.TrimSpace(c.PostForm("composer")),
			Tags:        strings.TrimSpace(c.PostForm("tags")),
			FileName:    filename,
			CreatedAt:   time.Now(),
		}
		if err := db.Create(&listing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
			return
		}

		logger.Log.Infow("Listing created",
			"listing_id", listing.ID, "seller", listing.Seller, "file", filename)
		adminController.BroadcastNewListing(listing)

		c.JSON(http.StatusCreated, gin.H{"message": "Listing created", "listing": listing})
	}
}
