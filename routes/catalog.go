package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/config"
	catalogController "github.com/slaim1322111/sitepaynote/controllers/catalog"
	contactController "github.com/slaim1322111/sitepaynote/controllers/contact"
	fileController "github.com/slaim1322111/sitepaynote/controllers/files"
	listingController "github.com/slaim1322111/sitepaynote/controllers/listing"
	reviewController "github.com/slaim1322111/sitepaynote/controllers/review"
	"github.com/slaim1322111/sitepaynote/middleware"
)

// SetupCatalogRoutes registers the public surface: catalog search, listing
// detail and purchase, listing creation, receipts, gated downloads, reviews
// and the contact form. Guests may browse and buy; identity, when present,
// changes what they see.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	optional := middleware.OptionalToken(cfg.JWTSecret)

	r.GET("/", optional, catalogController.GetListings(db))

	// Gin cannot register /listing/new next to /listing/:id, so the "new"
	// form endpoints are dispatched inside the :id handlers.
	newInfo := listingController.NewListingInfo(cfg)
	create := listingController.CreateListing(db, cfg)

	r.GET("/listing/:id", optional, func(c *gin.Context) {
		if c.Param("id") == "new" {
			requireUser(c, newInfo)
			return
		}
		listingController.GetListing(db)(c)
	})
	r.POST("/listing/:id", optional, func(c *gin.Context) {
		if c.Param("id") == "new" {
			requireUser(c, create)
			return
		}
		listingController.PurchaseListing(db)(c)
	})

	r.POST("/listing/:id/reviews", optional, reviewController.CreateReview(db))
	r.GET("/checkout/:purchase_id", optional, listingController.GetCheckout(db))
	r.GET("/uploads/:filename", optional, fileController.DownloadUpload(db, cfg))
	r.POST("/contact", contactController.CreateMessage(db))
}

// requireUser guards the listing-creation endpoints, which share the public
// /listing/:id tree but need a signed-in seller.
func requireUser(c *gin.Context, handler gin.HandlerFunc) {
	if c.GetString("username") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required to create a listing"})
		return
	}
	handler(c)
}
