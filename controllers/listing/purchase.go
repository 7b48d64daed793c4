package listingController

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/slaim1322111/sitepaynote/logger"
	"github.com/slaim1322111/sitepaynote/models"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// insufficientBalanceError carries the balance seen under the row lock so the
// handler can report it without a second query.
type insufficientBalanceError struct {
	have, need float64
}

func (e *insufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %.2f, need %.2f", e.have, e.need)
}

func (e *insufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

type purchaseRequest struct {
	// Buyer is only honored for guest purchases; authenticated buyers are
	// identified by their token.
	Buyer string `form:"buyer" json:"buyer"`
}

// PurchaseListing handles POST /listing/:id.
//
// An authenticated buyer pays from their balance: debit, seller credit and
// the Purchase row are committed in one transaction with both user rows
// locked, so concurrent purchases serialize instead of double-debiting.
// A guest purchase records a freeform buyer name and moves no money.
func PurchaseListing(db *gorm.DB) gin.HandlerFunc {
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

		var req purchaseRequest
		_ = c.ShouldBind(&req)

		var purchase *models.Purchase
		var err error

		if username := c.GetString("username"); username != "" {
			purchase, err = purchaseAsUser(db, listing, username)
			var insufficient *insufficientBalanceError
			if errors.As(err, &insufficient) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf(
						"Insufficient balance: have %.2f, need %.2f",
						insufficient.have, insufficient.need),
				})
				return
			}
		} else {
			purchase, err = purchaseAsGuest(db, listing, req.Buyer)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Purchase failed"})
			return
		}

		logger.Log.Infow("Purchase completed",
			"purchase_id", purchase.ID, "listing_id", listing.ID,
			"buyer", purchase.Buyer, "price", listing.Price)

		c.JSON(http.StatusCreated, gin.H{
			"message":     fmt.Sprintf("Thank you, %s! You purchased %q for %.2f", purchase.Buyer, listing.Title, listing.Price),
			"purchase_id": purchase.ID,
			"ref":         purchase.Ref,
			"checkout":    fmt.Sprintf("/checkout/%d", purchase.ID),
		})
	}
}

func purchaseAsUser(db *gorm.DB, listing models.Listing, username string) (*models.Purchase, error) {
	purchase := &models.Purchase{
		ListingID:   listing.ID,
		Buyer:       username,
		Ref:         generatePurchaseRef(),
		PurchasedAt: time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var buyer, seller models.User
		sellerFound := false

		lockUser := func(name string, dst *models.User) error {
			return lockForUpdate(tx).Where("username = ?", name).First(dst).Error
		}
		// Seller is linked by username only. A missing seller account
		// forfeits the credit but the purchase still goes through.
		lockSeller := func() error {
			switch err := lockUser(listing.Seller, &seller); {
			case err == nil:
				sellerFound = true
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
			return nil
		}

		// Rows are always locked in username order, whichever role they
		// play, so two crossed purchases cannot deadlock on Postgres.
		switch {
		case username == listing.Seller:
			if err := lockUser(username, &buyer); err != nil {
				return err
			}
		case username < listing.Seller:
			if err := lockUser(username, &buyer); err != nil {
				return err
			}
			if err := lockSeller(); err != nil {
				return err
			}
		default:
			if err := lockSeller(); err != nil {
				return err
			}
			if err := lockUser(username, &buyer); err != nil {
				return err
			}
		}

		// Re-checked under the lock: a concurrent purchase may have
		// drained the balance since the handler looked at the listing.
		if buyer.Balance < listing.Price {
			return &insufficientBalanceError{have: buyer.Balance, need: listing.Price}
		}

		// Buying your own listing nets to zero, so skip the transfer.
		if username != listing.Seller {
			buyer.Balance -= listing.Price
			if err := tx.Save(&buyer).Error; err != nil {
				return err
			}
			if sellerFound {
				seller.Balance += listing.Price
				if err := tx.Save(&seller).Error; err != nil {
					return err
				}
			}
		}

		return tx.Create(purchase).Error
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func purchaseAsGuest(db *gorm.DB, listing models.Listing, buyer string) (*models.Purchase, error) {
	if buyer == "" {
		buyer = "guest"
	}
	purchase := &models.Purchase{
		ListingID:   listing.ID,
		Buyer:       buyer,
		Ref:         generatePurchaseRef(),
		PurchasedAt: time.Now(),
	}
	if err := db.Create(purchase).Error; err != nil {
		return nil, err
	}
	return purchase, nil
}

// lockForUpdate adds SELECT ... FOR UPDATE on PostgreSQL. SQLite has no row
// locks; its single-writer transactions serialize the transfer anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// generatePurchaseRef returns a unique receipt reference.
func generatePurchaseRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
