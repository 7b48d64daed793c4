package listingController

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/logger"
	"github.com/slaim1322111/sitepaynote/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitLoggerDev()
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Listing{}, &models.Purchase{}, &models.Review{},
	))
	return db
}

// asUser plants a session identity the way the token middleware would.
func asUser(username string, id uint, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("username", username)
		c.Set("is_admin", admin)
		c.Next()
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, balance float64) models.User {
	user := models.User{Username: username, PasswordHash: "x", Balance: balance}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createListing(t *testing.T, db *gorm.DB, title, seller string, price float64) models.Listing {
	listing := models.Listing{Title: title, Seller: seller, Price: price, IsApproved: true}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func purchaseRouter(db *gorm.DB, identity gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{}
	if identity != nil {
		handlers = append(handlers, identity)
	}
	handlers = append(handlers, PurchaseListing(db))
	r.POST("/listing/:id", handlers...)
	r.GET("/checkout/:purchase_id", GetCheckout(db))
	return r
}

func postPurchase(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func balanceOf(t *testing.T, db *gorm.DB, username string) float64 {
	var user models.User
	require.NoError(t, db.Where("username = ?", username).First(&user).Error)
	return user.Balance
}

func TestPurchaseTransfersBalance(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "Alice", 1000)
	createUser(t, db, "Bob", 0)
	listing := createListing(t, db, "Moonlight Sonata", "Bob", 500)

	r := purchaseRouter(db, asUser("Alice", 1, false))
	w := postPurchase(r, "/listing/1", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, 500.0, balanceOf(t, db, "Alice"))
	assert.Equal(t, 500.0, balanceOf(t, db, "Bob"))

	var purchases []models.Purchase
	require.NoError(t, db.Where("listing_id = ?", listing.ID).Find(&purchases).Error)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Alice", purchases[0].Buyer)
	assert.NotEmpty(t, purchases[0].Ref)
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "Alice", 100)
	createUser(t, db, "Bob", 0)
	createListing(t, db, "Moonlight Sonata", "Bob", 500)

	r := purchaseRouter(db, asUser("Alice", 1, false))
	w := postPurchase(r, "/listing/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Reports the balance seen inside the transaction, not a re-read.
	assert.Contains(t, w.Body.String(), "have 100.00, need 500.00")

	// Nothing mutated.
	assert.Equal(t, 100.0, balanceOf(t, db, "Alice"))
	assert.Equal(t, 0.0, balanceOf(t, db, "Bob"))

	var count int64
	db.Model(&models.Purchase{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestGuestPurchaseMovesNoMoney(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "Bob", 0)
	createListing(t, db, "Moonlight Sonata", "Bob", 500)

	r := purchaseRouter(db, nil)
	w := postPurchase(r, "/listing/1", url.Values{"buyer": {"Charlie"}})
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, 0.0, balanceOf(t, db, "Bob"))

	var purchase models.Purchase
	require.NoError(t, db.First(&purchase).Error)
	assert.Equal(t, "Charlie", purchase.Buyer)
}

func TestGuestPurchaseDefaultName(t *testing.T) {
	db := setupTestDB(t)
	createListing(t, db, "Moonlight Sonata", "Bob", 500)

	r := purchaseRouter(db, nil)
	w := postPurchase(r, "/listing/1", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var purchase models.Purchase
	require.NoError(t, db.First(&purchase).Error)
	assert.Equal(t, "guest", purchase.Buyer)
}

func TestPurchaseMissingSellerStillCompletes(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "Alice", 1000)
	createListing(t, db, "Orphaned Score", "vanished", 300)

	r := purchaseRouter(db, asUser("Alice", 1, false))
	w := postPurchase(r, "/listing/1", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Buyer is debited, credit is forfeited.
	assert.Equal(t, 700.0, balanceOf(t, db, "Alice"))

	var count int64
	db.Model(&models.Purchase{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPurchaseUnknownListing(t *testing.T) {
	db := setupTestDB(t)
	r := purchaseRouter(db, nil)
	w := postPurchase(r, "/listing/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSequentialPurchasesDrainBalanceExactly(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "Alice", 1000)
	createUser(t, db, "Bob", 0)
	createListing(t, db, "Moonlight Sonata", "Bob", 400)

	r := purchaseRouter(db, asUser("Alice", 1, false))

	assert.Equal(t, http.StatusCreated, postPurchase(r, "/listing/1", nil).Code)
	assert.Equal(t, http.StatusCreated, postPurchase(r, "/listing/1", nil).Code)
	// Third one exceeds the remaining 200.
	assert.Equal(t, http.StatusBadRequest, postPurchase(r, "/listing/1", nil).Code)

	assert.Equal(t, 200.0, balanceOf(t, db, "Alice"))
	assert.Equal(t, 800.0, balanceOf(t, db, "Bob"))
}

func TestCrossedPurchasesBothComplete(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "Alice", 1000)
	createUser(t, db, "Bob", 1000)
	createListing(t, db, "Sonata by Bob", "Bob", 300)
	createListing(t, db, "Etude by Alice", "Alice", 200)

	// Buyer sorts before seller in one purchase and after in the other,
	// exercising both lock orderings.
	asAlice := purchaseRouter(db, asUser("Alice", 1, false))
	asBob := purchaseRouter(db, asUser("Bob", 2, false))

	require.Equal(t, http.StatusCreated, postPurchase(asAlice, "/listing/1", nil).Code)
	require.Equal(t, http.StatusCreated, postPurchase(asBob, "/listing/2", nil).Code)

	assert.Equal(t, 900.0, balanceOf(t, db, "Alice"))
	assert.Equal(t, 1100.0, balanceOf(t, db, "Bob"))

	var count int64
	db.Model(&models.Purchase{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestPurchaseOwnListingKeepsBalance(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "Alice", 1000)
	createListing(t, db, "My Own Score", "Alice", 400)

	r := purchaseRouter(db, asUser("Alice", 1, false))
	require.Equal(t, http.StatusCreated, postPurchase(r, "/listing/1", nil).Code)

	// Debit and credit land on the same account.
	assert.Equal(t, 1000.0, balanceOf(t, db, "Alice"))

	var purchase models.Purchase
	require.NoError(t, db.First(&purchase).Error)
	assert.Equal(t, "Alice", purchase.Buyer)
}

func TestCheckoutReceipt(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "Alice", 1000)
	createUser(t, db, "Bob", 0)
	createListing(t, db, "Moonlight Sonata", "Bob", 500)

	r := purchaseRouter(db, asUser("Alice", 1, false))
	require.Equal(t, http.StatusCreated, postPurchase(r, "/listing/1", nil).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Moonlight Sonata")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
