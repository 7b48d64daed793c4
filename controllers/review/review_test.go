package reviewController

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

	"github.com/slaim1322111/sitepaynote/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Listing{}, &models.Review{}))
	return db
}

func reviewRouter(db *gorm.DB, username string) *gin.Engine {
	r := gin.New()
	r.POST("/listing/:id/reviews", func(c *gin.Context) {
		if username != "" {
			c.Set("username", username)
		}
		c.Next()
	}, CreateReview(db))
	return r
}

func postReview(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReview(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Listing{Title: "Score", Price: 100}).Error)
	r := reviewRouter(db, "")

	w := postReview(r, "/listing/1/reviews", url.Values{
		"author": {"carol"}, "rating": {"4"}, "comment": {"nice scan"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var review models.Review
	require.NoError(t, db.First(&review).Error)
	assert.Equal(t, "carol", review.Author)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewAuthorFromSession(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Listing{Title: "Score", Price: 100}).Error)
	r := reviewRouter(db, "alice")

	// Signed-in identity wins over the form value.
	w := postReview(r, "/listing/1/reviews", url.Values{
		"author": {"impostor"}, "rating": {"5"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var review models.Review
	require.NoError(t, db.First(&review).Error)
	assert.Equal(t, "alice", review.Author)
}

func TestReviewRatingValidation(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Listing{Title: "Score", Price: 100}).Error)
	r := reviewRouter(db, "")

	for _, rating := range []string{"0", "6", "-1", ""} {
		w := postReview(r, "/listing/1/reviews", url.Values{"rating": {rating}})
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %q", rating)
	}

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestReviewUnknownListing(t *testing.T) {
	db := setupTestDB(t)
	r := reviewRouter(db, "")
	w := postReview(r, "/listing/9/reviews", url.Values{"rating": {"3"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
