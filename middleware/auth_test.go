package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slaim1322111/sitepaynote/auth"
	"github.com/slaim1322111/sitepaynote/models"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func identityEcho(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username": c.GetString("username"),
		"is_admin": c.GetBool("is_admin"),
	})
}

func TestValidateTokenMissing(t *testing.T) {
	r := gin.New()
	r.GET("/private", ValidateToken(testSecret), identityEcho)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateTokenHeaderAndCookie(t *testing.T) {
	token, err := auth.IssueToken(models.User{ID: 7, Username: "alice"}, testSecret)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/private", ValidateToken(testSecret), identityEcho)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := auth.IssueToken(models.User{ID: 7, Username: "alice"}, "other-secret")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/private", ValidateToken(testSecret), identityEcho)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalTokenLetsGuestsThrough(t *testing.T) {
	r := gin.New()
	r.GET("/open", OptionalToken(testSecret), identityEcho)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":""`)
}

func TestRequireAdminRedirectsNonAdmin(t *testing.T) {
	token, err := auth.IssueToken(models.User{ID: 7, Username: "alice"}, testSecret)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin/thing", RequireAdmin(testSecret), identityEcho)

	req := httptest.NewRequest(http.MethodGet, "/admin/thing", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Bounced to the catalog with a flash, not a hard deny.
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	foundFlash := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == FlashCookie {
			foundFlash = true
		}
	}
	assert.True(t, foundFlash)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	token, err := auth.IssueToken(models.User{ID: 1, Username: "admin", IsAdmin: true}, testSecret)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin/thing", RequireAdmin(testSecret), identityEcho)

	req := httptest.NewRequest(http.MethodGet, "/admin/thing", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_admin":true`)
}

func TestRequireAdminNoToken(t *testing.T) {
	r := gin.New()
	r.GET("/admin/thing", RequireAdmin(testSecret), identityEcho)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/thing", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
