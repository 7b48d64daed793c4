package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/slaim1322111/sitepaynote/auth"
)

// FlashCookie carries a one-shot message across the redirect issued when a
// non-admin hits an admin route.
const FlashCookie = "flash"

// ValidateToken requires a valid session token and puts the identity on the
// context under "user_id", "username" and "is_admin".
func ValidateToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseRequestToken(c, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalToken sets the identity when a valid token is present and lets the
// request through either way. Catalog and purchase routes use it: both serve
// guests, but behave differently for logged-in users.
func OptionalToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseRequestToken(c, secret); err == nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin requires a valid token with the admin role. A logged-in
// non-admin is not hard-denied: they are bounced back to the catalog with a
// flash message, matching the rest of the app's form-flow error style.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseRequestToken(c, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if role, _ := claims["role"].(string); role != "admin" {
			c.SetCookie(FlashCookie, "access denied", 60, "/", "", false, false)
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

func parseRequestToken(c *gin.Context, secret string) (jwt.MapClaims, error) {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(auth.TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	// MapClaims stores numbers as float64 after parsing.
	if id, ok := claims["user_id"].(float64); ok {
		c.Set("user_id", uint(id))
	}
	if username, ok := claims["username"].(string); ok {
		c.Set("username", username)
	}
	role, _ := claims["role"].(string)
	c.Set("is_admin", role == "admin")
}
