package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/logger"
	"github.com/slaim1322111/sitepaynote/models"
)

// TokenCookie is the cookie carrying the session JWT for browser clients.
// The same token is also accepted in the Authorization header.
const TokenCookie = "token"

const tokenTTL = 24 * time.Hour

var ErrDuplicateUsername = errors.New("username already taken")

type CredentialsRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// POST /register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Password = strings.TrimSpace(req.Password)
		if req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}

		var existing models.User
		err := db.Where("username = ?", req.Username).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": ErrDuplicateUsername.Error()})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Username:     req.Username,
			PasswordHash: hash,
		}
		if err := db.Create(&user).Error; err != nil {
			// Unique index race: a concurrent register of the same name
			// loses here rather than at the lookup above.
			c.JSON(http.StatusConflict, gin.H{"error": ErrDuplicateUsername.Error()})
			return
		}

		logger.Log.Infow("User registered", "user_id", user.ID, "username", user.Username)
		c.JSON(http.StatusCreated, gin.H{"message": "Registration successful. Please log in."})
	}
}

// POST /login
func LoginHandler(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		req.Username = strings.TrimSpace(req.Username)

		var user models.User
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if !CheckPassword(user.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := IssueToken(user, secret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		setTokenCookie(c, token)
		logger.Log.Infow("User logged in", "user_id", user.ID, "username", user.Username)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}

// GET /logout
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// IssueToken generates a session JWT for a user.
func IssueToken(user models.User, secret string) (string, error) {
	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     role,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(TokenCookie, token, int(tokenTTL.Seconds()), "/", "", false, true)
}
