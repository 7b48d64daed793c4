package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/logger"
	"github.com/slaim1322111/sitepaynote/models"
)

type addBalanceRequest struct {
	Amount float64 `form:"amount" json:"amount"`
}

type setBalanceRequest struct {
	Balance float64 `form:"balance" json:"balance"`
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "username", "is_admin", "balance", "created_at").
			Order("created_at DESC").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// POST /admin/user/:id/add-balance
func AddUserBalance(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		var req addBalanceRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		if req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
			return
		}

		// Increment in SQL so concurrent purchases cannot clobber it.
		if err := db.Model(&user).
			Update("balance", gorm.Expr("balance + ?", req.Amount)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update balance"})
			return
		}

		db.First(&user, user.ID)
		logger.Log.Infow("Balance credited",
			"user_id", user.ID, "amount", req.Amount, "balance", user.Balance,
			"admin", c.GetString("username"))
		c.JSON(http.StatusOK, gin.H{
			"message": "Balance updated",
			"user_id": user.ID,
			"balance": user.Balance,
		})
	}
}

// POST /admin/user/:id/set-balance
func SetUserBalance(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		var req setBalanceRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid balance"})
			return
		}
		if req.Balance < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Balance cannot be negative"})
			return
		}

		if err := db.Model(&user).Update("balance", req.Balance).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update balance"})
			return
		}

		logger.Log.Infow("Balance set",
			"user_id", user.ID, "balance", req.Balance,
			"admin", c.GetString("username"))
		c.JSON(http.StatusOK, gin.H{
			"message": "Balance updated",
			"user_id": user.ID,
			"balance": req.Balance,
		})
	}
}
