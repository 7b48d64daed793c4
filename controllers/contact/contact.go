package contactController

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/models"
)

type contactInput struct {
	Sender  string `form:"sender" json:"sender"`
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Body    string `form:"body" json:"body"`
}

// CreateMessage handles the contact form.
func CreateMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input contactInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if strings.TrimSpace(input.Body) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message body is required"})
			return
		}

		message := models.Message{
			Sender:    strings.TrimSpace(input.Sender),
			Email:     strings.TrimSpace(input.Email),
			Subject:   strings.TrimSpace(input.Subject),
			Body:      strings.TrimSpace(input.Body),
			CreatedAt: time.Now(),
		}
		if err := db.Create(&message).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Message received"})
	}
}
