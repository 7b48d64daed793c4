package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/slaim1322111/sitepaynote/models"
)

// ExportListingsToExcel dumps the full catalog, approved or not, as an xlsx
// download for offline moderation work.
func ExportListingsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var listings []models.Listing
		if err := db.Order("created_at DESC").Find(&listings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Listings")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Title", "Price", "Seller", "Approved",
			"Genre", "Composer", "Tags", "FileName", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, l := range listings {
			row := sheet.AddRow()
			row.AddCell().SetValue(l.ID)
			row.AddCell().SetValue(l.Title)
			row.AddCell().SetValue(l.Price)
			row.AddCell().SetValue(l.Seller)
			row.AddCell().SetValue(l.IsApproved)
			row.AddCell().SetValue(l.Genre)
			row.AddCell().SetValue(l.Composer)
			row.AddCell().SetValue(l.Tags)
			row.AddCell().SetValue(l.FileName)
			row.AddCell().SetValue(l.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=listings.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
