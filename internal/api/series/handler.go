package series

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storybook-app/database"
	storydom "storybook-app/internal/domain/stories"
)

// ------------------------------
// GET /series
// ------------------------------
func ListSeries(c *gin.Context) {
	var out []storydom.Series
	if err := database.DB.Order("name ASC").Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}
	c.JSON(http.StatusOK, out)
}
