package themes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storybook-app/database"
	themedom "storybook-app/internal/domain/themes"
	"storybook-app/internal/generation"
)

var resolver *generation.ThemeResolver

// Init wires the handlers to the shared resolver built in main.
func Init(r *generation.ThemeResolver) {
	resolver = r
}

type ThemeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// ------------------------------
// GET /themes
// ------------------------------
func ListThemes(c *gin.Context) {
	var out []themedom.Theme
	if err := database.DB.Order("name ASC").Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load themes"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /themes  (lookup-or-create)
// ------------------------------
// A name collision returns the existing theme rather than erroring.
func CreateTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	var count int64
	if err := database.DB.Model(&themedom.Theme{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up theme"})
		return
	}

	t, err := resolver.Resolve(generation.ThemeDescriptor{
		Name:        name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create theme", "details": err.Error()})
		return
	}

	if count > 0 {
		c.JSON(http.StatusOK, t)
		return
	}
	c.JSON(http.StatusCreated, t)
}
