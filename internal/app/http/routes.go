package routes

import (
	seriesapi "storybook-app/internal/api/series"
	storiesapi "storybook-app/internal/api/stories"
	themesapi "storybook-app/internal/api/themes"
	"storybook-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/stories", storiesapi.ListStories)
	r.GET("/stories/:id", storiesapi.GetStoryByID)
	r.GET("/stories/:id/versions", storiesapi.ListStoryVersions)
	r.GET("/themes", themesapi.ListThemes)
	r.GET("/series", seriesapi.ListSeries)

	// Mutating routes go through input sanitization
	mutating := r.Group("/")
	mutating.Use(middleware.SanitizeAndCleanInputMiddleware())

	mutating.POST("/generate", storiesapi.Generate)
	mutating.POST("/generate/text", storiesapi.GenerateText)
	mutating.POST("/stories", storiesapi.CreateStory)
	mutating.PUT("/stories/:id", storiesapi.UpdateStory)
	mutating.DELETE("/stories/:id", storiesapi.DeleteStory)
	mutating.POST("/themes", themesapi.CreateTheme)
}
