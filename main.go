package main

import (
	"context"
	"time"

	"storybook-app/config"
	"storybook-app/database"
	storiesapi "storybook-app/internal/api/stories"
	themesapi "storybook-app/internal/api/themes"
	routes "storybook-app/internal/app/http"
	"storybook-app/internal/generation"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	client, err := generation.NewClient(context.Background(), config.GEMINI_API_KEY, config.GEMINI_MODEL)
	if err != nil {
		log.Fatal("Failed to create generation client", "error", err)
	}

	themeCache := generation.NewMemoryThemeCache()
	resolver := generation.NewThemeResolver(database.DB, themeCache)
	persister := generation.NewStoryPersister(database.DB, themeCache)
	orchestrator := generation.NewOrchestrator(client, resolver, persister)

	storiesapi.Init(persister, orchestrator, client)
	themesapi.Init(resolver)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
