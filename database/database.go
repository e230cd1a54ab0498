package database

import (
	"storybook-app/config"
	"storybook-app/internal/domain/stories"
	"storybook-app/internal/domain/themes"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error", "error", err)
	}

	log.Info("Connected and migrated successfully")
}

// Migrate runs AutoMigrate for every domain model. Split out so tests can
// migrate an in-memory database without touching the global.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&themes.Theme{},

		&stories.Series{},
		&stories.Story{},
		&stories.StoryTheme{},
		&stories.StoryVersion{},
		&stories.StoryVersionTheme{},
		&stories.Illustration{},
	)
}
