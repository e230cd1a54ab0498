package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	CORS_ORIGIN string

	GEMINI_API_KEY string
	GEMINI_MODEL   string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	GEMINI_API_KEY = mustEnv("GEMINI_API_KEY")
	GEMINI_MODEL = getEnv("GEMINI_MODEL", "gemini-2.5-flash")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
