package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	DatabasePath   string
	JWTSecret      string
	BackupPath     string
	BackupSchedule string // standard cron expression
}

// Load loads configuration from the environment (and an optional .env file)
// or sets defaults.
func Load() (*Config, error) {
	// A missing .env file is fine; real environments set variables directly.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./notebook.db"),
		JWTSecret:      getEnv("JWT_SECRET", "notebook-dev-secret"),
		BackupPath:     getEnv("BACKUP_PATH", "./backups"),
		BackupSchedule: getEnv("BACKUP_SCHEDULE", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
