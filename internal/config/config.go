package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	LogLevel       string
	LogFormat      string
	DataFile       string // reward catalog CSV
	DBFile         string // sqlite backing store
	PriceBaseURL   string
	PriceTimeout   time.Duration
	AllowedOrigins []string // CORS origins for the overlay client
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		DataFile:     getEnv("DATA_FILE", "data/rewards.csv"),
		DBFile:       getEnv("DB_FILE", "data/caskwatch.db"),
		PriceBaseURL: getEnv("PRICE_BASE_URL", "https://runescape.wiki/w"),
		// The overlay client is browser JS, usually loaded from file://
		// which the browser reports as the literal origin "null".
		AllowedOrigins: strings.Split(
			getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8000,null"), ","),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	timeoutStr := getEnv("PRICE_TIMEOUT_SECONDS", "10")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_TIMEOUT_SECONDS value: %w", err)
	}
	cfg.PriceTimeout = time.Duration(timeout) * time.Second

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
