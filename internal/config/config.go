package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Upstream   UpstreamConfig
	Search     SearchConfig
	PostgreSQL PostgreSQLConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// UpstreamConfig holds the property data provider configuration. The
// location resolver and the listing API live behind the same gateway, so
// they share a base URL and credentials.
type UpstreamConfig struct {
	BaseURL        string
	APIKey         string
	APIHost        string
	TimeoutSeconds int
}

// SearchConfig holds search-related configuration
type SearchConfig struct {
	PageSize    int
	DefaultSort string
}

// PostgreSQLConfig holds the optional search-log database configuration.
// An empty DSN disables telemetry logging entirely.
type PostgreSQLConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Upstream: UpstreamConfig{
			BaseURL:        getEnv("UPSTREAM_BASE_URL", "https://bayut.p.rapidapi.com"),
			APIKey:         getEnv("UPSTREAM_API_KEY", ""),
			APIHost:        getEnv("UPSTREAM_API_HOST", "bayut.p.rapidapi.com"),
			TimeoutSeconds: getEnvAsInt("UPSTREAM_TIMEOUT", 10),
		},
		Search: SearchConfig{
			PageSize:    getEnvAsInt("SEARCH_PAGE_SIZE", 24),
			DefaultSort: getEnv("SEARCH_DEFAULT_SORT", "date-desc"),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}
