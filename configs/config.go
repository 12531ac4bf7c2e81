package configs

import (
	"os"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Quote    QuoteConfig
	Trading  TradingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	OpsPort string
	Env     string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis configuration. An empty URL disables the
// quote cache.
type RedisConfig struct {
	URL string
}

// QuoteConfig holds quote provider configuration
type QuoteConfig struct {
	BaseURL string
	APIKey  string
}

// TradingConfig holds trading configuration
type TradingConfig struct {
	StartingCash string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			OpsPort: getEnv("OPS_PORT", "8081"),
			Env:     getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Quote: QuoteConfig{
			BaseURL: getEnv("QUOTE_API_URL", "https://cloud.iexapis.com"),
			APIKey:  getEnv("API_KEY", ""),
		},
		Trading: TradingConfig{
			StartingCash: getEnv("STARTING_CASH", "10000"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
