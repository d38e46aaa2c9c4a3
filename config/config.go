package config

import (
	"fmt"
	"os"
	"time"

	"newsinsight/internal/models"
)

// Config holds the application configuration
type Config struct {
	Port             string        // HTTP listen port
	DatabaseURL      string        // Postgres DSN; empty means in-memory store
	ValkeyAddr       string        // Valkey address; empty disables the trending cache
	JWTSecret        string        // Bearer-token secret; empty disables auth
	TrendingCacheTTL time.Duration // How long the trending list stays cached
	SimulatedDelays  bool          // Artificial latency on credential-free operations
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		Port:             getEnv("PORT", "8000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		ValkeyAddr:       getEnv("VALKEY_INIT_ADDRESS", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TrendingCacheTTL: 5 * time.Minute,
		SimulatedDelays:  getEnv("SIMULATED_DELAYS", "on") != "off",
	}

	if ttlStr := os.Getenv("TRENDING_CACHE_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid TRENDING_CACHE_TTL format: %w", err)
		}
		config.TrendingCacheTTL = duration
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.TrendingCacheTTL <= 0 {
		return fmt.Errorf("TRENDING_CACHE_TTL must be positive")
	}

	return nil
}

// Credentials returns a fresh API key snapshot. Read per gateway call, never
// cached, so key changes take effect on the next operation.
func Credentials() models.Credentials {
	return models.Credentials{
		NewsAPIKey:   os.Getenv("NEWS_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
