// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	JWT         JWTConfig
	Gemini      GeminiConfig
	Scraper     ScraperConfig
	Cache       CacheConfig
	RateLimit   RateLimitConfig
	Frontend    FrontendConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
}

type GeminiConfig struct {
	APIKey string
}

type ScraperConfig struct {
	TimeoutSeconds int
	MaxPages       int
	MaxProducts    int
	PageSize       int
	UserAgent      string
}

type CacheConfig struct {
	TTLHours int
	Capacity int
}

type RateLimitConfig struct {
	GeneralRPS   float64
	GeneralBurst int
	AuthRPS      float64
	AuthBurst    int
}

type FrontendConfig struct {
	BaseURL string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 24), // 24 hours
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Scraper: ScraperConfig{
			TimeoutSeconds: getEnvAsInt("SCRAPER_TIMEOUT", 20),
			MaxPages:       getEnvAsInt("SCRAPER_MAX_PAGES", 3),
			MaxProducts:    getEnvAsInt("SCRAPER_MAX_PRODUCTS", 750),
			PageSize:       getEnvAsInt("SCRAPER_PAGE_SIZE", 250),
			UserAgent:      getEnv("SCRAPER_USER_AGENT", ""),
		},
		Cache: CacheConfig{
			TTLHours: getEnvAsInt("CACHE_TTL_HOURS", 24),
			Capacity: getEnvAsInt("CACHE_CAPACITY", 50),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   getEnvAsFloat("RATE_LIMIT_GENERAL_RPS", 10),
			GeneralBurst: getEnvAsInt("RATE_LIMIT_GENERAL_BURST", 20),
			AuthRPS:      getEnvAsFloat("RATE_LIMIT_AUTH_RPS", 1),
			AuthBurst:    getEnvAsInt("RATE_LIMIT_AUTH_BURST", 5),
		},
		Frontend: FrontendConfig{
			BaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Gemini.APIKey == "" && c.Environment == "production" {
		return fmt.Errorf("GEMINI_API_KEY is required in production")
	}

	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache capacity must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
