package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all environment variables for the service.
type Config struct {
	Port           string
	Env            string
	MongoURL       string
	MongoDB        string
	RedisURL       string
	JWTSecret      string
	AllowedOrigins string
	TokenTTL       time.Duration
	CarCacheTTL    time.Duration
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "5000"),
		Env:            getEnv("APP_ENV", "development"),
		MongoURL:       getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "Ijar"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		TokenTTL:       time.Hour * 24,
		CarCacheTTL:    time.Minute * 5,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
