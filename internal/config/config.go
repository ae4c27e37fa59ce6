package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the environment-driven settings of the server.
type Config struct {
	AppHost       string
	DataDir       string
	UploadDir     string
	FrontendDir   string
	AdminUsername string
	AdminPassword string
	JWTSecret     string
	JWTExpiration time.Duration
}

// Load reads the configuration from the environment. JWT_SECRET and the
// admin credentials are mandatory; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		AppHost:       getEnv("APP_HOST", ":3000"),
		DataDir:       getEnv("DATA_DIR", "database"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		FrontendDir:   getEnv("FRONTEND_DIR", "frontend"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD environment variables are not set")
	}

	expiration := getEnv("JWT_EXPIRATION", "1h")
	d, err := time.ParseDuration(expiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION %q: %w", expiration, err)
	}
	cfg.JWTExpiration = d

	return cfg, nil
}

// CategoriesFile is the path of the category collection file.
func (c *Config) CategoriesFile() string {
	return filepath.Join(c.DataDir, "categories.json")
}

// AssetsFile is the path of the asset collection file.
func (c *Config) AssetsFile() string {
	return filepath.Join(c.DataDir, "assets.json")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
