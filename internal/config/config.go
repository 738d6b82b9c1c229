// Package config loads CLI settings from .env files and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings the convertflow CLI reads at startup.
type Config struct {
	Env             string
	LogLevel        string
	JPEGQuality     int
	CompressQuality int
	FallbackDelay   time.Duration
}

// Load reads .env and .env.local when present, then the CONVERTFLOW_*
// variables. Variables already set in the environment win over the files.
func Load() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{
		Env:             getEnv("CONVERTFLOW_ENV", "production"),
		LogLevel:        getEnv("CONVERTFLOW_LOG_LEVEL", "info"),
		JPEGQuality:     getEnvInt("CONVERTFLOW_JPEG_QUALITY", 92),
		CompressQuality: getEnvInt("CONVERTFLOW_COMPRESS_QUALITY", 60),
		FallbackDelay:   time.Millisecond * time.Duration(getEnvInt("CONVERTFLOW_FALLBACK_DELAY_MS", 0)),
	}

	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, fmt.Errorf("CONVERTFLOW_JPEG_QUALITY must be 1-100, got %d", cfg.JPEGQuality)
	}
	if cfg.CompressQuality < 1 || cfg.CompressQuality > 100 {
		return nil, fmt.Errorf("CONVERTFLOW_COMPRESS_QUALITY must be 1-100, got %d", cfg.CompressQuality)
	}
	if cfg.FallbackDelay < 0 {
		return nil, fmt.Errorf("CONVERTFLOW_FALLBACK_DELAY_MS must not be negative")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
