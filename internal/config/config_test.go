package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"CONVERTFLOW_ENV", "CONVERTFLOW_LOG_LEVEL", "CONVERTFLOW_JPEG_QUALITY",
		"CONVERTFLOW_COMPRESS_QUALITY", "CONVERTFLOW_FALLBACK_DELAY_MS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "production" || cfg.LogLevel != "info" || cfg.JPEGQuality != 92 ||
		cfg.CompressQuality != 60 || cfg.FallbackDelay != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONVERTFLOW_ENV", "development")
	t.Setenv("CONVERTFLOW_JPEG_QUALITY", "75")
	t.Setenv("CONVERTFLOW_FALLBACK_DELAY_MS", "80")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "development" || cfg.JPEGQuality != 75 || cfg.FallbackDelay != 80*time.Millisecond {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBadQuality(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONVERTFLOW_COMPRESS_QUALITY", "101")
	if _, err := Load(); err == nil {
		t.Error("expected error for quality 101")
	}
}
