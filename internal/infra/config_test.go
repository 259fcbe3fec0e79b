package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_LOCALE", "")
	t.Setenv("VIDEO_POLL_INTERVAL_SECONDS", "")
	t.Setenv("VIDEO_WAIT_BUDGET_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.DefaultLocale != "ar" {
		t.Fatalf("DefaultLocale mismatch: got %q want %q", cfg.DefaultLocale, "ar")
	}
	if cfg.VideoPollInterval != 10*time.Second {
		t.Fatalf("VideoPollInterval mismatch: got %v", cfg.VideoPollInterval)
	}
	if cfg.VideoWaitBudget != 10*time.Minute {
		t.Fatalf("VideoWaitBudget mismatch: got %v", cfg.VideoWaitBudget)
	}
	if cfg.ModelFast == "" || cfg.ModelPro == "" || cfg.ModelVideo == "" {
		t.Fatalf("model defaults missing: %+v", cfg)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("VIDEO_POLL_INTERVAL_SECONDS", "2")
	t.Setenv("VIDEO_WAIT_BUDGET_SECONDS", "90")
	t.Setenv("MODEL_VIDEO", "veo-custom")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.VideoPollInterval != 2*time.Second {
		t.Fatalf("VideoPollInterval mismatch: got %v", cfg.VideoPollInterval)
	}
	if cfg.VideoWaitBudget != 90*time.Second {
		t.Fatalf("VideoWaitBudget mismatch: got %v", cfg.VideoWaitBudget)
	}
	if cfg.ModelVideo != "veo-custom" {
		t.Fatalf("ModelVideo mismatch: got %q", cfg.ModelVideo)
	}
}
