package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.WorkoutsAPIURL != "http://localhost:5050/api/workouts" {
		t.Fatalf("unexpected api url %q", cfg.WorkoutsAPIURL)
	}
	if cfg.SubmitRetries != 0 {
		t.Fatalf("expected no retries by default, got %d", cfg.SubmitRetries)
	}
	if cfg.SubmitTimeout != 10*time.Second {
		t.Fatalf("unexpected submit timeout %s", cfg.SubmitTimeout)
	}
	if cfg.FormVariant != VariantCatalog || cfg.DraftStore != StoreMemory {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("WORKOUTS_API_URL", "http://api.test/workouts")
	t.Setenv("SUBMIT_RETRIES", "2")
	t.Setenv("FORM_VARIANT", "freeform")
	t.Setenv("DRAFT_STORE", "redis")
	t.Setenv("DRAFT_TTL", "30m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.WorkoutsAPIURL != "http://api.test/workouts" || cfg.SubmitRetries != 2 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.FormVariant != VariantFreeform || cfg.DraftStore != StoreRedis {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.DraftTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.DraftTTL)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown variant", "FORM_VARIANT", "mixed"},
		{"unknown store", "DRAFT_STORE", "postgres"},
		{"negative retries", "SUBMIT_RETRIES", "-1"},
		{"zero cache", "DRAFT_CACHE_MB", "0"},
		{"bad duration", "SUBMIT_TIMEOUT", "soon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := LoadConfig(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.val)
			}
		})
	}
}
