package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected port: %q", cfg.HTTPPort)
	}
	if cfg.ScorerMode != "random" {
		t.Fatalf("unexpected scorer mode: %q", cfg.ScorerMode)
	}
	if cfg.MatchLimit != 10 {
		t.Fatalf("unexpected match limit: %d", cfg.MatchLimit)
	}
	if cfg.SummaryTimeoutSeconds != 10 {
		t.Fatalf("unexpected summary timeout: %d", cfg.SummaryTimeoutSeconds)
	}
	if cfg.JWTAccessTTLMinutes != 15 {
		t.Fatalf("unexpected access ttl: %d", cfg.JWTAccessTTLMinutes)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("SCORER_MODE", "traits")
	t.Setenv("MATCH_MIN_THRESHOLD", "0.94")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPPort != "9999" {
		t.Fatalf("unexpected port: %q", cfg.HTTPPort)
	}
	if cfg.ScorerMode != "traits" {
		t.Fatalf("unexpected scorer mode: %q", cfg.ScorerMode)
	}
	if cfg.MatchMinThreshold != 0.94 {
		t.Fatalf("unexpected threshold: %v", cfg.MatchMinThreshold)
	}
}
