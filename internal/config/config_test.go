package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LISTEN_ADDR", "UPLOAD_URL_PATH", "MAX_UPLOAD_BYTES", "TOKEN_TTL", "ADMIN_USERNAME", "ADMIN_PASSWORD", "CORS_ALLOWED_ORIGINS", "SEED_DEFAULTS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.UploadURLPath != "/api/uploads" {
		t.Fatalf("unexpected upload url path %q", cfg.UploadURLPath)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected 10 MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.TokenTTL != 8*time.Hour {
		t.Fatalf("expected 8h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.AdminUsername != "admin" || cfg.AdminPassword != "gosec_admin" {
		t.Fatalf("unexpected default admin identity %q/%q", cfg.AdminUsername, cfg.AdminPassword)
	}
	if !cfg.SeedDefaults {
		t.Fatal("expected seeding to be enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("UPLOAD_URL_PATH", "media/")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://gosec.ca, ,http://localhost:3000")
	t.Setenv("SEED_DEFAULTS", "false")
	t.Setenv("PUBLIC_BASE_URL", "https://api.gosec.ca/")

	cfg := Load()
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected :9000, got %q", cfg.ListenAddr)
	}
	if cfg.UploadURLPath != "/media" {
		t.Fatalf("expected normalized /media, got %q", cfg.UploadURLPath)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", cfg.TokenTTL)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Fatalf("invalid MAX_UPLOAD_BYTES should fall back, got %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins %#v", cfg.CORSOrigins)
	}
	if cfg.SeedDefaults {
		t.Fatal("expected seeding disabled")
	}
	if cfg.PublicBaseURL != "https://api.gosec.ca" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.PublicBaseURL)
	}
}
