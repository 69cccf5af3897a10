package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("BOOKING_BACKEND", "")
	t.Setenv("CATALOG_CACHE_TTL", "")
	t.Setenv("OPENING_HOUR", "")
	t.Setenv("CLOSING_HOUR", "")
	t.Setenv("SLOT_INTERVAL_MINUTES", "")

	cfg := Load()
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected default addr, got %s", cfg.Addr())
	}
	if cfg.BookingBackend != BackendRelational {
		t.Fatalf("expected relational backend by default, got %s", cfg.BookingBackend)
	}
	if cfg.CatalogCacheTTL != 5*time.Minute {
		t.Fatalf("expected default cache ttl, got %s", cfg.CatalogCacheTTL)
	}
	if cfg.OpeningHour != 9 || cfg.ClosingHour != 19 || cfg.SlotIntervalMinutes != 30 {
		t.Fatalf("unexpected business hours %d-%d/%d", cfg.OpeningHour, cfg.ClosingHour, cfg.SlotIntervalMinutes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BOOKING_BACKEND", "Document")
	t.Setenv("CATALOG_CACHE_TTL", "45s")
	t.Setenv("WIZARD_SESSION_TTL", "not-a-duration")
	t.Setenv("OPENING_HOUR", "10")

	cfg := Load()
	if cfg.Addr() != ":9090" {
		t.Fatalf("expected override addr, got %s", cfg.Addr())
	}
	if cfg.BookingBackend != BackendDocument {
		t.Fatalf("expected document backend, got %s", cfg.BookingBackend)
	}
	if cfg.CatalogCacheTTL != 45*time.Second {
		t.Fatalf("expected cache ttl override, got %s", cfg.CatalogCacheTTL)
	}
	if cfg.WizardSessionTTL != 2*time.Hour {
		t.Fatalf("expected invalid ttl to fall back to default, got %s", cfg.WizardSessionTTL)
	}
	if cfg.OpeningHour != 10 {
		t.Fatalf("expected opening hour override, got %d", cfg.OpeningHour)
	}
}

func TestFeatureToggles(t *testing.T) {
	cfg := &Config{}
	if cfg.S3Enabled() || cfg.TwilioEnabled() {
		t.Fatalf("expected integrations disabled on empty config")
	}

	cfg.S3Bucket = "salon-photos"
	cfg.TwilioAccountSID = "AC123"
	cfg.TwilioAuthToken = "secret"
	cfg.TwilioFromNumber = "+15550000000"
	if !cfg.S3Enabled() || !cfg.TwilioEnabled() {
		t.Fatalf("expected integrations enabled")
	}
}
