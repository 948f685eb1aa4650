package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loyalty.VisitPoints != 10 || cfg.Loyalty.FirstTimeSignUpPoints != 10 ||
		cfg.Loyalty.PointsCap != 28 || cfg.Loyalty.InvitePromptMaxVisits != 10 {
		t.Errorf("loyalty defaults = %+v", cfg.Loyalty)
	}
	if cfg.Locale != "en" {
		t.Errorf("locale = %q, want en", cfg.Locale)
	}
	if cfg.Database.DBName != "dispensary_loyalty" {
		t.Errorf("db name = %q", cfg.Database.DBName)
	}
}

func TestLoadUsesModePrefix(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("DEV_DB_HOST", "localhost-dev")
	t.Setenv("PROD_TWILIO_FROM_NUMBER", "+15557654321")
	t.Setenv("VISIT_POINTS", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.SMS.FromNumber != "+15557654321" {
		t.Errorf("from = %q", cfg.SMS.FromNumber)
	}
	if cfg.Loyalty.VisitPoints != 15 {
		t.Errorf("visit points = %d, want 15", cfg.Loyalty.VisitPoints)
	}
	if !cfg.IsProd() {
		t.Error("IsProd = false")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown mode", "APP_MODE", "staging"},
		{"non-numeric points", "VISIT_POINTS", "ten"},
		{"negative cap", "POINTS_CAP", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_MODE", "dev")
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load accepted %s=%s", tt.key, tt.value)
			}
		})
	}
}
