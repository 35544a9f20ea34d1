package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("FOODISH_APP_ENV", "dev")
	t.Setenv("FOODISH_DB_DSN", "postgres://localhost:5432/foodish")
	t.Setenv("FOODISH_JWT_SECRET", "secret")
	t.Setenv("FOODISH_JWT_ISSUER", "foodish")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.App.Port)
	}
	if !cfg.App.IsDev() || cfg.App.IsProd() {
		t.Fatal("expected dev environment")
	}
	if cfg.Wages.PerDeliveryCents != 2500 {
		t.Fatalf("unexpected wage rate %d", cfg.Wages.PerDeliveryCents)
	}
	if cfg.Sweep.Interval != time.Minute {
		t.Fatalf("unexpected sweep interval %s", cfg.Sweep.Interval)
	}
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("FOODISH_APP_ENV", "dev")
	t.Setenv("FOODISH_DB_DSN", "")
	t.Setenv("FOODISH_JWT_SECRET", "secret")
	t.Setenv("FOODISH_JWT_ISSUER", "foodish")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DSN")
	}
}

func TestLoadRejectsBlankJWTSecret(t *testing.T) {
	t.Setenv("FOODISH_APP_ENV", "dev")
	t.Setenv("FOODISH_DB_DSN", "postgres://localhost:5432/foodish")
	t.Setenv("FOODISH_JWT_SECRET", "   ")
	t.Setenv("FOODISH_JWT_ISSUER", "foodish")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for blank JWT secret")
	}
}
