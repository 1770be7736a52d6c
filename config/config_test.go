package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_TYPE", "MONGO_DB", "DRAFT_TTL_HOURS", "STORAGE_DRIVER", "CURRENCY_LOCALE", "CURRENCY_SYMBOL", "ALLOWED_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()

	if cfg.Port != "8080" || cfg.DBType != "postgres" || cfg.MongoDB != "pmis" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.DraftTTL != 72*time.Hour {
		t.Errorf("DraftTTL = %s", cfg.DraftTTL)
	}
	if cfg.Storage.Driver != "local" || cfg.Storage.Dir != "./documents" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.CurrencyLocale != "en-IN" || cfg.CurrencySymbol != "₹" {
		t.Errorf("currency = %s %s", cfg.CurrencyLocale, cfg.CurrencySymbol)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %s", cfg.Log.Level)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_TYPE", "Mongo")
	t.Setenv("DRAFT_TTL_HOURS", "not-a-number")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("S3_USE_SSL", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://pmis.example.org, http://localhost:5173 ,")

	cfg := LoadConfig()
	if cfg.Port != "9000" || cfg.DBType != "mongo" {
		t.Errorf("got %s %s", cfg.Port, cfg.DBType)
	}
	if cfg.DraftTTL != 72*time.Hour {
		t.Errorf("bad int should fall back, got %s", cfg.DraftTTL)
	}
	if cfg.RedisDB != 3 || cfg.Storage.S3UseSSL {
		t.Errorf("redis db %d, ssl %v", cfg.RedisDB, cfg.Storage.S3UseSSL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://localhost:5173" {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
}
