package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/govalues/money"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "STORAGE_BACKEND", "DATABASE_URL", "SQLITE_PATH", "REDIS_URL", "CACHE_TTL", "CURRENCY", "DEV_SEED"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.Storage.Backend != BackendMemory || cfg.Currency != money.USD {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Cache.TTL != 5*time.Minute || cfg.SQLite.Path != "records.db" || cfg.Dev.Seed {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_DatabaseURLImpliesPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/records")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != BackendPostgres {
		t.Fatalf("expected postgres backend, got %q", cfg.Storage.Backend)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "records.yaml")
	body := "http:\n  addr: \":9090\"\nstorage:\n  backend: sqlite\ncache:\n  ttl: 30s\ncurrency: gbp\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("HTTP_ADDR", ":7070")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env should override file, got %q", cfg.HTTP.Addr)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Cache.TTL != 30*time.Second || cfg.Currency != money.GBP || cfg.CurrencyCode != "GBP" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Storage: StorageConfig{Backend: BackendMemory}, Currency: money.USD}
	if err := base.Validate(); err != nil {
		t.Fatalf("base config should be valid: %v", err)
	}
	bad := base
	bad.Storage.Backend = "mongo"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	bad = base
	bad.Storage.Backend = BackendPostgres
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for postgres without url")
	}
	bad = base
	bad.Currency = money.XXX
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for missing currency")
	}
}

func TestLoad_BadCurrency(t *testing.T) {
	clearEnv(t)
	t.Setenv("CURRENCY", "XXXX")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown currency code")
	}
}
