package config

import (
	"testing"
	"time"

	"emberarena/internal/models"
)

func TestLoadDefaultsInMemoryMode(t *testing.T) {
	t.Setenv("STORE", StoreMemory)
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3001" || cfg.SessionTTL != 24*time.Hour || cfg.RateLimitMax != 100 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.TieRule != models.TieFirstFinisher {
		t.Fatalf("tie rule = %q", cfg.TieRule)
	}
	if cfg.JWTSecret == "" {
		t.Fatal("memory mode should fall back to a dev secret")
	}
}

func TestLoadRequiresSecretForMySQL(t *testing.T) {
	t.Setenv("STORE", StoreMySQL)
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected missing JWT_SECRET to fail")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"STORE":          "postgres",
		"SESSION_TTL":    "soon",
		"DUEL_TIE_RULE":  "coin-flip",
		"RATE_LIMIT_MAX": "0",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s")
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s should be rejected", key, val)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_DATABASE", "arena")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	want := "root:@tcp(db:3306)/arena?parseTime=true&charset=utf8mb4"
	if got := cfg.MySQLDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
