package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoadDefaultsWithEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "4000")
	t.Setenv("ACCESS_LOG_RETENTION_DAYS", "7")
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "4000" {
		t.Errorf("expected port 4000, got %s", cfg.Server.Port)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("expected 24h expiry, got %d", cfg.JWT.ExpireHour)
	}
	if cfg.AccessLog.RetentionDays != 7 {
		t.Errorf("expected retention 7, got %d", cfg.AccessLog.RetentionDays)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if cfg.DraftTTL() != 30*24*time.Hour {
		t.Errorf("unexpected draft ttl %s", cfg.DraftTTL())
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "9090"
jwt:
  secret: from-file
  expire_hour: 2
database:
  driver: postgres
  dsn: postgres://localhost/hub
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.JWT.Secret != "from-file" || cfg.JWT.ExpireHour != 2 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Upload.MaxSizeMB != 5 {
		t.Errorf("defaults should survive partial files, got %d", cfg.Upload.MaxSizeMB)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JWT.Secret = "x"
	cfg.Database.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestSeedAdmin(t *testing.T) {
	tests := []struct {
		email, password string
		want            bool
	}{
		{"", "", false},
		{"admin@example.com", "", false},
		{"", "secret", false},
		{"admin@example.com", "secret", true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Admin = AdminConfig{Email: tt.email, Password: tt.password}
		if got := cfg.SeedAdmin(); got != tt.want {
			t.Errorf("SeedAdmin(%q, %q) = %v, want %v", tt.email, tt.password, got, tt.want)
		}
	}
}
