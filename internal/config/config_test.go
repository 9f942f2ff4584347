package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, expected sqlite", cfg.Database.Driver)
	}
	if cfg.Server.Port != "3001" {
		t.Errorf("Port = %q, expected 3001", cfg.Server.Port)
	}
	if cfg.Audit.CleanupCron != "@daily" {
		t.Errorf("CleanupCron = %q, expected @daily", cfg.Audit.CleanupCron)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: \"9000\"\ndatabase:\n  driver: postgres\n  dsn: host=db\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Port = %q, expected 9000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, expected postgres", cfg.Database.Driver)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, expected default 0.0.0.0", cfg.Server.Host)
	}
	if cfg.JWT.Secret == "" {
		t.Error("JWT secret should keep its default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8181")
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("AUDIT_RETENTION_DAYS", "7")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8181" {
		t.Errorf("Port = %q, expected 8181", cfg.Server.Port)
	}
	if cfg.Database.DSN != "file::memory:" {
		t.Errorf("DSN = %q", cfg.Database.DSN)
	}
	if cfg.RateLimit.RPS != 2.5 {
		t.Errorf("RPS = %v, expected 2.5", cfg.RateLimit.RPS)
	}
	if cfg.Audit.RetentionDays != 7 {
		t.Errorf("RetentionDays = %d, expected 7", cfg.Audit.RetentionDays)
	}
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty secret", func(c *Config) { c.JWT.Secret = "" }, true},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }, true},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, true},
		{"zero burst but disabled", func(c *Config) { c.RateLimit.Enabled = false; c.RateLimit.Burst = 0 }, false},
		{"negative retention", func(c *Config) { c.Audit.RetentionDays = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.Port = "7000"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server.Port != "7000" {
		t.Errorf("Port = %q, expected 7000", loaded.Server.Port)
	}
}
