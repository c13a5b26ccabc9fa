package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:5000" {
		t.Errorf("unexpected addr: %s", cfg.Server.Addr())
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected default driver postgres, got %s", cfg.Database.Driver)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("expected default session store memory, got %s", cfg.Session.Store)
	}
	if cfg.Session.CookieName != "folio_session" {
		t.Errorf("unexpected cookie name: %s", cfg.Session.CookieName)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected 24h session ttl, got %v", cfg.Session.TTL)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("expected default storage backend local, got %s", cfg.Storage.Backend)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_SERVER_PORT", "8080")
	t.Setenv("FOLIO_DATABASE_DRIVER", "sqlite")
	t.Setenv("FOLIO_DATABASE_PATH", "/tmp/test.db")
	t.Setenv("FOLIO_SESSION_STORE", "redis")
	t.Setenv("FOLIO_SESSION_REDIS_HOST", "redis.internal")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if !cfg.Database.IsEmbedded() {
		t.Error("expected embedded database for sqlite")
	}
	if cfg.Session.Store != "redis" {
		t.Errorf("expected redis store, got %s", cfg.Session.Store)
	}
	if cfg.Session.Redis.Addr() != "redis.internal:6379" {
		t.Errorf("unexpected redis addr: %s", cfg.Session.Redis.Addr())
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "oracle" },
			wantErr: true,
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Database.Driver = "sqlite"
				c.Database.Path = ""
			},
			wantErr: true,
		},
		{
			name:    "unknown session store",
			mutate:  func(c *Config) { c.Session.Store = "file" },
			wantErr: true,
		},
		{
			name:    "non-positive session ttl",
			mutate:  func(c *Config) { c.Session.TTL = 0 },
			wantErr: true,
		},
		{
			name:    "unknown storage backend",
			mutate:  func(c *Config) { c.Storage.Backend = "ftp" },
			wantErr: true,
		},
		{
			name: "s3 without bucket",
			mutate: func(c *Config) {
				c.Storage.Backend = "s3"
				c.Storage.S3.Bucket = ""
			},
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "folio",
		Password: "hunter2",
		Database: "folio",
		SSLMode:  "disable",
	}

	want := "host=db.internal port=5432 user=folio password=hunter2 dbname=folio sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
