package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
  seed_demo_data: true
database:
  host: db.internal
  dbname: hubtest
jwt:
  secret: file-secret
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Server.Mode != "production" {
		t.Fatalf("server config not applied: %+v", cfg.Server)
	}
	if !cfg.Server.SeedDemoData {
		t.Fatal("seed flag not applied")
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.DBName != "hubtest" {
		t.Fatalf("database config not applied: %+v", cfg.Database)
	}
	// Untouched fields keep their defaults.
	if cfg.Database.Port != "5432" || cfg.JWT.Issuer != "studenthub.app" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: file-secret
`)

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("env override lost: %s", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Fatalf("env override lost: %s", cfg.JWT.Secret)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error without JWT secret")
	}
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-only-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.JWT.Secret != "env-only-secret" {
		t.Fatalf("env config lost: %s", cfg.JWT.Secret)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("default port lost: %s", cfg.Server.Port)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("STUDENTHUB_TEST_PATH", "/srv/configs/override.yaml")

	if got := GetEnv("STUDENTHUB_TEST_PATH", "configs/config.yaml"); got != "/srv/configs/override.yaml" {
		t.Fatalf("GetEnv = %q, want the env value", got)
	}
	if got := GetEnv("STUDENTHUB_TEST_UNSET", "configs/config.yaml"); got != "configs/config.yaml" {
		t.Fatalf("GetEnv = %q, want the default", got)
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.Password = "pw"

	want := "postgres://postgres:pw@localhost:5432/studenthub?sslmode=disable"
	if got := cfg.GetPostgresConnectionString(); got != want {
		t.Fatalf("connection string = %q, want %q", got, want)
	}
}
