package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestConfig(t *testing.T, yamlContent string) {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	writeTestConfig(t, `
port: "8470"
env: "test"
database:
  host: "db.example.com"
  port: 5432
  user: "testuser"
  database: "testdb"
redis:
  host: "redis.example.com"
  port: 6379
`)

	os.Unsetenv("PGHOST")

	t.Setenv("PORT", "9999")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("expected Port=9999 (from env), got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("expected Env=production (from env), got %s", cfg.Env)
	}
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("expected Database.Host from YAML, got %s", cfg.Database.Host)
	}
	if cfg.Version != "test-version" {
		t.Errorf("expected Version=test-version, got %s", cfg.Version)
	}
}

func TestLoad_Defaults(t *testing.T) {
	writeTestConfig(t, "env: \"local\"\n")

	for _, key := range []string{"PORT", "PGHOST", "REDIS_HOST", "SEARCH_DEFAULT_LIMIT"} {
		os.Unsetenv(key)
	}

	cfg, err := Load("dev")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Search.DefaultLimit != 20 {
		t.Errorf("expected Search.DefaultLimit=20, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 100 {
		t.Errorf("expected Search.MaxLimit=100, got %d", cfg.Search.MaxLimit)
	}
	if cfg.Relationships.MaxTraversalDepth != 32 {
		t.Errorf("expected Relationships.MaxTraversalDepth=32, got %d", cfg.Relationships.MaxTraversalDepth)
	}
	if cfg.Navigation.MaxDepth != 64 {
		t.Errorf("expected Navigation.MaxDepth=64, got %d", cfg.Navigation.MaxDepth)
	}
}

func TestConnectionString(t *testing.T) {
	dbCfg := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "docforge",
		Password: "secret",
		Database: "docforge_engine",
		SSLMode:  "disable",
	}

	got := dbCfg.ConnectionString()
	want := "host=localhost port=5432 user=docforge password=secret dbname=docforge_engine sslmode=disable"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}

func TestRedisAddr(t *testing.T) {
	rCfg := &RedisConfig{Host: "cache.internal", Port: 6380}
	if got := rCfg.Addr(); got != "cache.internal:6380" {
		t.Errorf("Addr() = %q, want cache.internal:6380", got)
	}
}
