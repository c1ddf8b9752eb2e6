package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.StoreBackend != StoreBackendFile {
		t.Errorf("expected default store backend %q, got %q", StoreBackendFile, cfg.StoreBackend)
	}
	if cfg.StoreFile == "" {
		t.Error("expected a default store file path")
	}
	if cfg.GeminiModel == "" {
		t.Error("expected a default gemini model")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setEnv(t, "PORT", "9999")
	setEnv(t, "STORE_FILE", "/tmp/cases.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.StoreFile != "/tmp/cases.json" {
		t.Errorf("expected overridden store file, got %s", cfg.StoreFile)
	}
}

func TestValidate_PostgresRequiresDatabaseURL(t *testing.T) {
	cfg := &Config{Env: "development", StoreBackend: StoreBackendPostgres}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := &Config{Env: "development", StoreBackend: "redis"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown store backend")
	}
}

func TestValidate_ProductionRequiresCredentials(t *testing.T) {
	cfg := &Config{
		Env:          "production",
		StoreBackend: StoreBackendFile,
		StoreFile:    "cases.json",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing signing key and credentials")
	}

	cfg.AuthSigningKey = "secret"
	cfg.StaffUsername = "admin_01"
	cfg.StaffPassword = "hunter2"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_FileBackendOK(t *testing.T) {
	cfg := &Config{Env: "development", StoreBackend: StoreBackendFile, StoreFile: "cases.json"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
