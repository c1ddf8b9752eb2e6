package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	StoreBackend   string   `mapstructure:"STORE_BACKEND"`
	StoreFile      string   `mapstructure:"STORE_FILE"`
	DatabaseURL    string   `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`

	AuthSigningKey string `mapstructure:"AUTH_SIGNING_KEY"`
	StaffUsername  string `mapstructure:"STAFF_USERNAME"`
	StaffPassword  string `mapstructure:"STAFF_PASSWORD"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	LabName         string `mapstructure:"LAB_NAME"`
	LabRegistration string `mapstructure:"LAB_REGISTRATION"`
	LabAddress      string `mapstructure:"LAB_ADDRESS"`
	LabPhone        string `mapstructure:"LAB_PHONE"`
	LabEmail        string `mapstructure:"LAB_EMAIL"`
	LabPathologist  string `mapstructure:"LAB_PATHOLOGIST"`
}

const (
	// StoreBackendFile persists the case collection as one JSON slot file.
	StoreBackendFile = "file"
	// StoreBackendPostgres persists cases in PostgreSQL.
	StoreBackendPostgres = "postgres"
)

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_BACKEND", StoreBackendFile)
	v.SetDefault("STORE_FILE", "vetiscan_cases.json")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("GEMINI_MODEL", "gemini-3-flash-preview")
	v.SetDefault("LAB_NAME", "VetiScan AI Laboratory & Diagnostic Centre")
	v.SetDefault("LAB_REGISTRATION", "VET-LAB-2025-X01")
	v.SetDefault("LAB_ADDRESS", "123 Vet Med Parkway, Innovation District, CA 90210")
	v.SetDefault("LAB_PHONE", "+1 (555) 123-4567")
	v.SetDefault("LAB_EMAIL", "clinical@vetiscan.ai")
	v.SetDefault("LAB_PATHOLOGIST", "Dr. Sarah Wilson")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "STORE_BACKEND", "STORE_FILE", "DATABASE_URL",
		"DB_MAX_CONNS", "DB_MIN_CONNS", "CORS_ORIGINS",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"AUTH_SIGNING_KEY", "STAFF_USERNAME", "STAFF_PASSWORD",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"LAB_NAME", "LAB_REGISTRATION", "LAB_ADDRESS",
		"LAB_PHONE", "LAB_EMAIL", "LAB_PATHOLOGIST",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. The postgres store
// backend needs a DATABASE_URL; outside development the staff surface needs
// real credentials and a signing key.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendFile:
		if c.StoreFile == "" {
			return fmt.Errorf("STORE_FILE is required when STORE_BACKEND is %q", StoreBackendFile)
		}
	case StoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND is %q", StoreBackendPostgres)
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendFile, StoreBackendPostgres, c.StoreBackend)
	}

	if !c.IsDev() {
		if c.AuthSigningKey == "" {
			return fmt.Errorf("AUTH_SIGNING_KEY is required outside development")
		}
		if c.StaffUsername == "" || c.StaffPassword == "" {
			return fmt.Errorf("STAFF_USERNAME and STAFF_PASSWORD are required outside development")
		}
	}

	return nil
}
