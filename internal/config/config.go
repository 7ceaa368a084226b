package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath = "./dev.db"
	defaultPort   = "8080"
	defaultEnv    = "dev"
	defaultLevel  = "info"
)

// ErrMissingSessionSecret is returned by Validate outside development when no
// session signing secret is configured.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET is required outside dev")

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	LogLevel      string
	LogFormat     string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects real env; a missing .env is fine.
	_ = godotenv.Load()

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		Env:           getenv("APP_ENV"),
		AdminEmail:    getenv("ADMIN_EMAIL"),
		AdminPassword: getenv("ADMIN_PASSWORD"),
		SessionSecret: getenv("SESSION_SECRET"),
		DBPath:        getenv("DB_PATH"),
		Port:          getenv("PORT"),
		LogLevel:      getenv("LOG_LEVEL"),
		LogFormat:     getenv("LOG_FORMAT"),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.IsDev() {
			cfg.LogFormat = "console"
		}
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}

	return cfg
}

// IsDev reports whether the service runs in a local development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "local"
}

// Validate reports configuration the service must not start with.
func (c Config) Validate() error {
	if c.SessionSecret == "" && !c.IsDev() {
		return ErrMissingSessionSecret
	}
	return nil
}
