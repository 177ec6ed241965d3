// Package config loads process-wide configuration from the environment.
// A .env file in the working directory is honored when present, so local
// development does not need exported shell variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service. It is constructed once in
// main and passed down by reference; no package reads the environment after
// Load returns.
type Config struct {
	Service   ServiceConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Logging   LoggingConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Shutdown  ShutdownConfig
}

type ServiceConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
}

// SessionConfig carries the two session secrets: StoreSecret encrypts the
// cookie payload, SigningSecret authenticates it.
type SessionConfig struct {
	StoreSecret   string
	SigningSecret string
}

type LoggingConfig struct {
	Level string
}

type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

type ShutdownConfig struct {
	TimeoutSeconds             int
	ReadinessDrainDelaySeconds int
}

// Load reads configuration from the environment, falling back to defaults
// suitable for local development. Missing required values are caught later by
// Validate, not here.
func Load() *Config {
	// Best-effort; absence of a .env file is normal outside development.
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "authgate"),
			Version: getEnv("SERVICE_VERSION", "dev"),
			Env:     getEnv("SERVICE_ENV", "development"),
			Port:    getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost:5432"),
			User:     getEnv("DATABASE_USER", ""),
			Password: getEnv("DATABASE_PASSWORD", ""),
			Name:     getEnv("DATABASE_NAME", "authgate"),
		},
		Session: SessionConfig{
			StoreSecret:   getEnv("SESSION_STORE_SECRET", ""),
			SigningSecret: getEnv("SESSION_SIGNING_SECRET", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Tracing: TracingConfig{
			Enabled:    getEnvAsBool("TRACING_ENABLED", false),
			Endpoint:   getEnv("TRACING_ENDPOINT", "localhost:4318"),
			SampleRate: getEnvAsFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Profiling: ProfilingConfig{
			Enabled:  getEnvAsBool("PROFILING_ENABLED", false),
			Endpoint: getEnv("PROFILING_ENDPOINT", "http://localhost:4040"),
		},
		Shutdown: ShutdownConfig{
			TimeoutSeconds:             getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 15),
			ReadinessDrainDelaySeconds: getEnvAsInt("READINESS_DRAIN_DELAY_SECONDS", 0),
		},
	}
}

// Validate checks that required configuration is present. Secrets and
// database credentials may be empty only in the development environment.
func (c *Config) Validate() error {
	if c.Service.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Service.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %w", err)
	}
	if c.Service.Env == "development" {
		return nil
	}
	if c.Database.User == "" || c.Database.Password == "" {
		return errors.New("DATABASE_USER and DATABASE_PASSWORD are required")
	}
	if c.Session.StoreSecret == "" || c.Session.SigningSecret == "" {
		return errors.New("SESSION_STORE_SECRET and SESSION_SIGNING_SECRET are required")
	}
	return nil
}

// DatabaseURL assembles the pgx connection string from the database settings.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Name)
}

func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.Shutdown.TimeoutSeconds) * time.Second
}

func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return time.Duration(c.Shutdown.ReadinessDrainDelaySeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
