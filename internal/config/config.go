package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
)

// ErrMissingOwnerTokenKey is returned when no owner token key is configured.
var ErrMissingOwnerTokenKey = errors.New("OWNER_TOKEN_KEY is required")

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	Auth        AuthConfig
	Maintenance MaintenanceConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds the keys used to verify owner tokens issued by the
// authentication service. The first key is the current one; the rest are
// accepted for rotation.
type AuthConfig struct {
	OwnerTokenKeys []*fernet.Key
	OwnerTokenTTL  time.Duration
}

// MaintenanceConfig holds the cron schedule for database maintenance.
// An empty schedule disables the job.
type MaintenanceConfig struct {
	Schedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/ledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Maintenance: MaintenanceConfig{
			Schedule: os.Getenv("MAINTENANCE_SCHEDULE"),
		},
	}
	if _, ok := os.LookupEnv("MAINTENANCE_SCHEDULE"); !ok {
		config.Maintenance.Schedule = "@daily"
	}

	rawKeys := splitList(os.Getenv("OWNER_TOKEN_KEY"))
	if len(rawKeys) == 0 {
		return nil, ErrMissingOwnerTokenKey
	}
	keys, err := fernet.DecodeKeys(rawKeys...)
	if err != nil {
		return nil, fmt.Errorf("invalid OWNER_TOKEN_KEY: %w", err)
	}
	config.Auth.OwnerTokenKeys = keys

	ttl, err := time.ParseDuration(getEnv("OWNER_TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid OWNER_TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid OWNER_TOKEN_TTL: must be positive, got %s", ttl)
	}
	config.Auth.OwnerTokenTTL = ttl

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
