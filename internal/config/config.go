package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Authentication modes
const (
	AuthModeToken      = "token"
	AuthModeAuthorizer = "authorizer"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port   string
	AppEnv string // production, development
	// LogLevel is a zap level name (debug, info, warn, error)
	LogLevel string

	// Database configuration
	DBType            string // postgres, mysql, sqlite, sqlite3, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBConnectionLimit int

	// Tree building
	TreeFanoutLimit int

	// Authentication
	AuthMode       string
	ServiceRoleKey string
	AuthzURL       string
	AuthzClientID  string
}

// IsDevelopment reports whether diagnostic detail may be exposed
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load loads configuration from an optional .env file and the environment
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		AppEnv:            getEnv("APP_ENV", "production"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBType:            getEnv("DB_TYPE", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		TreeFanoutLimit:   getEnvAsInt("TREE_FANOUT_LIMIT", 8),
		AuthMode:          getEnv("AUTH_MODE", AuthModeToken),
		ServiceRoleKey:    getEnv("SERVICE_ROLE_KEY", ""),
		AuthzURL:          getEnv("AUTHZ_URL", ""),
		AuthzClientID:     getEnv("AUTHZ_CLIENT_ID", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields for the selected database and auth mode
func (c *Config) Validate() error {
	if c.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}

	switch c.DBType {
	case "sqlite", "sqlite3":
	default:
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required for DB_TYPE %s", c.DBType)
		}
	}

	switch c.AuthMode {
	case AuthModeToken:
		if c.ServiceRoleKey == "" {
			return fmt.Errorf("SERVICE_ROLE_KEY is required")
		}
	case AuthModeAuthorizer:
		if c.AuthzURL == "" {
			return fmt.Errorf("AUTHZ_URL is required")
		}
		if c.AuthzClientID == "" {
			return fmt.Errorf("AUTHZ_CLIENT_ID is required")
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE: %s", c.AuthMode)
	}

	if c.DBConnectionLimit < 1 {
		c.DBConnectionLimit = 1
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
