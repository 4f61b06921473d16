// Package config reads the service configuration from the environment. Variables found in a
// .env file in the working directory are loaded first; variables that are already set in the
// environment take precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names accepted in STORE_BACKEND.
const (
	BackendFile   = "file"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config holds all settings of the service.
type Config struct {
	Port         int
	StoreBackend string
	DataFile     string
	PublicDir    string

	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	HTTPLogging bool
	Metrics     bool
	LogLevel    string
	LogFormat   string
}

// Load reads the .env file, if present, and then the environment.
//
// Usage example:
// > PORT=3000 STORE_BACKEND=file DATA_FILE=database/contacts.json go run ./cmd/service
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", BackendFile)),
		DataFile:     getenv("DATA_FILE", "database/contacts.json"),
		PublicDir:    getenv("PUBLIC_DIR", "public"),
		DBUser:       os.Getenv("DBUSER"),
		DBPassword:   os.Getenv("DBPWD"),
		DBHost:       getenv("DBHOST", "localhost:3306"),
		DBName:       getenv("DBNAME", "test"),
		HTTPLogging:  !strings.EqualFold(os.Getenv("GIN_LOGGING"), "off"),
		Metrics:      !strings.EqualFold(os.Getenv("METRICS"), "off"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFormat:    getenv("LOG_FORMAT", "json"),
	}

	port, err := strconv.Atoi(getenv("PORT", "3000"))
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("config: could not parse PORT env variable %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	switch cfg.StoreBackend {
	case BackendFile, BackendMemory:
	case BackendMySQL:
		if cfg.DBUser == "" {
			return nil, errors.New("config: DBUSER is required for the mysql backend")
		}
	default:
		return nil, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// getenv returns the value of the environment variable, or the fallback if it is empty.
func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
