package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ServiceName  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GinMode      string
}

// AuthConfig holds bearer token configuration.
type AuthConfig struct {
	JWTSecret string
	// VerifySignature is off by default: tokens are decoded without checking
	// who signed them. Only acceptable in development.
	VerifySignature bool
}

// StoreConfig selects the payment store backend.
type StoreConfig struct {
	Driver string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration. An empty Addr disables event publishing.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level       string
	Format      string
	Development bool
}

// Load loads configuration from a .env file, if present, and environment variables.
// Variables already set in the environment take precedence over the .env file.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8090"),
			ServiceName:  getEnv("SERVICE_NAME", "payment-service"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			GinMode:      getEnv("GIN_MODE", "release"),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", ""),
			VerifySignature: getBoolEnv("JWT_VERIFY_SIGNATURE", false),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", StoreDriverMemory),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "payments"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			Channel:  getEnv("EVENTS_CHANNEL", "payment.created"),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "payment-service"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Format:      getEnv("LOG_FORMAT", "json"),
			Development: getBoolEnv("LOG_DEVELOPMENT", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
