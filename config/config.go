// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Remote   RemoteConfig
	Rates    RatesConfig
	Redis    RedisConfig
	Email    EmailConfig
}

// ServerConfig holds the localhost API server configuration. The core binds
// to the loopback interface only; the UI shell is its single client.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds the embedded sqlite configuration.
type DatabaseConfig struct {
	Path string
}

// RemoteConfig holds the relay API configuration.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RatesConfig holds the exchange-rate provider configuration.
type RatesConfig struct {
	BaseURL   string
	AccessKey string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// RedisConfig holds Redis configuration for the rate cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// EmailConfig holds budget alert delivery configuration.
type EmailConfig struct {
	ResendAPIKey  string
	FromName      string
	FromEmail     string
	ToEmail       string
	WorkerEnabled bool
	PollInterval  time.Duration
	BatchSize     int
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "127.0.0.1"),
			Port:         getEnvAsInt("SERVER_PORT", 8090),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "expense-tracker.db"),
		},
		Remote: RemoteConfig{
			BaseURL: getEnv("REMOTE_BASE_URL", "https://api.expense-tracker.example.com"),
			Timeout: getEnvAsDuration("REMOTE_TIMEOUT", 10*time.Second),
		},
		Rates: RatesConfig{
			BaseURL:   getEnv("RATES_BASE_URL", "https://api.currencylayer.com"),
			AccessKey: getEnv("RATES_ACCESS_KEY", ""),
			Timeout:   getEnvAsDuration("RATES_TIMEOUT", 10*time.Second),
			CacheTTL:  getEnvAsDuration("RATES_CACHE_TTL", time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		Email: EmailConfig{
			ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
			FromName:      getEnv("RESEND_FROM_NAME", "Expense Tracker"),
			FromEmail:     getEnv("RESEND_FROM_EMAIL", "onboarding@resend.dev"),
			ToEmail:       getEnv("ALERT_TO_EMAIL", ""),
			WorkerEnabled: getEnvAsBool("ALERT_WORKER_ENABLED", true),
			PollInterval:  getEnvAsDuration("ALERT_WORKER_POLL_INTERVAL", 15*time.Second),
			BatchSize:     getEnvAsInt("ALERT_WORKER_BATCH_SIZE", 10),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
