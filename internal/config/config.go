package config

import (
	"os"
	"strconv"
	"time"

	"atelier/internal/cache"
	"atelier/internal/database"
	"atelier/internal/external"
	"atelier/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	Database database.Config
	NATS     messaging.Config
	Valkey   cache.Config
	Mailer   external.MailerConfig
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8082"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "atelier"),
			Password:           getEnv("DB_PASSWORD", "atelier123"),
			DBName:             getEnv("DB_NAME", "atelier"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "atelier"),
			ClientID:  getEnv("NATS_CLIENT_ID", "atelier-api"),
		},

		Valkey: cache.Config{
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			BookingTTL: time.Duration(getEnvInt("VALKEY_BOOKING_TTL_SEC", 60)) * time.Second,
			EventsTTL:  time.Duration(getEnvInt("VALKEY_EVENTS_TTL_SEC", 30)) * time.Second,
		},

		Mailer: external.MailerConfig{
			BaseURL: getEnv("MAILER_URL", "https://mail.atelier.example/api/v1"),
			APIKey:  getEnv("MAILER_API_KEY", ""),
			Sender:  getEnv("MAILER_SENDER", "hello@atelier.example"),
			Timeout: time.Duration(getEnvInt("MAILER_TIMEOUT_SEC", 15)) * time.Second,
		},
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable value or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
