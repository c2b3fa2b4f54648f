package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Storage  StorageConfig
	Kiosk    KioskConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port          int
	Env           string
	LogLevel      string
	AllowedOrigin string
}

type StorageConfig struct {
	BasePath string
	BaseURL  string

	// ScanRetentionDays prunes scan photos older than this many days.
	// Zero disables pruning.
	ScanRetentionDays int
}

// KioskConfig holds the capture loop configuration
type KioskConfig struct {
	PollInterval   time.Duration
	Cooldown       time.Duration
	ModeResetAfter time.Duration
	SpoolDir       string

	// SQLitePath backs the standalone kiosk binary when no postgres
	// connection is configured.
	SQLitePath string

	MatchThreshold float64
}

func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "presensia"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:          appPort,
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	retentionDays, err := strconv.Atoi(getEnv("STORAGE_SCAN_RETENTION_DAYS", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_SCAN_RETENTION_DAYS: %w", err)
	}

	config.Storage = StorageConfig{
		BasePath:          getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:           getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/uploads", appPort)),
		ScanRetentionDays: retentionDays,
	}

	pollInterval, err := time.ParseDuration(getEnv("KIOSK_POLL_INTERVAL", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_POLL_INTERVAL: %w", err)
	}
	cooldown, err := time.ParseDuration(getEnv("KIOSK_COOLDOWN", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_COOLDOWN: %w", err)
	}
	modeResetAfter, err := time.ParseDuration(getEnv("KIOSK_MODE_RESET_AFTER", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_MODE_RESET_AFTER: %w", err)
	}
	matchThreshold, err := strconv.ParseFloat(getEnv("KIOSK_MATCH_THRESHOLD", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_MATCH_THRESHOLD: %w", err)
	}

	config.Kiosk = KioskConfig{
		PollInterval:   pollInterval,
		Cooldown:       cooldown,
		ModeResetAfter: modeResetAfter,
		SpoolDir:       getEnv("KIOSK_SPOOL_DIR", "./spool"),
		SQLitePath:     getEnv("KIOSK_SQLITE_PATH", "./kiosk.db"),
		MatchThreshold: matchThreshold,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	if c.Kiosk.MatchThreshold <= 0 || c.Kiosk.MatchThreshold >= 2 {
		return fmt.Errorf("KIOSK_MATCH_THRESHOLD must be between 0 and 2")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
