package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	CORS     CORSConfig
	Storage  StorageConfig
	Payroll  PayrollConfig
	Kafka    KafkaConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name            string
	Version         string
	Port            int
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

type PayrollConfig struct {
	WorkerCount          int
	TaxTableFile         string
	AutoPayslips         bool
	PayslipRetryInterval time.Duration
	Currency             string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("APP_SHUTDOWN_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_SHUTDOWN_TIMEOUT: %w", err)
	}

	config.App = AppConfig{
		Name:            getEnv("APP_NAME", "payroll-engine"),
		Version:         getEnv("APP_VERSION", "v1.0.0"),
		Port:            appPort,
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: shutdownTimeout,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
	}

	// Payroll configuration
	workerCount, err := strconv.Atoi(getEnv("PAYROLL_WORKER_COUNT", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKER_COUNT: %w", err)
	}
	autoPayslips, err := strconv.ParseBool(getEnv("PAYROLL_AUTO_PAYSLIPS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_AUTO_PAYSLIPS: %w", err)
	}
	retryInterval, err := time.ParseDuration(getEnv("PAYSLIP_RETRY_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYSLIP_RETRY_INTERVAL: %w", err)
	}

	config.Payroll = PayrollConfig{
		WorkerCount:          workerCount,
		TaxTableFile:         getEnv("PAYROLL_TAX_TABLE_FILE", ""),
		AutoPayslips:         autoPayslips,
		PayslipRetryInterval: retryInterval,
		Currency:             getEnv("PAYROLL_CURRENCY", "EUR"),
	}

	config.Kafka = KafkaConfig{
		Brokers: getEnvSlice("KAFKA_BROKERS", nil),
		Topic:   getEnv("KAFKA_TOPIC", "payroll.events"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err)
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("STORAGE_TYPE %q is not supported", c.Storage.Type)
	}
	if c.Payroll.WorkerCount < 1 {
		return fmt.Errorf("PAYROLL_WORKER_COUNT must be at least 1")
	}
	if c.Payroll.PayslipRetryInterval <= 0 {
		return fmt.Errorf("PAYSLIP_RETRY_INTERVAL must be positive")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
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

// SlogLevel maps LOG_LEVEL to a slog level; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
