package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	JWT    JWTConfig
	MinIO  MinIOConfig
	Upload UploadConfig
	Queue  QueueConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// UploadConfig controls where content files land and how large they may be
type UploadConfig struct {
	Prefix  string // object key prefix, e.g. "uploads/"
	MaxSize int64  // bytes
}

type QueueConfig struct {
	Name        string
	MaxRetry    int
	Concurrency int
	HealthAddr  string // worker liveness endpoint
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Compliance Review API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "compliance"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Upload: UploadConfig{
			Prefix:  getEnv("UPLOAD_PREFIX", "uploads/"),
			MaxSize: int64(getEnvInt("UPLOAD_MAX_SIZE_MB", 20)) << 20,
		},
		Queue: QueueConfig{
			Name:        getEnv("QUEUE_CONTENT", "content"),
			MaxRetry:    getEnvInt("QUEUE_MAX_RETRY", 3),
			Concurrency: getEnvInt("QUEUE_CONCURRENCY", 5),
			HealthAddr:  getEnv("WORKER_HEALTH_ADDR", ":9999"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that must never take their defaults in production
func (c *Config) Validate() error {
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_SIZE_MB must be positive")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.MinIO.AccessKey == "minioadmin" {
			log.Warn().Msg("MinIO is using default credentials")
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
