package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. Redis is optional; without it rate limiting is off.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Rate limiting for feed and recommendation routes
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Object storage for recipe images. Empty bucket disables presigning.
	S3Bucket       string
	AWSRegion      string
	ImageURLExpiry time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisEnabled reports whether a Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Env: env}

	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadCommon(cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadCIConfig reads everything from the environment. The database password
// comes from the TEST_DB_PASSWORD secret variable.
func loadCIConfig(cfg *Config) error {
	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	return nil
}

// loadDevConfig uses environment variables with local defaults. Docker
// secrets, when mounted, override the environment.
func loadDevConfig(cfg *Config) {
	cfg.DBDriver = getEnv("DB_DRIVER", "sqlite")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "recipes.db")
	cfg.DBHost = secretOrEnv("db_host", "DB_HOST", "localhost")
	cfg.DBPort = secretOrEnv("db_port", "DB_PORT", "5432")
	cfg.DBUser = secretOrEnv("db_user", "DB_USER", "postgres")
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD", "postgres")
	cfg.DBName = secretOrEnv("db_name", "DB_NAME", "recipes")
	cfg.DBSSLMode = secretOrEnv("db_ssl_mode", "DB_SSL_MODE", "disable")
	cfg.RedisHost = secretOrEnv("redis_host", "REDIS_HOST", "")
	cfg.RedisPort = secretOrEnv("redis_port", "REDIS_PORT", "6379")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD", "")
	cfg.RedisURL = secretOrEnv("redis_url", "REDIS_URL", "")
}

// loadProdConfig prefers Docker secrets and has no credential defaults.
func loadProdConfig(cfg *Config) {
	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.DBHost = secretOrEnv("db_host", "DB_HOST", "")
	cfg.DBPort = secretOrEnv("db_port", "DB_PORT", "5432")
	cfg.DBUser = secretOrEnv("db_user", "DB_USER", "")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = secretOrEnv("db_name", "DB_NAME", "")
	cfg.DBSSLMode = secretOrEnv("db_ssl_mode", "DB_SSL_MODE", "require")
	cfg.RedisHost = secretOrEnv("redis_host", "REDIS_HOST", "")
	cfg.RedisPort = secretOrEnv("redis_port", "REDIS_PORT", "6379")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = secretOrEnv("redis_url", "REDIS_URL", "")
}

// loadCommon reads the settings that do not depend on the environment.
func loadCommon(cfg *Config) error {
	cfg.ServerHost = secretOrEnv("server_host", "SERVER_HOST", "0.0.0.0")
	cfg.ServerPort = secretOrEnv("server_port", "SERVER_PORT", "8080")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return err
	}
	if cfg.RateLimitRequests, err = getEnvInt("RATE_LIMIT_REQUESTS", 60); err != nil {
		return err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return err
	}
	if cfg.ImageURLExpiry, err = getEnvDuration("IMAGE_URL_EXPIRY", time.Hour); err != nil {
		return err
	}
	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretOrEnv(secret, key, def string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return getEnv(key, def)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("not an integer: %q", v)}
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("not a duration: %q", v)}
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
