package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Security SecurityConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	GinMode        string
	Environment    string
	MaxContentSize int64
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Echo            bool
}

type SessionConfig struct {
	Secret       string
	Lifetime     time.Duration
	RememberFor  time.Duration
	CookieName   string
	SecureCookie bool
}

type SecurityConfig struct {
	BcryptCost        int
	AuthRatePerMinute int
	AuthRateBurst     int
}

type CORSConfig struct {
	Origins          []string
	AllowCredentials bool
}

type LogConfig struct {
	Level string
}

// Load reads .env (when present) and the process environment into a Config.
func Load() (*Config, error) {
	// .env is optional; deployed environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("HOST", "0.0.0.0"),
			Port:           getEnv("PORT", "5000"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			MaxContentSize: int64(getEnvAsInt("MAX_CONTENT_LENGTH", 16*1024*1024)),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", "sqlite://tech_booking.db"),
			MaxOpenConns:    getEnvAsInt("DB_POOL_SIZE", 20),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE", 10),
			ConnMaxLifetime: time.Duration(getEnvAsInt("DB_POOL_RECYCLE", 3600)) * time.Second,
			Echo:            getEnvAsBool("DB_ECHO", false),
		},
		Session: SessionConfig{
			Secret:       getEnv("SECRET_KEY", "dev-fallback-key-change-in-production"),
			Lifetime:     time.Duration(getEnvAsInt("PERMANENT_SESSION_LIFETIME", 1)) * time.Hour,
			RememberFor:  time.Duration(getEnvAsInt("REMEMBER_COOKIE_DAYS", 30)) * 24 * time.Hour,
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session"),
			SecureCookie: getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Security: SecurityConfig{
			BcryptCost:        getEnvAsInt("BCRYPT_LOG_ROUNDS", 12),
			AuthRatePerMinute: getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 10),
			AuthRateBurst:     getEnvAsInt("AUTH_RATE_LIMIT_BURST", 20),
		},
		CORS: CORSConfig{
			Origins:          getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5000"}),
			AllowCredentials: getEnvAsBool("CORS_SUPPORTS_CREDENTIALS", true),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.Session.Lifetime <= 0 {
		return fmt.Errorf("PERMANENT_SESSION_LIFETIME must be positive")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_LOG_ROUNDS must be between 4 and 31, got %d", c.Security.BcryptCost)
	}
	if c.IsProduction() && c.Session.Secret == "dev-fallback-key-change-in-production" {
		return fmt.Errorf("SECRET_KEY must be set in production")
	}
	return nil
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
