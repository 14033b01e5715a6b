package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"emberarena/internal/models"
)

// Store backends
const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config holds everything the process reads from the environment
type Config struct {
	Port  string
	Store string

	MySQLUser     string
	MySQLPassword string
	MySQLHost     string
	MySQLPort     string
	MySQLDatabase string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret  string
	SessionTTL time.Duration
	TieRule    models.TieRule

	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Load reads the configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "3001"),
		Store:         getEnv("STORE", StoreMySQL),
		MySQLUser:     getEnv("MYSQL_USER", "root"),
		MySQLPassword: getEnv("MYSQL_PASSWORD", ""),
		MySQLHost:     getEnv("MYSQL_HOST", "localhost"),
		MySQLPort:     getEnv("MYSQL_PORT", "3306"),
		MySQLDatabase: getEnv("MYSQL_DATABASE", "emberarena"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
	}

	if cfg.Store != StoreMySQL && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("STORE must be %q or %q, got %q", StoreMySQL, StoreMemory, cfg.Store)
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.RateLimitWindow, err = time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW: %w", err)
	}
	if cfg.RateLimitMax, err = strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100")); err != nil || cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be a positive integer")
	}
	if cfg.TieRule, err = models.ParseTieRule(getEnv("DUEL_TIE_RULE", "")); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		if cfg.Store != StoreMemory {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		// dev mode only
		cfg.JWTSecret = "emberarena-dev-secret"
	}
	return cfg, nil
}

// MustLoad is Load for main: any configuration error is fatal.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// MySQLDSN builds the data source name for go-sql-driver/mysql.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		c.MySQLUser, c.MySQLPassword, c.MySQLHost, c.MySQLPort, c.MySQLDatabase)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
