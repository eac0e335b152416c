package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port          string
	Env           string
	StoreDriver   string
	DatabaseDSN   string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTExpiry     time.Duration
	FrontendURL   string
	CookieSecure  bool
	AdminEmails   []string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMySQL)),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/sportsboard"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "sportsboard"),
		JWTSecret:     getEnv("JWT_SECRET", devJWTSecret),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		AdminEmails:   splitList(os.Getenv("ADMIN_EMAILS")),
	}

	var err error
	if cfg.JWTExpiry, err = time.ParseDuration(getEnv("JWT_EXPIRY", "24h")); err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRY: %w", err)
	}
	if cfg.JWTExpiry <= 0 {
		return Config{}, errors.New("JWT_EXPIRY must be positive")
	}

	if cfg.CookieSecure, err = strconv.ParseBool(getEnv("COOKIE_SECURE", strconv.FormatBool(cfg.IsProduction()))); err != nil {
		return Config{}, fmt.Errorf("COOKIE_SECURE: %w", err)
	}

	switch cfg.StoreDriver {
	case DriverMySQL, DriverMongo, DriverMemory:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER %q is not one of mysql, mongo, memory", cfg.StoreDriver)
	}

	if cfg.IsProduction() {
		if cfg.JWTSecret == devJWTSecret {
			return Config{}, errors.New("JWT_SECRET must be set in production environment")
		}
		if len(cfg.JWTSecret) < 32 {
			return Config{}, errors.New("JWT_SECRET must be at least 32 bytes in production environment")
		}
		if cfg.StoreDriver == DriverMemory {
			return Config{}, errors.New("the memory store cannot be used in production environment")
		}
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
