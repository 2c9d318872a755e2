// Package config reads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// Storage drivers accepted in STORE_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

// devJWTSecret is used when JWT_SECRET is unset. Never rely on it outside development.
const devJWTSecret = "gameochtend-dev-secret-change-me"

// Config holds the server settings.
type Config struct {
	Port          int
	StoreDriver   string
	DBPath        string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	TokenTTL      time.Duration
	StaticPath    string

	// MaxAttachmentBytes caps each note attachment and profile photo.
	MaxAttachmentBytes int64
}

// Load reads the configuration. lookup is usually os.Getenv.
func Load(lookup func(string) string, logger *slog.Logger) (Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	getEnv := func(key, fallback string) string {
		if value := lookup(key); value != "" {
			return value
		}
		return fallback
	}

	var errs []error
	cfg := Config{
		StoreDriver:   getEnv("STORE_DRIVER", DriverSQLite),
		DBPath:        getEnv("DB_PATH", "./data/gameochtend.db"),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "gameochtend"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		StaticPath:    getEnv("STATIC_PATH", "../frontend/static"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: invalid port %q", lookup("PORT")))
	}
	cfg.Port = port

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL: invalid duration %q", lookup("TOKEN_TTL")))
	}
	cfg.TokenTTL = ttl

	// Accepts "5MiB", "512 KB" or a plain byte count.
	size, err := humanize.ParseBytes(getEnv("MAX_ATTACHMENT_BYTES", "5MiB"))
	if err != nil || size == 0 {
		errs = append(errs, fmt.Errorf("MAX_ATTACHMENT_BYTES: invalid size %q", lookup("MAX_ATTACHMENT_BYTES")))
	}
	cfg.MaxAttachmentBytes = int64(size)

	switch cfg.StoreDriver {
	case DriverSQLite, DriverMemory:
	case DriverMongo:
		if cfg.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI: required when STORE_DRIVER=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unknown driver %q", cfg.StoreDriver))
	}

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv loads the configuration from the process environment.
func FromEnv(logger *slog.Logger) (Config, error) {
	return Load(os.Getenv, logger)
}
