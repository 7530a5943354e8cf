// Package config reads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string
	// HandshakeTimeout bounds how long an unauthenticated connection may
	// sit idle before its first message.
	HandshakeTimeout time.Duration
}

const (
	defaultAddr             = ":8080"
	defaultLogLevel         = "info"
	defaultHandshakeTimeout = 30 * time.Second
)

// Load reads configuration. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:             getenv("ADDR", defaultAddr),
		LogLevel:         getenv("LOG_LEVEL", defaultLogLevel),
		HandshakeTimeout: defaultHandshakeTimeout,
	}

	if raw := os.Getenv("HANDSHAKE_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse HANDSHAKE_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("HANDSHAKE_TIMEOUT must be positive, got %s", d)
		}
		cfg.HandshakeTimeout = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
