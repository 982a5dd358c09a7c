// Package config handles configuration for the credkeeper server: defaults,
// an optional JSON file, environment variables and command-line flags,
// applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashSchemeBcrypt   = "bcrypt"
	HashSchemeArgon2id = "argon2id"
)

// Config holds runtime settings for the credkeeper server. It is built once
// at startup and treated as read-only afterwards.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Required.
//   - PasswordHashScheme: scheme for new password hashes, bcrypt or argon2id.
//   - BcryptCost: bcrypt work factor. Never taken from a request.
//   - LogLevel: debug, info, warn or error.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP   string        `env:"ADDRESS"`
	DatabaseDSN        string        `env:"DATABASE_DSN"`
	SecretKey          string        `env:"ACCESS_KEY"`
	PasswordHashScheme string        `env:"PASSWORD_HASH_SCHEME"`
	BcryptCost         int           `env:"BCRYPT_COST"`
	LogLevel           string        `env:"LOG_LEVEL"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

var ErrMissingSecretKey = errors.New("secret key is not set")

// LoadDefaults populates Config with development defaults. SecretKey has
// no default.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.PasswordHashScheme = HashSchemeBcrypt
	c.BcryptCost = bcrypt.DefaultCost
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
}

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	switch c.PasswordHashScheme {
	case HashSchemeBcrypt, HashSchemeArgon2id:
	default:
		return fmt.Errorf("unknown password hash scheme %q", c.PasswordHashScheme)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then the process environment, then the flags in args
// (usually os.Args[1:]). The result is validated.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, envMap(os.Environ())); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
