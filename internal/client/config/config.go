// Package config holds the settings of the credkeeper command-line client.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
)

var ErrEmptyServerURL = errors.New("server URL must not be empty")

// Config holds runtime settings for the credkeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the credkeeper HTTP API.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string        `env:"CREDKEEPER_SERVER"`
	RequestTimeout time.Duration `env:"CREDKEEPER_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then environment variables, then the leading
// -a/-t flags of args. The remaining positional arguments (the subcommand
// and its operands) are returned alongside the config.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.Parse(cfg); err != nil {
		return nil, nil, fmt.Errorf("env: %w", err)
	}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if cfg.ServerURL == "" {
		return nil, nil, ErrEmptyServerURL
	}
	return cfg, fs.Args(), nil
}
