package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays values from environment onto config. Variables that are
// not set leave the current value alone.
func parseEnv(config *Config, environment map[string]string) error {
	return env.ParseWithOptions(config, env.Options{Environment: environment})
}

func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			m[k] = v
		}
	}
	return m
}
