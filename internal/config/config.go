// Package config holds process-level configuration: port, mock-root
// folder, and CORS settings. This is distinct from internal/tomlconfig,
// which handles the per-route TOML layers (§4.2). Adapted from the
// teacher's internal/config.ServerConfig: CLI flags populate the
// struct's defaults, then env vars may override via caarlos0/env,
// exactly as the teacher's loader does.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// ServerConfig is the process-level configuration surfaced by the CLI.
type ServerConfig struct {
	Port          uint16 `env:"MOCKHIVE_PORT"`
	Folder        string `env:"MOCKHIVE_FOLDER"`
	DisableCORS   bool   `env:"MOCKHIVE_DISABLE_CORS"`
	AllowedOrigin string `env:"MOCKHIVE_ALLOWED_ORIGIN"`
}

// Default returns the CLI's documented defaults (§6): port 4520,
// folder ./mocks, CORS enabled, allowed origin "*".
func Default() ServerConfig {
	return ServerConfig{
		Port:          4520,
		Folder:        "./mocks",
		DisableCORS:   false,
		AllowedOrigin: "*",
	}
}

// ApplyEnv overlays any matching environment variables onto cfg.
func ApplyEnv(cfg *ServerConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error parsing env variables: %w", err)
	}
	return nil
}
