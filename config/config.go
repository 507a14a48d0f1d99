// ABOUTME: Runtime configuration from environment variables and .env files
// ABOUTME: Resolves dataset paths against the XDG data directory by default
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting. All fields can be set through
// HEARTH_* environment variables; an optional .env file is loaded first.
type Config struct {
	ListingsPath string `envconfig:"LISTINGS_PATH"`
	ClientsPath  string `envconfig:"CLIENTS_PATH"`
	HTTPAddr     string `envconfig:"HTTP_ADDR" default:":8000"`
	Debug        bool   `envconfig:"DEBUG" default:"false"`
}

// Load reads configuration from the environment, filling unset dataset
// paths with XDG defaults (~/.local/share/hearth on Linux).
func Load() (*Config, error) {
	// Missing .env is fine; only a malformed one is an error.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := envconfig.Process("hearth", &cfg); err != nil {
		return nil, err
	}

	dataDir := filepath.Join(xdg.DataHome, "hearth")
	if cfg.ListingsPath == "" {
		cfg.ListingsPath = filepath.Join(dataDir, "listings.jsonl")
	}
	if cfg.ClientsPath == "" {
		cfg.ClientsPath = filepath.Join(dataDir, "clients.jsonl")
	}
	return &cfg, nil
}
