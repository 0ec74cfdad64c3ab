package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the LocalBoost client.
//
// Fields:
//   - APIBaseURL: scheme://host:port of the backend HTTP API.
//   - RequestTimeout: per-request timeout applied by the HTTP client.
//   - DataDir: directory holding the local database and the device key.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DataDir        string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 10 * time.Second
	c.DataDir = ".localboost"
	c.LogLevel = "info"
}

// DBPath is the sqlite file inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "client.db")
}

// KeyPath is the device secret used to seal the session token at rest.
func (c *Config) KeyPath() string {
	return filepath.Join(c.DataDir, "device.key")
}

// LoadConfig builds a Config from os.Args. See Load.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load applies defaults, then overlays the JSON file (if any), environment
// variables and finally command-line flags. Later sources win.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
