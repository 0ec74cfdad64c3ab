// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"os"
	"time"
)

// DefaultJWTSecret is only fit for local development.
const DefaultJWTSecret = "change-me-in-production-use-a-long-random-string"

// Config holds runtime settings for the LocalBoost API server.
//
// Fields:
//   - Addr: bind address of the HTTP API.
//   - DatabaseDSN: a postgres:// URL (pgx) or a sqlite file path.
//   - JWTSecret: HMAC secret for signing access tokens (HS256).
//   - TokenTTL: lifetime of an access token.
//   - GoogleClientID: OAuth client ID that Google ID tokens must be issued
//     for. Empty disables Google sign-in.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	AppName        string
	Addr           string
	DatabaseDSN    string
	JWTSecret      string
	TokenTTL       time.Duration
	GoogleClientID string
	LogLevel       string
}

// LoadDefaults populates c with development defaults.
// NOTE: JWTSecret must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.AppName = "LocalBoost AI"
	c.Addr = ":8000"
	c.DatabaseDSN = "localboost.db"
	c.JWTSecret = DefaultJWTSecret
	c.TokenTTL = 24 * time.Hour
	c.GoogleClientID = ""
	c.LogLevel = "info"
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
