package config

import (
	"os"
	"strings"
	"time"
)

const (
	envAPIURL         = "LOCALBOOST_API_URL"
	envRequestTimeout = "LOCALBOOST_REQUEST_TIMEOUT"
	envDataDir        = "LOCALBOOST_DATA_DIR"
	envLogLevel       = "LOCALBOOST_LOG_LEVEL"
)

// parseEnv overlays cfg with LOCALBOOST_* variables. Blank or unparsable
// values are ignored.
func parseEnv(cfg *Config) {
	cfg.APIBaseURL = envString(envAPIURL, cfg.APIBaseURL)
	cfg.RequestTimeout = envDuration(envRequestTimeout, cfg.RequestTimeout)
	cfg.DataDir = envString(envDataDir, cfg.DataDir)
	cfg.LogLevel = envString(envLogLevel, cfg.LogLevel)
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
