package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Same variable names as the deployment .env files.
const (
	envAddr           = "LOCALBOOST_ADDR"
	envDatabaseURL    = "DATABASE_URL"
	envJWTSecret      = "JWT_SECRET"
	envJWTExpireHours = "JWT_EXPIRE_HOURS"
	envGoogleClientID = "GOOGLE_CLIENT_ID"
	envLogLevel       = "LOCALBOOST_LOG_LEVEL"
)

func parseEnv(cfg *Config) {
	cfg.Addr = envString(envAddr, cfg.Addr)
	cfg.DatabaseDSN = envString(envDatabaseURL, cfg.DatabaseDSN)
	cfg.JWTSecret = envString(envJWTSecret, cfg.JWTSecret)
	cfg.GoogleClientID = envString(envGoogleClientID, cfg.GoogleClientID)
	cfg.LogLevel = envString(envLogLevel, cfg.LogLevel)

	if v := strings.TrimSpace(os.Getenv(envJWTExpireHours)); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			cfg.TokenTTL = time.Duration(h) * time.Hour
		}
	}
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
