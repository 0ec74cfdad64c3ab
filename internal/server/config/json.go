package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/localboost/internal/flagx"
	"github.com/dmitrijs2005/localboost/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file.
type JsonConfig struct {
	Addr           string         `json:"addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	JWTSecret      string         `json:"jwt_secret"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	GoogleClientID string         `json:"google_client_id"`
	LogLevel       string         `json:"log_level"`
}

func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.JWTSecret != "" {
		cfg.JWTSecret = jc.JWTSecret
	}
	if jc.TokenTTL.Duration > 0 {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.GoogleClientID != "" {
		cfg.GoogleClientID = jc.GoogleClientID
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
