package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/localboost/internal/flagx"
)

// parseFlags populates Config from command-line flags:
//
//	-a string   bind address
//	-d string   database DSN
//	-k string   JWT signing secret
//	-t int      token lifetime in hours
//	-g string   Google OAuth client ID
//	-l string   log level
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-k", "-t", "-g", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "bind address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (postgres URL or sqlite path)")
	fs.StringVar(&cfg.JWTSecret, "k", cfg.JWTSecret, "JWT signing secret")
	ttl := fs.Int("t", int(cfg.TokenTTL.Hours()), "token lifetime (in hours)")
	fs.StringVar(&cfg.GoogleClientID, "g", cfg.GoogleClientID, "Google OAuth client ID")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.TokenTTL = time.Duration(*ttl) * time.Hour
		}
	})
}
