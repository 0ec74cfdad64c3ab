package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/localboost/internal/client/cli"
	"github.com/dmitrijs2005/localboost/internal/client/client"
	"github.com/dmitrijs2005/localboost/internal/client/config"
	"github.com/dmitrijs2005/localboost/internal/client/preferences"
	"github.com/dmitrijs2005/localboost/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/localboost/internal/client/services"
	"github.com/dmitrijs2005/localboost/internal/client/storage"
	"github.com/dmitrijs2005/localboost/internal/client/tokenstore"
	"github.com/dmitrijs2005/localboost/internal/filex"
	"github.com/dmitrijs2005/localboost/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	if err := run(context.Background(), cfg); err != nil {
		fmt.Fprintln(os.Stderr, "localboost:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := filex.EnsureDir(cfg.DataDir); err != nil {
		return err
	}

	// the REPL owns the terminal, so logs go to a file next to the database
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "client.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close() //nolint:errcheck

	log := logging.New(cfg.LogLevel, logFile)
	log.Info(ctx, "starting", "api", cfg.APIBaseURL, "data_dir", cfg.DataDir)

	db, err := storage.Open(ctx, cfg.DBPath())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	store, err := tokenstore.OpenSQLiteStore(db, cfg.KeyPath())
	if err != nil {
		return err
	}

	api := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, store, log)
	sessions := services.NewSessionManager(api, store, log)
	go sessions.Restore(ctx)

	prefs := preferences.New(metadata.NewSQLiteRepository(db))

	app := cli.NewApp(sessions, prefs, log, os.Stdin, os.Stdout)
	return app.Run(ctx)
}
