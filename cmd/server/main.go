package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/localboost/internal/logging"
	"github.com/dmitrijs2005/localboost/internal/server"
	"github.com/dmitrijs2005/localboost/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(cfg.LogLevel)})
	logger := logging.NewSlogLogger(slog.New(h))

	ctx := context.Background()

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "localboost-server:", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
