// Package server wires the API server together: database, account service
// and HTTP router. It also owns the listener and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/localboost/internal/logging"
	"github.com/dmitrijs2005/localboost/internal/server/api"
	"github.com/dmitrijs2005/localboost/internal/server/auth"
	"github.com/dmitrijs2005/localboost/internal/server/config"
	"github.com/dmitrijs2005/localboost/internal/server/storage"
	"github.com/dmitrijs2005/localboost/internal/server/users"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if c.JWTSecret == config.DefaultJWTSecret {
		logger.Warn(ctx, "using the development JWT secret; set JWT_SECRET")
	}

	db, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var google auth.GoogleVerifier
	if v, err := auth.NewGoogleVerifier(ctx, c.GoogleClientID); err == nil {
		google = v
	} else {
		logger.Warn(ctx, "google sign-in disabled", "error", err)
	}

	svc := users.NewService(users.NewSQLRepository(db), auth.NewTokenIssuer(c.JWTSecret, c.TokenTTL), google)
	router := api.NewRouter(api.NewHandlers(c.AppName, svc, logger), logger)

	return &App{config: c, logger: logger, db: db, handler: router}, nil
}

// Handler is the fully wired HTTP API.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx ends or a termination signal arrives, then shuts the
// listener down gracefully and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.Close() //nolint:errcheck

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:              app.config.Addr,
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting server...", "addr", app.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
