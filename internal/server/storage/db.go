// Package storage opens the server database named by a DSN and brings its
// schema up to date. postgres:// and postgresql:// URLs go through pgx;
// anything else is taken as a sqlite file path.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/localboost/internal/server/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver returns the database/sql driver name and goose dialect for dsn.
func Driver(dsn string) (string, goose.Dialect) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx", goose.DialectPostgres
	}
	return "sqlite", goose.DialectSQLite3
}

// RunMigrations applies every pending migration for the given dialect.
func RunMigrations(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Open connects to dsn, checks the connection and runs migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	driver, dialect := Driver(dsn)

	source := dsn
	if driver == "sqlite" {
		source = strings.TrimPrefix(dsn, "sqlite://") + "?_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
