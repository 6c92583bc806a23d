// Package core owns the credential store connection lifecycle: schema
// migrations and the pgx connection pool handed to repositories.
package core

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/becore/core-auth/config"
	"github.com/becore/core-auth/internal/core/migrations"
)

// Connect applies pending migrations and returns a ready connection pool.
// Migrations run over a short-lived database/sql handle because goose
// requires one; the pool itself stays on native pgx.
func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if err := runMigrations(ctx, cfg.Database.URL); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
