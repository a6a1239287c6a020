package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentloop/consult/internal/history"
)

// initDatabase connects the history pool and bootstraps the schema.
func (a *App) initDatabase(ctx context.Context) error {
	const op = "app.initDatabase"

	connConfig, err := pgxpool.ParseConfig(a.Config.Database.URL)
	if err != nil {
		return fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	repo, err := history.NewRepository(ctx, db)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.db = db
	a.history = history.NewService(repo, a.Log)
	return nil
}
