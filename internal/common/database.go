package common

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/label-verifier/gen/ent"
	"github.com/joseph-ayodele/label-verifier/internal/repository"
)

// DatabaseResult bundles an opened database with its cleanup function.
type DatabaseResult struct {
	Client  *ent.Client
	Pool    *pgxpool.Pool
	Cleanup func()
}

// InitDatabase opens whichever database the config selects: Postgres when a
// DSN is set, otherwise a local SQLite file. SQLite targets get their schema
// created on open. Passing inmem forces a throwaway in-memory database.
func InitDatabase(ctx context.Context, cfg *Config, inmem bool, logger *slog.Logger) (*DatabaseResult, error) {
	if inmem {
		return openSQLite(ctx, ":memory:", logger)
	}
	if cfg.Database.DSN != "" {
		entc, pool, err := repository.Open(ctx, repository.Config{
			DSN:              cfg.Database.DSN,
			MaxConns:         cfg.Database.MaxConns,
			MinConns:         cfg.Database.MinConns,
			MaxConnLifetime:  cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
			DialTimeout:      cfg.Database.DialTimeout,
			StatementTimeout: cfg.Database.StatementTimeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return &DatabaseResult{
			Client:  entc,
			Pool:    pool,
			Cleanup: func() { repository.Close(entc, pool, logger) },
		}, nil
	}
	if cfg.Database.LocalPath == "" {
		return nil, NewAppError("CONFIG_ERROR", "database not configured: set DB_URL or DB_LOCAL_PATH", ErrConfigInvalid)
	}
	return openSQLite(ctx, cfg.Database.LocalPath, logger)
}

func openSQLite(ctx context.Context, path string, logger *slog.Logger) (*DatabaseResult, error) {
	entc, err := repository.OpenLocal(path, logger)
	if err != nil {
		return nil, err
	}
	if err := entc.Schema.Create(ctx); err != nil {
		logger.Error("schema create failed", "path", path, "error", err)
		_ = entc.Close()
		return nil, err
	}
	return &DatabaseResult{
		Client:  entc,
		Cleanup: func() { repository.Close(entc, nil, logger) },
	}, nil
}
