package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/label-verifier/gen/ent"
	"github.com/joseph-ayodele/label-verifier/internal/common"
	repo "github.com/joseph-ayodele/label-verifier/internal/repository"
)

// ConnectDB opens whichever database the config selects: Postgres when a DSN
// is set, otherwise the local SQLite file. The pool is nil in local mode.
func ConnectDB(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*ent.Client, *pgxpool.Pool, error) {
	if cfg.DSN == "" {
		entc, err := repo.OpenLocal(cfg.LocalPath, logger)
		if err != nil {
			return nil, nil, err
		}
		return entc, nil, nil
	}

	entc, pool, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.DSN,
		MaxConns:         cfg.MaxConns,
		MinConns:         cfg.MinConns,
		MaxConnLifetime:  cfg.MaxConnLifetime,
		MaxConnIdleTime:  cfg.MaxConnIdleTime,
		DialTimeout:      cfg.DialTimeout,
		StatementTimeout: cfg.StatementTimeout,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return entc, pool, nil
}

// PingDB pings the database to ensure it's responsive. Local mode has no pool
// and always reports healthy.
func PingDB(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, timeout time.Duration) error {
	if pool == nil {
		return nil
	}
	return repo.HealthCheck(ctx, pool, timeout, logger)
}

// CloseDB closes the database connections gracefully
func CloseDB(entc *ent.Client, pool *pgxpool.Pool, logger *slog.Logger) {
	repo.Close(entc, pool, logger)
}
