package db

import (
	"context"
	"lumino/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresConnection(cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := cfg.GetDSN()
	pool, err := pgxpool.New(context.Background(), dsn)

	if err != nil {
		return nil, err
	}

	err = pool.Ping(context.Background())
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// EnsureSchema создаёт таблицу articles, если её ещё нет. Повторный запуск безопасен.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS articles (
			id            BIGSERIAL PRIMARY KEY,
			title         VARCHAR(255) NOT NULL,
			slug          VARCHAR(255) NOT NULL UNIQUE,
			content       TEXT NOT NULL,
			category      VARCHAR(50) NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_featured   BOOLEAN NOT NULL DEFAULT FALSE,
			status        VARCHAR(50) NOT NULL DEFAULT 'draft',
			thumbnail_url VARCHAR(255)
		)
	`
	_, err := pool.Exec(ctx, ddl)
	return err
}
