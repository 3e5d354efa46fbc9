package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"uni-match/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Configuración razonable para ambientes iniciales.
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// Migrate crea el esquema minimo si no existe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			free_credits INT NOT NULL DEFAULT 3,
			paid_credits INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK (free_credits >= 0),
			CHECK (paid_credits >= 0)
		);

		CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			institution TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			age INT NOT NULL DEFAULT 0,
			mbti TEXT NOT NULL DEFAULT '',
			zodiac_sign TEXT NOT NULL DEFAULT '',
			photo_url TEXT NOT NULL DEFAULT '',
			big_five JSONB,
			dark_triad JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_email
			ON profiles (email) WHERE email <> '';
	`
	_, err := pool.Exec(ctx, schema)
	return err
}
