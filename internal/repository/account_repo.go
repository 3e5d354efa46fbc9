package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"uni-match/internal/domain"
)

// AccountRepository define el contrato de persistencia para cuentas de creditos.
type AccountRepository interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	Upsert(ctx context.Context, account domain.Account) error
}

// PgAccountRepository implementa AccountRepository usando pgxpool.
type PgAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPgAccountRepository(pool *pgxpool.Pool) *PgAccountRepository {
	return &PgAccountRepository{pool: pool}
}

func (r *PgAccountRepository) Get(ctx context.Context, id string) (domain.Account, error) {
	const query = `
		SELECT id, free_credits, paid_credits, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var a domain.Account
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.FreeCredits,
		&a.PaidCredits,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, ErrNotFound
	}
	return a, err
}

func (r *PgAccountRepository) Upsert(ctx context.Context, account domain.Account) error {
	const query = `
		INSERT INTO accounts (id, free_credits, paid_credits, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			free_credits = EXCLUDED.free_credits,
			paid_credits = EXCLUDED.paid_credits,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.FreeCredits,
		account.PaidCredits,
		account.CreatedAt,
		account.UpdatedAt,
	)
	return err
}
