package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"uni-match/internal/domain"
)

// ProfileRepository define el contrato de persistencia para perfiles.
// El core de matching lo consume en modo lectura; la superficie de
// onboarding/edicion usa Create y Update.
type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) error
	GetByID(ctx context.Context, id string) (domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, id string, update domain.ProfileUpdate) error
}

// PgProfileRepository implementa ProfileRepository usando pgxpool.
// Los mapas de rasgos (Big Five, Dark Triad) se guardan como jsonb.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

const profileColumns = `
	id, email, display_name, institution, bio, city, age,
	mbti, zodiac_sign, photo_url, big_five, dark_triad,
	created_at, updated_at
`

func (r *PgProfileRepository) Create(ctx context.Context, profile domain.Profile) error {
	const query = `
		INSERT INTO profiles (
			id, email, display_name, institution, bio, city, age,
			mbti, zodiac_sign, photo_url, big_five, dark_triad,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.Email,
		profile.DisplayName,
		profile.Institution,
		profile.Bio,
		profile.City,
		profile.Age,
		profile.MBTIType,
		profile.ZodiacSign,
		profile.PhotoURL,
		profile.BigFive,
		profile.DarkTriad,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *PgProfileRepository) GetByEmail(ctx context.Context, email string) (domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.queryOne(ctx, query, email)
}

func (r *PgProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update arma el SET dinamicamente a partir de los campos presentes.
// Solo los campos con puntero no nil llegan al statement.
func (r *PgProfileRepository) Update(ctx context.Context, id string, update domain.ProfileUpdate) error {
	if update.IsZero() {
		return nil
	}

	set := []string{}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.DisplayName != nil {
		add("display_name", *update.DisplayName)
	}
	if update.Institution != nil {
		add("institution", *update.Institution)
	}
	if update.Bio != nil {
		add("bio", *update.Bio)
	}
	if update.City != nil {
		add("city", *update.City)
	}
	if update.Age != nil {
		add("age", *update.Age)
	}
	if update.MBTIType != nil {
		add("mbti", *update.MBTIType)
	}
	if update.ZodiacSign != nil {
		add("zodiac_sign", *update.ZodiacSign)
	}
	if update.PhotoURL != nil {
		add("photo_url", *update.PhotoURL)
	}
	if update.BigFive != nil {
		add("big_five", *update.BigFive)
	}
	if update.DarkTriad != nil {
		add("dark_triad", *update.DarkTriad)
	}
	set = append(set, "updated_at = now()")

	query := "UPDATE profiles SET " + strings.Join(set, ", ") + " WHERE id = $1"
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgProfileRepository) queryOne(ctx context.Context, query string, arg any) (domain.Profile, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, ErrNotFound
	}
	return p, err
}

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.DisplayName,
		&p.Institution,
		&p.Bio,
		&p.City,
		&p.Age,
		&p.MBTIType,
		&p.ZodiacSign,
		&p.PhotoURL,
		&p.BigFive,
		&p.DarkTriad,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
