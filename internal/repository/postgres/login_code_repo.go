package postgres

import (
	"context"
	"database/sql"
	"time"

	"reservationportal/internal/domain"
)

type loginCodeRepository struct {
	DB *sql.DB
}

// NewLoginCodeRepository returns a domain.LoginCodeRepository implemented with Postgres.
func NewLoginCodeRepository(db *sql.DB) domain.LoginCodeRepository {
	return &loginCodeRepository{DB: db}
}

func (r *loginCodeRepository) Create(ctx context.Context, c *domain.LoginCode) error {
	query := `
		INSERT INTO login_codes (email, code_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, c.Email, c.CodeHash, c.ExpiresAt).Scan(&c.ID)
}

func (r *loginCodeRepository) ListActive(ctx context.Context, email string, now time.Time) ([]*domain.LoginCode, error) {
	query := `
		SELECT id, email, code_hash, expires_at
		FROM login_codes
		WHERE email = $1 AND expires_at > $2
		ORDER BY expires_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, email, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	codes := make([]*domain.LoginCode, 0)
	for rows.Next() {
		c := &domain.LoginCode{}
		if err := rows.Scan(&c.ID, &c.Email, &c.CodeHash, &c.ExpiresAt); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

func (r *loginCodeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM login_codes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
