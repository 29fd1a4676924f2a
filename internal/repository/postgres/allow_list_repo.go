package postgres

import (
	"context"
	"database/sql"

	"reservationportal/internal/domain"
)

type allowListRepository struct {
	DB *sql.DB
}

func NewAllowListRepository(db *sql.DB) domain.AllowListRepository {
	return &allowListRepository{DB: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *allowListRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO allowed_users (email, first_name, last_name, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Email, u.FirstName, u.LastName, u.IsAdmin, u.CreatedAt).Scan(&u.ID)
	if pqCode(err) == codeUniqueViolation {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *allowListRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, first_name, last_name, is_admin, created_at
		FROM allowed_users
		WHERE email = $1
	`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapLookupError(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *allowListRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, first_name, last_name, is_admin, created_at
		FROM allowed_users
		WHERE id = $1
	`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapLookupError(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *allowListRepository) SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error) {
	query := `
		UPDATE allowed_users SET is_admin = $1
		WHERE email = $2
		RETURNING id, email, first_name, last_name, is_admin, created_at
	`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, isAdmin, email))
	if err != nil {
		return nil, mapLookupError(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *allowListRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, email, first_name, last_name, is_admin, created_at
		FROM allowed_users
		ORDER BY email ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
