package postgres

import (
	"context"
	"database/sql"

	"reservationportal/internal/domain"
)

type ReservationRepository struct {
	DB dbtx
}

func NewReservationRepository(db *sql.DB) domain.ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `
		INSERT INTO reservations (user_id, slot_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, res.UserID, res.SlotID, res.CreatedAt).Scan(&res.ID)
	switch pqCode(err) {
	case codeUniqueViolation:
		return domain.ErrConflict
	case codeForeignKeyViolation, codeInvalidTextRepr:
		return domain.ErrNotFound
	}
	return err
}

func (r *ReservationRepository) GetByUserAndSlot(ctx context.Context, userID, slotID string) (*domain.Reservation, error) {
	query := `
		SELECT id, user_id, slot_id, created_at
		FROM reservations
		WHERE user_id = $1 AND slot_id = $2
	`
	res := &domain.Reservation{}
	err := r.DB.QueryRowContext(ctx, query, userID, slotID).Scan(&res.ID, &res.UserID, &res.SlotID, &res.CreatedAt)
	if err != nil {
		return nil, mapLookupError(err, domain.ErrNotFound)
	}
	return res, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, userID, slotID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE user_id = $1 AND slot_id = $2`, userID, slotID)
	if err != nil {
		return mapLookupError(err, domain.ErrNotFound)
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

func (r *ReservationRepository) ListBySlot(ctx context.Context, slotID string) ([]*domain.Reservation, error) {
	return r.list(ctx, `
		SELECT id, user_id, slot_id, created_at
		FROM reservations
		WHERE slot_id = $1
		ORDER BY created_at DESC
	`, slotID)
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return r.list(ctx, `
		SELECT id, user_id, slot_id, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (r *ReservationRepository) list(ctx context.Context, query string, arg string) ([]*domain.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		if pqCode(err) == codeInvalidTextRepr {
			return []*domain.Reservation{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.Reservation, 0)
	for rows.Next() {
		res := &domain.Reservation{}
		if err := rows.Scan(&res.ID, &res.UserID, &res.SlotID, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ReservationRepository) CountBySlot(ctx context.Context, slotID string) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations WHERE slot_id = $1`, slotID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ReservationRepository) CountAll(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT slot_id, COUNT(*) FROM reservations GROUP BY slot_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var slotID string
		var n int
		if err := rows.Scan(&slotID, &n); err != nil {
			return nil, err
		}
		counts[slotID] = n
	}
	return counts, rows.Err()
}

func (r *ReservationRepository) ListDetailed(ctx context.Context) ([]*domain.ReservationDetail, error) {
	query := `
		SELECT r.id, r.user_id, r.slot_id, r.created_at,
			u.email, u.first_name, u.last_name, u.is_admin, u.created_at,
			to_char(s.date, 'YYYY-MM-DD'), to_char(s.time_start, 'HH24:MI'), to_char(s.time_end, 'HH24:MI'), s.capacity, s.created_at
		FROM reservations r
		JOIN allowed_users u ON u.id = r.user_id
		JOIN interview_slots s ON s.id = r.slot_id
		ORDER BY r.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.ReservationDetail, 0)
	for rows.Next() {
		res := &domain.Reservation{}
		u := &domain.User{}
		s := &domain.Slot{}
		if err := rows.Scan(&res.ID, &res.UserID, &res.SlotID, &res.CreatedAt,
			&u.Email, &u.FirstName, &u.LastName, &u.IsAdmin, &u.CreatedAt,
			&s.Date, &s.StartTime, &s.EndTime, &s.Capacity, &s.CreatedAt); err != nil {
			return nil, err
		}
		u.ID = res.UserID
		s.ID = res.SlotID
		out = append(out, &domain.ReservationDetail{Reservation: res, User: u, Slot: s})
	}
	return out, rows.Err()
}
