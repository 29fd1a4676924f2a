package postgres

import (
	"context"
	"database/sql"

	"reservationportal/internal/domain"
)

const slotColumns = `id, to_char(date, 'YYYY-MM-DD'), to_char(time_start, 'HH24:MI'), to_char(time_end, 'HH24:MI'), capacity, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	s := &domain.Slot{}
	if err := row.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.Capacity, &s.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

type SlotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &SlotRepository{DB: db}
}

func (r *SlotRepository) Create(ctx context.Context, s *domain.Slot) error {
	query := `
		INSERT INTO interview_slots (date, time_start, time_end, capacity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.Date, s.StartTime, s.EndTime, s.Capacity, s.CreatedAt).Scan(&s.ID)
}

func (r *SlotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM interview_slots WHERE id = $1`
	s, err := scanSlot(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapLookupError(err, domain.ErrNotFound)
	}
	return s, nil
}

func (r *SlotRepository) List(ctx context.Context) ([]*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM interview_slots ORDER BY date ASC, time_start ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Delete locks the slot row so no booking can commit against it, removes its reservations and then
// the slot, all in one transaction.
func (r *SlotRepository) Delete(ctx context.Context, id string) (canceled int, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var locked string
	if err = tx.QueryRowContext(ctx, `SELECT id FROM interview_slots WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		return 0, mapLookupError(err, domain.ErrNotFound)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE slot_id = $1`, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM interview_slots WHERE id = $1`, id); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, mapTxError(err)
	}
	return int(n), nil
}
