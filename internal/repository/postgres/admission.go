package postgres

import (
	"context"
	"database/sql"

	"reservationportal/internal/domain"
)

// AdmissionStore runs admission units as transactions holding a row lock on the slot. Concurrent
// units for the same slot queue on that lock; units for different slots do not contend.
type AdmissionStore struct {
	DB *sql.DB
}

func NewAdmissionStore(db *sql.DB) *AdmissionStore {
	return &AdmissionStore{DB: db}
}

func (s *AdmissionStore) WithSlotLock(ctx context.Context, slotID string, fn domain.AdmissionFunc) (err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `SELECT ` + slotColumns + ` FROM interview_slots WHERE id = $1 FOR UPDATE`
	slot, err := scanSlot(tx.QueryRowContext(ctx, query, slotID))
	if err != nil {
		return mapTxError(mapLookupError(err, domain.ErrNotFound))
	}
	if err = fn(ctx, slot, &ReservationRepository{DB: tx}); err != nil {
		return mapTxError(err)
	}
	if err = tx.Commit(); err != nil {
		return mapTxError(err)
	}
	return nil
}
