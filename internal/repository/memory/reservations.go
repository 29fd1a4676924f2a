package memory

import (
	"context"

	"reservationportal/internal/domain"
)

// reservationRepository is the unlocked-caller view: every method takes the store mutex.
type reservationRepository struct {
	store *Store
}

func (r *reservationRepository) Create(_ context.Context, res *domain.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.createReservationLocked(res)
}

func (r *reservationRepository) GetByUserAndSlot(_ context.Context, userID, slotID string) (*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.getReservationLocked(userID, slotID)
}

func (r *reservationRepository) Delete(_ context.Context, userID, slotID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, err := r.store.deleteReservationLocked(userID, slotID)
	return err
}

func (r *reservationRepository) ListBySlot(_ context.Context, slotID string) ([]*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listReservationsLocked(func(res *domain.Reservation) bool { return res.SlotID == slotID }), nil
}

func (r *reservationRepository) ListByUser(_ context.Context, userID string) ([]*domain.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listReservationsLocked(func(res *domain.Reservation) bool { return res.UserID == userID }), nil
}

func (r *reservationRepository) CountBySlot(_ context.Context, slotID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.countBySlotLocked(slotID), nil
}

func (r *reservationRepository) CountAll(_ context.Context) (map[string]int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.countAllLocked(), nil
}

func (r *reservationRepository) ListDetailed(_ context.Context) ([]*domain.ReservationDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.listDetailedLocked(), nil
}
