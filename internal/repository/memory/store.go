// Package memory implements the storage ports in process memory. It backs the "memory" store mode
// and the service-level tests; all writers are serialized by one mutex.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"reservationportal/internal/domain"
)

// Store holds members, slots, reservations and login codes.
type Store struct {
	mu           sync.Mutex
	users        map[string]*domain.User
	usersByEmail map[string]string
	slots        map[string]*domain.Slot
	reservations map[pairKey]*domain.Reservation
	codes        map[string]*domain.LoginCode
}

type pairKey struct {
	userID string
	slotID string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*domain.User),
		usersByEmail: make(map[string]string),
		slots:        make(map[string]*domain.Slot),
		reservations: make(map[pairKey]*domain.Reservation),
		codes:        make(map[string]*domain.LoginCode),
	}
}

// Slots returns the store's SlotRepository.
func (s *Store) Slots() domain.SlotRepository { return &slotRepository{store: s} }

// Reservations returns the store's ReservationRepository.
func (s *Store) Reservations() domain.ReservationRepository {
	return &reservationRepository{store: s}
}

// AllowList returns the store's AllowListRepository.
func (s *Store) AllowList() domain.AllowListRepository { return &allowListRepository{store: s} }

// LoginCodes returns the store's LoginCodeRepository.
func (s *Store) LoginCodes() domain.LoginCodeRepository { return &loginCodeRepository{store: s} }

// WithSlotLock implements domain.AdmissionStore. The store mutex is held for the whole unit, so fn
// observes and mutates a consistent state; writes are undone if fn fails or ctx is done.
func (s *Store) WithSlotLock(ctx context.Context, slotID string, fn domain.AdmissionFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotID]
	if !ok {
		return domain.ErrNotFound
	}
	tx := &txReservations{store: s}
	cp := *slot
	if err := fn(ctx, &cp, tx); err != nil {
		tx.rollback()
		return err
	}
	if err := ctx.Err(); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// The *Locked helpers require s.mu to be held.

func (s *Store) createReservationLocked(r *domain.Reservation) error {
	key := pairKey{userID: r.UserID, slotID: r.SlotID}
	if _, ok := s.reservations[key]; ok {
		return domain.ErrConflict
	}
	if _, ok := s.slots[r.SlotID]; !ok {
		return domain.ErrNotFound
	}
	r.ID = uuid.NewString()
	cp := *r
	s.reservations[key] = &cp
	return nil
}

func (s *Store) deleteReservationLocked(userID, slotID string) (*domain.Reservation, error) {
	key := pairKey{userID: userID, slotID: slotID}
	r, ok := s.reservations[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.reservations, key)
	return r, nil
}

func (s *Store) getReservationLocked(userID, slotID string) (*domain.Reservation, error) {
	r, ok := s.reservations[pairKey{userID: userID, slotID: slotID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *Store) listReservationsLocked(match func(*domain.Reservation) bool) []*domain.Reservation {
	out := make([]*domain.Reservation, 0)
	for _, r := range s.reservations {
		if match(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out
}

func (s *Store) countBySlotLocked(slotID string) int {
	n := 0
	for k := range s.reservations {
		if k.slotID == slotID {
			n++
		}
	}
	return n
}

func sortNewestFirst(rs []*domain.Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].CreatedAt.After(rs[j].CreatedAt)
		}
		return rs[i].ID < rs[j].ID
	})
}

// txReservations is the reservation view handed to an admission unit. It runs with the store
// mutex already held and records how to undo each write.
type txReservations struct {
	store *Store
	undo  []func()
}

func (t *txReservations) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *txReservations) Create(_ context.Context, r *domain.Reservation) error {
	if err := t.store.createReservationLocked(r); err != nil {
		return err
	}
	key := pairKey{userID: r.UserID, slotID: r.SlotID}
	t.undo = append(t.undo, func() { delete(t.store.reservations, key) })
	return nil
}

func (t *txReservations) GetByUserAndSlot(_ context.Context, userID, slotID string) (*domain.Reservation, error) {
	return t.store.getReservationLocked(userID, slotID)
}

func (t *txReservations) Delete(_ context.Context, userID, slotID string) error {
	removed, err := t.store.deleteReservationLocked(userID, slotID)
	if err != nil {
		return err
	}
	key := pairKey{userID: userID, slotID: slotID}
	t.undo = append(t.undo, func() { t.store.reservations[key] = removed })
	return nil
}

func (t *txReservations) ListBySlot(_ context.Context, slotID string) ([]*domain.Reservation, error) {
	return t.store.listReservationsLocked(func(r *domain.Reservation) bool { return r.SlotID == slotID }), nil
}

func (t *txReservations) ListByUser(_ context.Context, userID string) ([]*domain.Reservation, error) {
	return t.store.listReservationsLocked(func(r *domain.Reservation) bool { return r.UserID == userID }), nil
}

func (t *txReservations) CountBySlot(_ context.Context, slotID string) (int, error) {
	return t.store.countBySlotLocked(slotID), nil
}

func (t *txReservations) CountAll(_ context.Context) (map[string]int, error) {
	return t.store.countAllLocked(), nil
}

func (t *txReservations) ListDetailed(_ context.Context) ([]*domain.ReservationDetail, error) {
	return t.store.listDetailedLocked(), nil
}

func (s *Store) countAllLocked() map[string]int {
	counts := make(map[string]int)
	for k := range s.reservations {
		counts[k.slotID]++
	}
	return counts
}

func (s *Store) listDetailedLocked() []*domain.ReservationDetail {
	rs := s.listReservationsLocked(func(*domain.Reservation) bool { return true })
	out := make([]*domain.ReservationDetail, 0, len(rs))
	for _, r := range rs {
		u, ok := s.users[r.UserID]
		if !ok {
			continue
		}
		sl, ok := s.slots[r.SlotID]
		if !ok {
			continue
		}
		uc, sc := *u, *sl
		out = append(out, &domain.ReservationDetail{Reservation: r, User: &uc, Slot: &sc})
	}
	return out
}
