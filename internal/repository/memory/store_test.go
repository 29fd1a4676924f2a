package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservationportal/internal/domain"
)

func seedSlot(t *testing.T, s *Store, date, start string, capacity int) *domain.Slot {
	t.Helper()
	slot, err := domain.NewSlot(date, start, "23:59", capacity, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.Slots().Create(context.Background(), slot))
	return slot
}

func TestSlotRepository_ListOrdered(t *testing.T) {
	s := NewStore()
	seedSlot(t, s, "2025-03-11", "09:00", 1)
	seedSlot(t, s, "2025-03-10", "14:00", 1)
	seedSlot(t, s, "2025-03-10", "09:00", 1)

	slots, err := s.Slots().List(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "2025-03-10", slots[0].Date)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "14:00", slots[1].StartTime)
	assert.Equal(t, "2025-03-11", slots[2].Date)
}

func TestReservationRepository_PairUnique(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	slot := seedSlot(t, s, "2025-03-10", "09:00", 2)
	repo := s.Reservations()

	require.NoError(t, repo.Create(ctx, domain.NewReservation("u1", slot.ID, time.Now())))
	err := repo.Create(ctx, domain.NewReservation("u1", slot.ID, time.Now()))
	require.ErrorIs(t, err, domain.ErrConflict)

	err = repo.Create(ctx, domain.NewReservation("u1", "missing", time.Now()))
	require.ErrorIs(t, err, domain.ErrNotFound)

	n, err := repo.CountBySlot(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.Delete(ctx, "u1", slot.ID))
	require.ErrorIs(t, repo.Delete(ctx, "u1", slot.ID), domain.ErrNotFound)
}

func TestSlotRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	slot := seedSlot(t, s, "2025-03-10", "09:00", 3)
	other := seedSlot(t, s, "2025-03-10", "10:00", 3)
	for _, u := range []string{"u1", "u2"} {
		require.NoError(t, s.Reservations().Create(ctx, domain.NewReservation(u, slot.ID, time.Now())))
	}
	require.NoError(t, s.Reservations().Create(ctx, domain.NewReservation("u1", other.ID, time.Now())))

	canceled, err := s.Slots().Delete(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, canceled)

	byUser, err := s.Reservations().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, other.ID, byUser[0].SlotID)

	_, err = s.Slots().Delete(ctx, slot.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_WithSlotLockRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	slot := seedSlot(t, s, "2025-03-10", "09:00", 3)
	require.NoError(t, s.Reservations().Create(ctx, domain.NewReservation("keep", slot.ID, time.Now())))

	boom := errors.New("boom")
	err := s.WithSlotLock(ctx, slot.ID, func(ctx context.Context, locked *domain.Slot, r domain.ReservationRepository) error {
		require.Equal(t, slot.ID, locked.ID)
		require.NoError(t, r.Create(ctx, domain.NewReservation("u1", locked.ID, time.Now())))
		require.NoError(t, r.Delete(ctx, "keep", locked.ID))
		return boom
	})
	require.ErrorIs(t, err, boom)

	rs, err := s.Reservations().ListBySlot(ctx, slot.ID)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "keep", rs[0].UserID)
}

func TestStore_WithSlotLockMissingSlot(t *testing.T) {
	s := NewStore()
	err := s.WithSlotLock(context.Background(), "nope", func(context.Context, *domain.Slot, domain.ReservationRepository) error {
		t.Fatal("unit must not run")
		return nil
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_WithSlotLockCanceledContext(t *testing.T) {
	s := NewStore()
	slot := seedSlot(t, s, "2025-03-10", "09:00", 3)
	ctx, cancel := context.WithCancel(context.Background())

	err := s.WithSlotLock(ctx, slot.ID, func(ctx context.Context, locked *domain.Slot, r domain.ReservationRepository) error {
		require.NoError(t, r.Create(ctx, domain.NewReservation("u1", locked.ID, time.Now())))
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	n, err := s.Reservations().CountBySlot(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReservationRepository_ListDetailed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u, err := domain.NewUser("ada@example.com", "Ada", "Lovelace", false, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.AllowList().Create(ctx, u))
	slot := seedSlot(t, s, "2025-03-10", "09:00", 3)

	first := domain.NewReservation(u.ID, slot.ID, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.Reservations().Create(ctx, first))
	other := seedSlot(t, s, "2025-03-11", "09:00", 3)
	second := domain.NewReservation(u.ID, other.ID, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.Reservations().Create(ctx, second))

	rows, err := s.Reservations().ListDetailed(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, other.ID, rows[0].Slot.ID)
	assert.Equal(t, "Ada Lovelace", rows[0].User.FullName())
}

func TestAllowListRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.AllowList()
	u, err := domain.NewUser("ada@example.com", "Ada", "Lovelace", false, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	dup, _ := domain.NewUser("ada@example.com", "A", "L", false, time.Now())
	require.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicateEmail)

	got, err := repo.SetAdmin(ctx, "ada@example.com", true)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, byID.IsAdmin)

	_, err = repo.GetByEmail(ctx, "eve@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLoginCodeRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.LoginCodes()
	now := time.Now()

	older := &domain.LoginCode{Email: "ada@example.com", CodeHash: "a", ExpiresAt: now.Add(5 * time.Minute)}
	newer := &domain.LoginCode{Email: "ada@example.com", CodeHash: "b", ExpiresAt: now.Add(10 * time.Minute)}
	expired := &domain.LoginCode{Email: "ada@example.com", CodeHash: "c", ExpiresAt: now.Add(-time.Minute)}
	for _, c := range []*domain.LoginCode{older, newer, expired} {
		require.NoError(t, repo.Create(ctx, c))
	}

	active, err := repo.ListActive(ctx, "ada@example.com", now)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "b", active[0].CodeHash)

	require.NoError(t, repo.Delete(ctx, newer.ID))
	require.ErrorIs(t, repo.Delete(ctx, newer.ID), domain.ErrNotFound)
}
