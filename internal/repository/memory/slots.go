package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"reservationportal/internal/domain"
)

type slotRepository struct {
	store *Store
}

func (r *slotRepository) Create(_ context.Context, slot *domain.Slot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slot.ID = uuid.NewString()
	cp := *slot
	r.store.slots[slot.ID] = &cp
	return nil
}

func (r *slotRepository) GetByID(_ context.Context, id string) (*domain.Slot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *slotRepository) List(_ context.Context) ([]*domain.Slot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slots := make([]*domain.Slot, 0, len(r.store.slots))
	for _, s := range r.store.slots {
		cp := *s
		slots = append(slots, &cp)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].ID < slots[j].ID
	})
	return slots, nil
}

func (r *slotRepository) Delete(_ context.Context, id string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.slots[id]; !ok {
		return 0, domain.ErrNotFound
	}
	canceled := 0
	for k := range r.store.reservations {
		if k.slotID == id {
			delete(r.store.reservations, k)
			canceled++
		}
	}
	delete(r.store.slots, id)
	return canceled, nil
}
