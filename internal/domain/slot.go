package domain

import (
	"context"
	"fmt"
	"time"
)

// Layouts for slot dates and times as exchanged over the API and stored as text.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DefaultSlotCapacity is used when an admin creates a slot without a capacity.
const DefaultSlotCapacity = 5

// Slot is a bookable interview time window.
// swagger:model Slot
type Slot struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"time_start"`
	EndTime   string    `json:"time_end"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSlot validates the slot parameters and returns a new Slot. Times are normalized to HH:MM.
// ID is typically set by the repository on create.
func NewSlot(date, start, end string, capacity int, createdAt time.Time) (*Slot, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be a calendar date (YYYY-MM-DD)", ErrInvalidInput)
	}
	st, err := parseClock(start)
	if err != nil {
		return nil, fmt.Errorf("%w: time_start must be HH:MM", ErrInvalidInput)
	}
	et, err := parseClock(end)
	if err != nil {
		return nil, fmt.Errorf("%w: time_end must be HH:MM", ErrInvalidInput)
	}
	if !st.Before(et) {
		return nil, fmt.Errorf("%w: time_start must be before time_end", ErrInvalidInput)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}
	return &Slot{
		Date:      d.Format(DateLayout),
		StartTime: st.Format(TimeLayout),
		EndTime:   et.Format(TimeLayout),
		Capacity:  capacity,
		CreatedAt: createdAt,
	}, nil
}

func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", s)
}

// Remaining returns the seats left given the current reservation count. It never goes below zero,
// even if count exceeds capacity because a write bypassed the booking service.
func (s *Slot) Remaining(count int) int {
	if r := s.Capacity - count; r > 0 {
		return r
	}
	return 0
}

// SlotAvailability is a slot with its reservation count as seen by one member.
// swagger:model SlotAvailability
type SlotAvailability struct {
	Slot       *Slot `json:"slot"`
	Booked     int   `json:"booked"`
	Remaining  int   `json:"remaining"`
	IsFull     bool  `json:"is_full"`
	BookedByMe bool  `json:"booked_by_me"`
}

// SlotRepository stores slot definitions.
type SlotRepository interface {
	Create(ctx context.Context, slot *Slot) error
	GetByID(ctx context.Context, id string) (*Slot, error)
	// List returns all slots ordered by date, then start time.
	List(ctx context.Context) ([]*Slot, error)
	// Delete removes the slot and all of its reservations in one atomic unit and returns how many
	// reservations were removed. It returns ErrNotFound when the slot does not exist.
	Delete(ctx context.Context, id string) (canceled int, err error)
}
