package domain

import (
	"context"
	"io"
	"time"
)

// Reservation binds one member to one slot.
// swagger:model Reservation
type Reservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SlotID    string    `json:"slot_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReservation returns a new Reservation. ID is typically set by the repository on create.
func NewReservation(userID, slotID string, createdAt time.Time) *Reservation {
	return &Reservation{
		UserID:    userID,
		SlotID:    slotID,
		CreatedAt: createdAt,
	}
}

// ReservationWithSlot bundles a reservation with its slot.
type ReservationWithSlot struct {
	Reservation *Reservation `json:"reservation"`
	Slot        *Slot        `json:"slot"`
}

// ReservationDetail bundles a reservation with its member and slot, as listed to admins.
type ReservationDetail struct {
	Reservation *Reservation `json:"reservation"`
	User        *User        `json:"user"`
	Slot        *Slot        `json:"slot"`
}

// ReservationRepository stores reservations.
type ReservationRepository interface {
	// Create inserts the reservation. It returns ErrConflict when the (user, slot) pair exists.
	Create(ctx context.Context, reservation *Reservation) error
	GetByUserAndSlot(ctx context.Context, userID, slotID string) (*Reservation, error)
	// Delete removes the pair. It returns ErrNotFound when none exists.
	Delete(ctx context.Context, userID, slotID string) error
	ListBySlot(ctx context.Context, slotID string) ([]*Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]*Reservation, error)
	CountBySlot(ctx context.Context, slotID string) (int, error)
	// CountAll returns reservation counts keyed by slot ID. Slots with none are absent.
	CountAll(ctx context.Context) (map[string]int, error)
	// ListDetailed returns all reservations joined with member and slot, newest first.
	ListDetailed(ctx context.Context) ([]*ReservationDetail, error)
}

// AdmissionFunc runs inside an admission unit with the slot locked against other writers. The
// reservations repository it receives is bound to the same unit.
type AdmissionFunc func(ctx context.Context, slot *Slot, reservations ReservationRepository) error

// AdmissionStore serializes writers per slot. WithSlotLock loads and locks the slot, runs fn and
// commits only if fn returns nil; otherwise nothing fn wrote is kept. It returns ErrNotFound when
// the slot does not exist and ErrRetryable when the unit lost a serialization conflict.
type AdmissionStore interface {
	WithSlotLock(ctx context.Context, slotID string, fn AdmissionFunc) error
}

// BookingService is the admission engine: it enforces slot capacity and one reservation per
// member per slot.
type BookingService interface {
	Book(ctx context.Context, userID, slotID string) (*Reservation, error)
	// Cancel removes the member's reservation. canceled is false when there was nothing to cancel.
	Cancel(ctx context.Context, userID, slotID string) (canceled bool, err error)
	RemainingCapacity(ctx context.Context, slot *Slot) (int, error)
	DeleteSlot(ctx context.Context, slotID string) (canceled int, err error)
	ListSlots(ctx context.Context, userID string) ([]*SlotAvailability, error)
	ListMyReservations(ctx context.Context, userID string) ([]*ReservationWithSlot, error)
}

// SlotAdminService holds the administrator operations besides slot deletion.
type SlotAdminService interface {
	CreateSlot(ctx context.Context, date, start, end string, capacity int) (*Slot, error)
	ListSlots(ctx context.Context) ([]*SlotAvailability, error)
	ListReservations(ctx context.Context) ([]*ReservationDetail, error)
	ExportReservations(ctx context.Context, w io.Writer) error
}

// ReservationExporter renders reservation details as a downloadable table.
type ReservationExporter interface {
	Export(w io.Writer, rows []*ReservationDetail) error
}
