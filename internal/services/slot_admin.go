package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"reservationportal/internal/domain"
)

type slotAdminService struct {
	slotRepo        domain.SlotRepository
	reservationRepo domain.ReservationRepository
	exporter        domain.ReservationExporter
	contextTimeout  time.Duration
}

func NewSlotAdminService(slotRepo domain.SlotRepository, reservationRepo domain.ReservationRepository, exporter domain.ReservationExporter, timeout time.Duration) domain.SlotAdminService {
	return &slotAdminService{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		exporter:        exporter,
		contextTimeout:  timeout,
	}
}

// CreateSlot validates and stores a slot. Invalid parameters are rejected before the store is touched.
func (s *slotAdminService) CreateSlot(ctx context.Context, date, start, end string, capacity int) (*domain.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slot, err := domain.NewSlot(date, start, end, capacity, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}
	return slot, nil
}

func (s *slotAdminService) ListSlots(ctx context.Context) ([]*domain.SlotAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return availability(ctx, s.slotRepo, s.reservationRepo, nil)
}

func (s *slotAdminService) ListReservations(ctx context.Context) ([]*domain.ReservationDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rows, err := s.reservationRepo.ListDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return rows, nil
}

// ExportReservations writes every reservation, newest first, through the configured exporter.
func (s *slotAdminService) ExportReservations(ctx context.Context, w io.Writer) error {
	rows, err := s.ListReservations(ctx)
	if err != nil {
		return err
	}
	return s.exporter.Export(w, rows)
}
