package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"reservationportal/internal/domain"
)

const retryBackoff = 20 * time.Millisecond

type bookingService struct {
	slotRepo        domain.SlotRepository
	reservationRepo domain.ReservationRepository
	admission       domain.AdmissionStore
	allowList       domain.AllowListRepository
	emailService    domain.EmailService
	publisher       domain.EventPublisher
	logger          *slog.Logger
	contextTimeout  time.Duration
	maxRetries      int
}

// NewBookingService returns the admission engine. emailService and publisher may be nil.
func NewBookingService(
	slotRepo domain.SlotRepository,
	reservationRepo domain.ReservationRepository,
	admission domain.AdmissionStore,
	allowList domain.AllowListRepository,
	emailService domain.EmailService,
	publisher domain.EventPublisher,
	logger *slog.Logger,
	timeout time.Duration,
	maxRetries int,
) domain.BookingService {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &bookingService{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		admission:       admission,
		allowList:       allowList,
		emailService:    emailService,
		publisher:       publisher,
		logger:          logger,
		contextTimeout:  timeout,
		maxRetries:      maxRetries,
	}
}

// Book admits the member to the slot. The count, the duplicate check and the insert all run in one
// admission unit, so concurrent bookers of the same slot are decided one at a time.
func (s *bookingService) Book(ctx context.Context, userID, slotID string) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" || slotID == "" {
		return nil, fmt.Errorf("%w: user and slot are required", domain.ErrInvalidInput)
	}

	var (
		booked     *domain.Reservation
		bookedSlot *domain.Slot
	)
	err := s.withRetry(ctx, "book", func() error {
		return s.admission.WithSlotLock(ctx, slotID, func(ctx context.Context, slot *domain.Slot, reservations domain.ReservationRepository) error {
			count, err := reservations.CountBySlot(ctx, slot.ID)
			if err != nil {
				return err
			}
			if _, err := reservations.GetByUserAndSlot(ctx, userID, slot.ID); err == nil {
				return domain.ErrAlreadyBooked
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if count >= slot.Capacity {
				return domain.ErrSlotFull
			}
			r := domain.NewReservation(userID, slot.ID, time.Now())
			if err := reservations.Create(ctx, r); err != nil {
				if errors.Is(err, domain.ErrConflict) {
					return domain.ErrAlreadyBooked
				}
				return err
			}
			booked, bookedSlot = r, slot
			return nil
		})
	})
	if err != nil {
		s.logger.DebugContext(ctx, "booking rejected", "user_id", userID, "slot_id", slotID, "err", err)
		return nil, err
	}
	s.logger.DebugContext(ctx, "booking admitted", "user_id", userID, "slot_id", slotID, "reservation_id", booked.ID)

	s.sendConfirmation(ctx, userID, bookedSlot)
	s.publish(ctx, &domain.ReservationEvent{
		Type:          domain.EventReservationCreated,
		ReservationID: booked.ID,
		UserID:        userID,
		SlotID:        bookedSlot.ID,
		SlotDate:      bookedSlot.Date,
		TimeStart:     bookedSlot.StartTime,
		TimeEnd:       bookedSlot.EndTime,
		OccurredAt:    booked.CreatedAt,
	})
	return booked, nil
}

// Cancel removes the member's reservation. A reservation that does not exist, including one whose
// slot is gone, is reported as canceled=false with no error.
func (s *bookingService) Cancel(ctx context.Context, userID, slotID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" || slotID == "" {
		return false, fmt.Errorf("%w: user and slot are required", domain.ErrInvalidInput)
	}

	var (
		canceled bool
		slot     *domain.Slot
	)
	err := s.withRetry(ctx, "cancel", func() error {
		canceled = false
		return s.admission.WithSlotLock(ctx, slotID, func(ctx context.Context, locked *domain.Slot, reservations domain.ReservationRepository) error {
			err := reservations.Delete(ctx, userID, locked.ID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			canceled, slot = true, locked
			return nil
		})
	})
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if canceled {
		s.publish(ctx, &domain.ReservationEvent{
			Type:       domain.EventReservationCanceled,
			UserID:     userID,
			SlotID:     slot.ID,
			SlotDate:   slot.Date,
			TimeStart:  slot.StartTime,
			TimeEnd:    slot.EndTime,
			OccurredAt: time.Now(),
		})
	}
	return canceled, nil
}

// RemainingCapacity reads the current count outside any admission unit; the figure is for display.
func (s *bookingService) RemainingCapacity(ctx context.Context, slot *domain.Slot) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if slot == nil {
		return 0, fmt.Errorf("%w: slot is required", domain.ErrInvalidInput)
	}
	count, err := s.reservationRepo.CountBySlot(ctx, slot.ID)
	if err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return slot.Remaining(count), nil
}

func (s *bookingService) DeleteSlot(ctx context.Context, slotID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if slotID == "" {
		return 0, fmt.Errorf("%w: slot is required", domain.ErrInvalidInput)
	}
	canceled, err := s.slotRepo.Delete(ctx, slotID)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "slot deleted", "slot_id", slotID, "canceled", canceled)
	s.publish(ctx, &domain.ReservationEvent{
		Type:          domain.EventSlotDeleted,
		SlotID:        slotID,
		CanceledCount: canceled,
		OccurredAt:    time.Now(),
	})
	return canceled, nil
}

func (s *bookingService) ListSlots(ctx context.Context, userID string) ([]*domain.SlotAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	mine := make(map[string]bool)
	if userID != "" {
		rs, err := s.reservationRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list reservations: %w", err)
		}
		for _, r := range rs {
			mine[r.SlotID] = true
		}
	}
	return availability(ctx, s.slotRepo, s.reservationRepo, mine)
}

func (s *bookingService) ListMyReservations(ctx context.Context, userID string) ([]*domain.ReservationWithSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rs, err := s.reservationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	byID := make(map[string]*domain.Slot, len(slots))
	for _, sl := range slots {
		byID[sl.ID] = sl
	}
	out := make([]*domain.ReservationWithSlot, 0, len(rs))
	for _, r := range rs {
		sl, ok := byID[r.SlotID]
		if !ok {
			continue
		}
		out = append(out, &domain.ReservationWithSlot{Reservation: r, Slot: sl})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Slot, out[j].Slot
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.StartTime < b.StartTime
	})
	return out, nil
}

// withRetry reruns op while it fails with domain.ErrRetryable, up to maxRetries extra attempts.
func (s *bookingService) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if !errors.Is(err, domain.ErrRetryable) || attempt >= s.maxRetries {
			return err
		}
		s.logger.DebugContext(ctx, "retrying admission unit", "op", op, "attempt", attempt+1, "err", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt+1)):
		}
	}
}

func (s *bookingService) sendConfirmation(ctx context.Context, userID string, slot *domain.Slot) {
	if s.emailService == nil || s.allowList == nil {
		return
	}
	user, err := s.allowList.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "booking confirmation skipped", "user_id", userID, "err", err)
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:     user.Email,
		FirstName: user.FirstName,
		Date:      slot.Date,
		TimeStart: slot.StartTime,
		TimeEnd:   slot.EndTime,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation failed", "user_id", userID, "err", err)
	}
}

func (s *bookingService) publish(ctx context.Context, event *domain.ReservationEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event publish failed", "type", event.Type, "slot_id", event.SlotID, "err", err)
	}
}

// availability joins slots with reservation counts. mine marks the slots the viewer holds.
func availability(ctx context.Context, slotRepo domain.SlotRepository, reservationRepo domain.ReservationRepository, mine map[string]bool) ([]*domain.SlotAvailability, error) {
	slots, err := slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	counts, err := reservationRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}
	out := make([]*domain.SlotAvailability, 0, len(slots))
	for _, sl := range slots {
		booked := counts[sl.ID]
		remaining := sl.Remaining(booked)
		out = append(out, &domain.SlotAvailability{
			Slot:       sl,
			Booked:     booked,
			Remaining:  remaining,
			IsFull:     remaining == 0,
			BookedByMe: mine[sl.ID],
		})
	}
	return out, nil
}
