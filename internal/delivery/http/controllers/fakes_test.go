package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"reservationportal/internal/delivery/http/helpers"
	"reservationportal/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

// decodeData re-marshals envelope.Data into dest.
func decodeData(t *testing.T, envelope helpers.APIResponse, dest any) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	getByIDUser         *domain.User
	getByIDErr          error
	requestLoginCodeErr error
	requestedEmail      string
	verifyToken         string
	verifyUser          *domain.User
	verifyErr           error
}

func (f *fakeUserService) RequestLoginCode(_ context.Context, email string) error {
	f.requestedEmail = email
	return f.requestLoginCodeErr
}

func (f *fakeUserService) VerifyLoginCode(_ context.Context, _, _ string) (string, *domain.User, error) {
	if f.verifyErr != nil {
		return "", nil, f.verifyErr
	}
	return f.verifyToken, f.verifyUser, nil
}

func (f *fakeUserService) GetByID(_ context.Context, _ string) (*domain.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDUser, nil
}

func (f *fakeUserService) IsAdmin(_ context.Context, _ string) (bool, error) {
	return false, nil
}

// fakeBookingService implements domain.BookingService.
type fakeBookingService struct {
	bookResult *domain.Reservation
	bookErr    error
	canceled   bool
	cancelErr  error
	deleted    int
	deleteErr  error
	slots      []*domain.SlotAvailability
	listErr    error
	mine       []*domain.ReservationWithSlot
	lastUserID string
	lastSlotID string
}

func (f *fakeBookingService) Book(_ context.Context, userID, slotID string) (*domain.Reservation, error) {
	f.lastUserID, f.lastSlotID = userID, slotID
	return f.bookResult, f.bookErr
}

func (f *fakeBookingService) Cancel(_ context.Context, userID, slotID string) (bool, error) {
	f.lastUserID, f.lastSlotID = userID, slotID
	return f.canceled, f.cancelErr
}

func (f *fakeBookingService) RemainingCapacity(_ context.Context, _ *domain.Slot) (int, error) {
	return 0, nil
}

func (f *fakeBookingService) DeleteSlot(_ context.Context, slotID string) (int, error) {
	f.lastSlotID = slotID
	return f.deleted, f.deleteErr
}

func (f *fakeBookingService) ListSlots(_ context.Context, userID string) ([]*domain.SlotAvailability, error) {
	f.lastUserID = userID
	return f.slots, f.listErr
}

func (f *fakeBookingService) ListMyReservations(_ context.Context, userID string) ([]*domain.ReservationWithSlot, error) {
	f.lastUserID = userID
	return f.mine, f.listErr
}

// fakeSlotAdminService implements domain.SlotAdminService.
type fakeSlotAdminService struct {
	created      *domain.Slot
	createErr    error
	lastCapacity int
	details      []*domain.ReservationDetail
	csv          string
	exportErr    error
}

func (f *fakeSlotAdminService) CreateSlot(_ context.Context, date, start, end string, capacity int) (*domain.Slot, error) {
	f.lastCapacity = capacity
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Slot{ID: "slot-1", Date: date, StartTime: start, EndTime: end, Capacity: capacity}, nil
}

func (f *fakeSlotAdminService) ListSlots(_ context.Context) ([]*domain.SlotAvailability, error) {
	return nil, nil
}

func (f *fakeSlotAdminService) ListReservations(_ context.Context) ([]*domain.ReservationDetail, error) {
	return f.details, nil
}

func (f *fakeSlotAdminService) ExportReservations(_ context.Context, w io.Writer) error {
	if f.exportErr != nil {
		return f.exportErr
	}
	_, err := io.WriteString(w, f.csv)
	return err
}
