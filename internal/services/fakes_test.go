package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"reservationportal/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []*domain.ReservationEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e *domain.ReservationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	mu            sync.Mutex
	loginCodes    []*domain.LoginCodeEmailData
	confirmations []*domain.BookingConfirmationEmailData
	err           error
}

func (f *fakeEmailService) SendLoginCode(_ context.Context, d *domain.LoginCodeEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCodes = append(f.loginCodes, d)
	return f.err
}

func (f *fakeEmailService) SendBookingConfirmation(_ context.Context, d *domain.BookingConfirmationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, d)
	return f.err
}

// fakeCodeHasher implements domain.CodeHasher for tests.
type fakeCodeHasher struct{}

func (fakeCodeHasher) Hash(code string) (string, error) { return "hash-" + code, nil }
func (fakeCodeHasher) Compare(hash, code string) error {
	if strings.TrimPrefix(hash, "hash-") != code {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	token     string
	err       error
	lastRoles []string
}

func (f *fakeTokenIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	f.lastRoles = roles
	if f.err != nil {
		return "", f.err
	}
	if f.token != "" {
		return f.token, nil
	}
	return "token-" + userID, nil
}

// fakeThrottle implements domain.LoginThrottle for tests.
type fakeThrottle struct {
	allow bool
	err   error
	keys  []string
}

func (f *fakeThrottle) Allow(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allow, f.err
}

// flakyAdmission fails the first n units with domain.ErrRetryable, then delegates.
type flakyAdmission struct {
	next     domain.AdmissionStore
	failures int
	calls    int
}

func (f *flakyAdmission) WithSlotLock(ctx context.Context, slotID string, fn domain.AdmissionFunc) error {
	f.calls++
	if f.calls <= f.failures {
		return domain.ErrRetryable
	}
	return f.next.WithSlotLock(ctx, slotID, fn)
}
