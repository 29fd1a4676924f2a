package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservationportal/internal/domain"
)

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, html, text})
	return nil
}

type fakeRenderer struct {
	names []string
	err   error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	f.names = append(f.names, name)
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject-" + name, "<p>" + name + "</p>", name, nil
}

func TestEmailService(t *testing.T) {
	ctx := context.Background()

	t.Run("login code", func(t *testing.T) {
		mailer, renderer := &fakeMailer{}, &fakeRenderer{}
		svc := NewEmailService(mailer, renderer)
		require.NoError(t, svc.SendLoginCode(ctx, &domain.LoginCodeEmailData{Email: "ada@example.com", Code: "123456"}))
		assert.Equal(t, []string{"login_code"}, renderer.names)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "ada@example.com", mailer.sent[0].to)
		assert.Equal(t, "subject-login_code", mailer.sent[0].subject)
	})

	t.Run("booking confirmation", func(t *testing.T) {
		mailer, renderer := &fakeMailer{}, &fakeRenderer{}
		svc := NewEmailService(mailer, renderer)
		require.NoError(t, svc.SendBookingConfirmation(ctx, &domain.BookingConfirmationEmailData{Email: "ada@example.com", Date: "2025-03-01"}))
		assert.Equal(t, []string{"booking_confirmation"}, renderer.names)
		require.Len(t, mailer.sent, 1)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{})
		require.Error(t, svc.SendLoginCode(ctx, nil))
		require.Error(t, svc.SendBookingConfirmation(ctx, nil))
	})

	t.Run("render and send failures", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("bad template")})
		require.Error(t, svc.SendLoginCode(ctx, &domain.LoginCodeEmailData{Email: "a@b.co"}))

		svc = NewEmailService(&fakeMailer{err: errors.New("ses down")}, &fakeRenderer{})
		require.Error(t, svc.SendBookingConfirmation(ctx, &domain.BookingConfirmationEmailData{Email: "a@b.co"}))
	})
}
