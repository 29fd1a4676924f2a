package services

import (
	"context"
	"fmt"
	"log"

	"reservationportal/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendLoginCode sends the passwordless login code email using the "login_code" template.
func (s *emailService) SendLoginCode(ctx context.Context, data *domain.LoginCodeEmailData) error {
	if data == nil {
		return fmt.Errorf("login code email data is nil")
	}
	if err := s.send("login_code", data.Email, data); err != nil {
		return err
	}
	log.Printf("[EMAIL] Login code sent to %s", data.Email)
	return nil
}

// SendBookingConfirmation tells a member which slot they now hold, using the "booking_confirmation" template.
func (s *emailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("booking confirmation data is nil")
	}
	if err := s.send("booking_confirmation", data.Email, data); err != nil {
		return err
	}
	log.Printf("[EMAIL] Booking confirmation sent to %s for %s %s", data.Email, data.Date, data.TimeStart)
	return nil
}

func (s *emailService) send(template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	return nil
}
