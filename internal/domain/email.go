package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// LoginCodeEmailData holds data for the passwordless login code email.
type LoginCodeEmailData struct {
	Email            string
	FirstName        string
	Code             string
	ExpiresInMinutes int
}

// BookingConfirmationEmailData holds data for the booking confirmation email.
type BookingConfirmationEmailData struct {
	Email     string
	FirstName string
	Date      string
	TimeStart string
	TimeEnd   string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendLoginCode(ctx context.Context, data *LoginCodeEmailData) error
	SendBookingConfirmation(ctx context.Context, data *BookingConfirmationEmailData) error
}
