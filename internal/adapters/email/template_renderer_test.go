package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservationportal/internal/domain"
)

func TestTemplateRenderer_Render(t *testing.T) {
	r := NewTemplateRenderer()

	t.Run("login code", func(t *testing.T) {
		subject, html, text, err := r.Render("login_code", &domain.LoginCodeEmailData{
			Email: "ada@example.com", FirstName: "Ada", Code: "123456", ExpiresInMinutes: 15,
		})
		require.NoError(t, err)
		assert.Equal(t, "Your interview portal login code", subject)
		assert.Contains(t, html, "123456")
		assert.Contains(t, text, "Hello Ada,")
		assert.Contains(t, text, "15 minutes")
	})

	t.Run("booking confirmation", func(t *testing.T) {
		subject, html, text, err := r.Render("booking_confirmation", &domain.BookingConfirmationEmailData{
			Email: "ada@example.com", Date: "2025-03-01", TimeStart: "10:00", TimeEnd: "10:30",
		})
		require.NoError(t, err)
		assert.Equal(t, "Interview slot confirmed: 2025-03-01 10:00", subject)
		assert.Contains(t, html, "10:00 - 10:30")
		assert.Contains(t, text, "Hello,")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, _, err := r.Render("welcome", nil)
		require.Error(t, err)
	})
}
