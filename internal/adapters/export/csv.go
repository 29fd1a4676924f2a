// Package export renders reservation listings for download.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"reservationportal/internal/domain"
)

var csvHeader = []string{"Name", "Email", "Date", "Time", "Booked At"}

// CSVExporter writes reservations as CSV with every field quoted.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// Export writes the header followed by one row per reservation, in the order given.
func (e *CSVExporter) Export(w io.Writer, rows []*domain.ReservationDetail) error {
	bw := bufio.NewWriter(w)
	if err := writeRecord(bw, csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if r == nil || r.User == nil || r.Slot == nil || r.Reservation == nil {
			continue
		}
		record := []string{
			r.User.FullName(),
			r.User.Email,
			r.Slot.Date,
			r.Slot.StartTime + " - " + r.Slot.EndTime,
			r.Reservation.CreatedAt.Format(domain.DateLayout),
		}
		if err := writeRecord(bw, record); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FileName returns the download name for an export taken at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("reservations-%s.csv", t.Format(domain.DateLayout))
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}
