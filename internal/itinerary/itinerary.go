// Package itinerary renders a confirmed trip as a one-page PDF.
package itinerary

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/evcraddock/wander/internal/wizard"
)

const footer = "This itinerary is a planning summary, not a booking. " +
	"Our travel experts will contact you to finalise dates, hotels and pricing."

// Render writes the itinerary PDF for s to w.
func Render(w io.Writer, s wizard.Summary, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Your Itinerary", false)
	pdf.SetCreator("wander", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "YOUR ITINERARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, s.Headline, "", "", false)
	pdf.Ln(4)

	rows := [][2]string{
		{"Destination", s.Destination},
		{"Duration", s.Duration},
		{"Travelers", s.Travelers},
		{"Rooms", s.Rooms},
		{"Trip type", s.TripType},
	}
	for _, r := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(45, 8, r[0], "B", 0, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, safe(r[1], "-"), "B", 1, "", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated "+generated.Format("2006-01-02 15:04"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, footer, "", "", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing itinerary PDF: %w", err)
	}
	return nil
}

// Filename suggests a download name such as "itinerary-abu-dhabi-6-8-days.pdf".
func Filename(s wizard.Summary) string {
	return fmt.Sprintf("itinerary-%s-%s.pdf", slug(s.Destination), slug(s.Duration))
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
