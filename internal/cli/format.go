package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/evcraddock/wander/internal/catalog"
	"github.com/evcraddock/wander/internal/destination"
	"github.com/evcraddock/wander/internal/inquiry"
	"github.com/evcraddock/wander/internal/wizard"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSummary prints a confirmed itinerary in text format.
func printSummary(w io.Writer, s wizard.Summary) {
	fmt.Fprintln(w, s.Headline)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trip Summary")
	fmt.Fprintf(w, "  Destination:  %s\n", s.Destination)
	fmt.Fprintf(w, "  Duration:     %s\n", s.Duration)
	fmt.Fprintf(w, "  Travelers:    %s\n", s.Travelers)
	fmt.Fprintf(w, "  Rooms:        %s\n", s.Rooms)
	fmt.Fprintf(w, "  Trip Type:    %s\n", s.TripType)
}

// table writes rows under a header and a dashed separator.
func table(out io.Writer, header []string, rows [][]string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	sep := make([]string, len(header))
	for i, h := range header {
		sep[i] = strings.Repeat("-", len(h))
	}

	lines := append([][]string{header, sep}, rows...)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, strings.Join(l, "\t")); err != nil {
			return fmt.Errorf("writing table: %w", err)
		}
	}
	return w.Flush()
}

func printDestinationTable(w io.Writer, featured []catalog.Featured) error {
	if len(featured) == 0 {
		fmt.Fprintln(w, "No destinations available at the moment.")
		return nil
	}
	rows := make([][]string, 0, len(featured))
	for _, f := range featured {
		rows = append(rows, []string{f.Handle, f.Name, truncate(f.Description, 60)})
	}
	return table(w, []string{"HANDLE", "NAME", "DESCRIPTION"}, rows)
}

func printTripTable(w io.Writer, p destination.Page) error {
	fmt.Fprintf(w, "%s (best time to visit: %s)\n\n", p.Name, p.BestTime)
	if len(p.Trips) == 0 {
		fmt.Fprintln(w, "No trips found.")
		return nil
	}
	rows := make([][]string, 0, len(p.Trips))
	for _, t := range p.Trips {
		rows = append(rows, []string{t.Name, t.Price, t.Duration, t.Category, strings.Join(slices.Concat(t.Highlights, t.Hidden), ", ")})
	}
	return table(w, []string{"TRIP", "PRICE", "DURATION", "CATEGORY", "HIGHLIGHTS"}, rows)
}

func printInquiryTable(w io.Writer, list []*inquiry.Inquiry) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "No inquiries found.")
		return nil
	}
	rows := make([][]string, 0, len(list))
	for _, inq := range list {
		rows = append(rows, []string{
			humanize.Time(inq.CreatedAt),
			inq.Name,
			inq.ContactNumber,
			inq.Email,
			inq.Budget,
			orDash(truncate(inq.Message, 40)),
		})
	}
	return table(w, []string{"RECEIVED", "NAME", "PHONE", "EMAIL", "BUDGET", "MESSAGE"}, rows)
}

func printPlanTable(w io.Writer, plans []*inquiry.Plan) error {
	if len(plans) == 0 {
		fmt.Fprintln(w, "No plans found.")
		return nil
	}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		it := p.Itinerary()
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			humanize.Time(p.CreatedAt),
			it.Destination,
			it.DurationLabel,
			it.TravellerType.TripLabel(),
			wizard.FormatTravelers(it.RoomConfig),
			fmt.Sprintf("%d", it.RoomConfig.Rooms),
		})
	}
	return table(w, []string{"ID", "PLANNED", "DESTINATION", "DURATION", "TRIP TYPE", "TRAVELERS", "ROOMS"}, rows)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
