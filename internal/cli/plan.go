package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/evcraddock/wander/internal/inquiry"
	"github.com/evcraddock/wander/internal/itinerary"
	"github.com/evcraddock/wander/internal/wizard"
)

type planOptions struct {
	destination string
	duration    string
	traveller   string
	adults      int
	children    int
	rooms       int
	save        bool
	pdf         string
}

func newPlanCmd() *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a trip",
		Long:  planLong(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts)
		},
	}

	d := wizard.DefaultRoomConfig()
	cmd.Flags().StringVar(&opts.destination, "destination", "", "destination name, e.g. Bali (required)")
	cmd.Flags().StringVar(&opts.duration, "duration", "", "duration range, e.g. \"6-8 Days\" (required)")
	cmd.Flags().StringVar(&opts.traveller, "traveller", "", "couple, family, friends or solo (required)")
	cmd.Flags().IntVar(&opts.adults, "adults", d.Adults, "number of adults")
	cmd.Flags().IntVar(&opts.children, "children", d.Children, "number of children")
	cmd.Flags().IntVar(&opts.rooms, "rooms", d.Rooms, "number of rooms")
	cmd.Flags().BoolVar(&opts.save, "save", false, "record the plan in the database")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "also write the itinerary PDF to this path")

	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("traveller")

	return cmd
}

func planLong() string {
	var names, durations, travellers []string
	for _, d := range wizard.Catalog() {
		names = append(names, d.Name)
	}
	for _, d := range wizard.Durations() {
		durations = append(durations, d.Range)
	}
	for _, t := range wizard.TravellerOptions() {
		travellers = append(travellers, string(t.ID))
	}
	return "Run the trip wizard from flags and print the confirmed itinerary.\n\n" +
		"Destinations:  " + strings.Join(names, ", ") + "\n" +
		"Durations:     " + strings.Join(durations, ", ") + "\n" +
		"Travellers:    " + strings.Join(travellers, ", ")
}

// buildPlan drives a fresh wizard through every step.
func buildPlan(opts planOptions) (*wizard.Controller, error) {
	c := wizard.New()

	if err := c.SelectDestination(opts.destination); err != nil {
		return nil, err
	}
	if err := c.SelectDuration(opts.duration); err != nil {
		return nil, err
	}
	t, err := wizard.ParseTravellerType(opts.traveller)
	if err != nil {
		return nil, err
	}
	if err := c.SelectTravellerType(t); err != nil {
		return nil, err
	}
	cfg := wizard.RoomConfig{Adults: opts.adults, Children: opts.children, Rooms: opts.rooms}
	if err := c.ConfirmRooms(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

func runPlan(cmd *cobra.Command, opts planOptions) error {
	c, err := buildPlan(opts)
	if err != nil {
		return err
	}

	summary, err := c.Summary()
	if err != nil {
		return err
	}

	if opts.save {
		if err := savePlan(cmd, c.Itinerary()); err != nil {
			return err
		}
	}

	if opts.pdf != "" {
		if err := writePDF(opts.pdf, summary); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, summary)
	}
	printSummary(out, summary)
	if opts.pdf != "" {
		fmt.Fprintf(out, "\nItinerary written to %s\n", opts.pdf)
	}
	return nil
}

func savePlan(cmd *cobra.Command, it wizard.Itinerary) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	if _, err := inquiry.NewPlanRepository(database).Record(cmd.Context(), "cli-"+uuid.NewString(), it); err != nil {
		return err
	}
	return nil
}

func writePDF(path string, s wizard.Summary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return itinerary.Render(f, s, time.Now())
}
