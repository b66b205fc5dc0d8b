package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/wander/internal/catalog"
	"github.com/evcraddock/wander/internal/destination"
)

func newCatalogClient(cmd *cobra.Command) (*catalog.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return catalog.NewClient(cfg.APIURL), nil
}

func newDestinationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destinations",
		Short: "List featured destinations",
		Long:  "List the featured destinations from the catalog API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDestinations(cmd)
		},
	}
	cmd.Flags().String("api-url", "", "catalog API base URL")
	return cmd
}

func runDestinations(cmd *cobra.Command) error {
	client, err := newCatalogClient(cmd)
	if err != nil {
		return err
	}

	featured, err := client.FeaturedDestinations(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching destinations: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), featured)
	}
	return printDestinationTable(cmd.OutOrStdout(), featured)
}

func newTripsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips <handle>",
		Short: "List the trips of a destination",
		Long:  "List the trips offered for a destination handle such as egypt or south-africa.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrips(cmd, args[0])
		},
	}
	cmd.Flags().String("api-url", "", "catalog API base URL")
	return cmd
}

func runTrips(cmd *cobra.Command, handle string) error {
	if !catalog.ValidHandle(handle) {
		return fmt.Errorf("invalid destination handle %q", handle)
	}

	client, err := newCatalogClient(cmd)
	if err != nil {
		return err
	}

	dest, err := client.Destination(cmd.Context(), handle)
	if err != nil {
		return fmt.Errorf("fetching trips for %s: %w", handle, err)
	}

	page := destination.NewPage(handle, dest.Trips)
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), page)
	}
	return printTripTable(cmd.OutOrStdout(), page)
}
