package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/wander/internal/inquiry"
)

func newInquiriesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "List contact inquiries",
		Long:  "List inquiries submitted through the Get in Touch form, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInquiries(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of inquiries (0 for all)")

	return cmd
}

func runInquiries(cmd *cobra.Command, limit int) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	list, err := inquiry.NewRepository(database).List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), list)
	}
	return printInquiryTable(cmd.OutOrStdout(), list)
}

func newPlansCmd() *cobra.Command {
	var (
		limit   int
		session string
	)

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List confirmed trip plans",
		Long:  "List itineraries that reached the confirmation step, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlans(cmd, limit, session)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of plans (0 for all)")
	cmd.Flags().StringVar(&session, "session", "", "only plans from this wizard session")

	return cmd
}

func runPlans(cmd *cobra.Command, limit int, session string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	repo := inquiry.NewPlanRepository(database)
	var plans []*inquiry.Plan
	if session != "" {
		plans, err = repo.ListBySession(cmd.Context(), session)
	} else {
		plans, err = repo.List(cmd.Context(), limit)
	}
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), plans)
	}
	return printPlanTable(cmd.OutOrStdout(), plans)
}
