package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shuv1824/packlist/internal/cli"
	"github.com/shuv1824/packlist/internal/services/trip"
	"github.com/shuv1824/packlist/internal/storage"
)

func planCmd() *cobra.Command {
	var (
		t      trip.Trip
		save   bool
		export string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a packing list for a trip",
		Long: `Fetch the daily forecast for a destination and print what to pack.
Any detail not given as a flag is asked for interactively.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			prompter := cli.NewPrompter(cmd.InOrStdin(), out)

			filled, err := prompter.CollectTrip(ctx, t)
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, cli.ErrInputCancelled) {
					return fmt.Errorf("trip details incomplete")
				}
				return err
			}

			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			plan, err := a.trips.Plan(ctx, filled)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, cli.RenderPlan(plan))

			if !save && !cmd.Flags().Changed("save") {
				save, err = prompter.Confirm(ctx, "Save this plan?")
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
			}

			if save {
				if err := a.trips.Save(ctx, plan); err != nil {
					return err
				}
				fmt.Fprintln(out, cli.SuccessStyle.Render("Saved plan "+plan.ID))
			}

			if export != "" {
				if err := storage.ExportPlanFile(export, plan); err != nil {
					return err
				}
				slog.Info("plan exported", "id", plan.ID, "path", export)
				fmt.Fprintln(out, cli.SuccessStyle.Render("Exported to "+export))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&t.Name, "name", "n", "", "traveller name")
	cmd.Flags().StringVarP(&t.Destination, "destination", "d", "", "destination city")
	cmd.Flags().IntVar(&t.Duration, "days", 0, "trip length in days (1-16)")
	cmd.Flags().BoolVar(&save, "save", false, "save the plan without asking")
	cmd.Flags().StringVarP(&export, "export", "o", "", "write the plan as JSON to this file")

	return cmd
}
