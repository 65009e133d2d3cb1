package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tripplanner/config"
	"tripplanner/models"
	"tripplanner/services/planner"
	"tripplanner/utils"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Research and plan one stay, writing the itinerary to a file",
	Example: `  tripplanner plan --destination Mumbai --people 2 --budget 1500 \
    --checkin 2026-11-01 --checkout 2026-11-05`,
	RunE: runPlan,
}

func init() {
	today := time.Now()
	f := planCmd.Flags()
	f.String("destination", "", "city to stay in")
	f.Int("people", 1, "number of people")
	f.Int("budget", 1000, "budget in USD")
	f.String("checkin", today.Format(planner.DateLayout), "check-in date (YYYY-MM-DD)")
	f.String("checkout", today.AddDate(0, 0, 1).Format(planner.DateLayout), "check-out date (YYYY-MM-DD)")
	f.String("out", "", "output file (default travel_itinerary_<destination>.txt)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	var req models.TripRequest
	req.Destination, _ = f.GetString("destination")
	req.People, _ = f.GetInt("people")
	req.Budget, _ = f.GetInt("budget")
	req.CheckIn, _ = f.GetString("checkin")
	req.CheckOut, _ = f.GetString("checkout")
	out, _ := f.GetString("out")

	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := connectBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.close(logger)

	svc, err := newPlanner(cfg, b, logger)
	if err != nil {
		return err
	}

	it, err := svc.Plan(ctx, "", req)
	if err != nil {
		var ve *planner.ValidationError
		switch {
		case errors.As(err, &ve):
			return errors.New(ve.Message)
		case errors.Is(err, planner.ErrMissingCredentials):
			return fmt.Errorf("%w (check your environment variables)", err)
		}
		return err
	}

	if out == "" {
		out = it.FileName()
	}
	if err := os.WriteFile(out, []byte(it.Result), 0o644); err != nil {
		return fmt.Errorf("write itinerary: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Duration of stay: %d days\n%s\n\nItinerary written to %s\n", it.Days, it.Result, out)
	return nil
}
