package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridpilot/bessim/core/bms"
)

var tariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Print the weekly tariff schedule",
	RunE:  runTariff,
}

func init() {
	rootCmd.AddCommand(tariffCmd)
}

func runTariff(cmd *cobra.Command, args []string) error {
	cfg, err := loadOrDefault()
	if err != nil {
		return err
	}
	tariff := bms.NewTariff(cfg.Env)

	// Any week works; the schedule only depends on weekday and hour.
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "hour")
	for d := 0; d < 7; d++ {
		fmt.Fprintf(w, "\t%s", monday.AddDate(0, 0, d).Weekday().String()[:3])
	}
	fmt.Fprintln(w)
	for hour := 0; hour < 24; hour++ {
		fmt.Fprintf(w, "%02d:00", hour)
		for d := 0; d < 7; d++ {
			tier, price := tariff.PriceAt(monday.AddDate(0, 0, d).Add(time.Duration(hour) * time.Hour))
			fmt.Fprintf(w, "\t%s %.3f", tier, price)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
