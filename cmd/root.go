package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gridpilot/bessim/app"
	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/runner"
	"github.com/gridpilot/bessim/infra/logger"
	"github.com/gridpilot/bessim/pkg/export"
)

var (
	cfgPath string

	episodesFlag int
	policyFlag   string
	seedFlag     int64
	episodesJSON string
)

var rootCmd = &cobra.Command{
	Use:   "bessim",
	Short: "Battery storage simulation engine",
	Long: `bessim rolls out episodes of a battery energy storage simulation:
a policy requests charge or discharge power each step, the engine corrects
it against the battery limits and the site energy balance, and the tariff
prices the resulting grid exchange.`,
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.Flags().IntVar(&episodesFlag, "episodes", 0, "override the configured episode count")
	rootCmd.Flags().StringVar(&policyFlag, "policy", "", "override the configured policy")
	rootCmd.Flags().Int64Var(&seedFlag, "seed", 0, "override the configured base seed")
	rootCmd.Flags().StringVar(&episodesJSON, "export-episodes", "", "write the episode records to this JSON file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Run.Validate(); err != nil {
		return fmt.Errorf("run flags: %w", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	result, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	printSummary(cmd, result)
	if episodesJSON != "" {
		if err := writeEpisodesJSON(episodesJSON, result); err != nil {
			return fmt.Errorf("export episodes: %w", err)
		}
	}
	return nil
}

// loadOrDefault reads the configured file, starting from plain defaults
// when it does not exist. Subcommands that can run without a file use this;
// the root command insists on one.
func loadOrDefault() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, fs.ErrNotExist):
		def := config.Default()
		return &def, nil
	default:
		return nil, fmt.Errorf("load config: %w", err)
	}
}

// applyRunFlags lets the command line override the run section of the
// configuration file.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("episodes") {
		cfg.Run.Episodes = episodesFlag
	}
	if cmd.Flags().Changed("policy") {
		cfg.Run.Policy = policyFlag
	}
	if cmd.Flags().Changed("seed") {
		cfg.Run.Seed = seedFlag
	}
}

func printSummary(cmd *cobra.Command, result runner.Result) {
	s := result.Summary()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", result.RunID)
	fmt.Fprintf(w, "episodes\t%d\n", s.Episodes)
	fmt.Fprintf(w, "steps\t%d\n", s.Steps)
	fmt.Fprintf(w, "mean reward\t%.4f\n", s.MeanReward)
	fmt.Fprintf(w, "reward stddev\t%.4f\n", s.RewardStdDev)
	fmt.Fprintf(w, "best / worst\t%.4f / %.4f\n", s.BestReward, s.WorstReward)
	fmt.Fprintf(w, "cost / revenue\t%.4f / %.4f\n", s.TotalCost, s.TotalRevenue)
	fmt.Fprintf(w, "import / export\t%.2f kWh / %.2f kWh\n", s.ImportKWh, s.ExportKWh)
	fmt.Fprintf(w, "violations\t%d\n", s.Violations)
	_ = w.Flush()
}

func writeEpisodesJSON(path string, result runner.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteEpisodesJSON(f, result.Episodes)
}
