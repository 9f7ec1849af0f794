package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/automation"
	"github.com/san-kum/maxwell/internal/experiment"
)

var (
	flagMCTrials  int
	flagMCPerturb float64
	flagMCSeed    int64
)

var batchCmd = &cobra.Command{
	Use:   "batch [scenario.yaml]",
	Short: "run a scripted scenario or a Monte Carlo batch",
	Long: `Run every run of a YAML scenario in order and store them, or, with
--monte-carlo, perturb the configured wheel's parameters at random and report
the spread of the time to bottom.

Scenario format:

  name: axle study
  runs:
    - name: thin
      preset: thin-axle
    - name: lab, absorbing floor
      preset: lab
      floor: absorb
      params: {mass: 0.06}
      plots_dir: plots`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	addSimFlags(batchCmd)
	batchCmd.Flags().IntVar(&flagMCTrials, "monte-carlo", 0, "number of Monte Carlo trials")
	batchCmd.Flags().Float64Var(&flagMCPerturb, "perturb", 0.05, "relative perturbation per parameter")
	batchCmd.Flags().Int64Var(&flagMCSeed, "seed", 0, "random seed (0 = time based)")
	batchCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel Monte Carlo trials (default: number of CPUs)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if flagMCTrials > 0 {
		results, err := automation.RunMonteCarlo(ctx, automation.MonteCarloConfig{
			Base:         experiment.FromConfig(cfg),
			Perturbation: flagMCPerturb,
			NumTrials:    flagMCTrials,
			Seed:         flagMCSeed,
			Workers:      flagWorkers,
		}, logger)
		if err != nil {
			return err
		}
		mean, std, reached := automation.MonteCarloStats(results)
		fmt.Printf("trials: %d, reached bottom: %d\n", len(results), reached)
		if reached > 0 {
			fmt.Printf("T = %.4f ± %.4f s\n", mean, std)
		}
		return nil
	}

	if len(args) == 0 {
		return errors.New("give a scenario file or --monte-carlo")
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	outcomes, runErr := automation.RunScenario(ctx, scenario, st, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRUN ID\tT\tANALYTIC\tPLOTS")
	for _, o := range outcomes {
		T := "—"
		if o.Result.HasBottom {
			T = fmt.Sprintf("%.4fs", o.Result.TimeToBottom)
		}
		id := o.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4fs\t%d\n", o.Name, id, T, o.Result.Analytic.FallTime, len(o.Plots))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}
