package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/analysis"
	"github.com/san-kum/maxwell/internal/experiment"
	"github.com/san-kum/maxwell/internal/export"
)

var (
	flagNoSave      bool
	flagSavePlots   bool
	flagUntilBottom bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a headless simulation and store it",
	Args:  cobra.NoArgs,
	RunE:  runSimulation,
}

func init() {
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&flagSavePlots, "svg", false, "also write SVG charts")
	runCmd.Flags().StringVar(&flagPlotsDir, "plots", "plots", "directory for SVG charts")
	runCmd.Flags().BoolVar(&flagUntilBottom, "until-bottom", false, "stop as soon as the wheel first reaches the bottom")
}

// chartDir is where a run's charts go: <plots>/<run_id>, or a timestamped
// directory for runs that were not stored.
func chartDir(plots, id string, at time.Time) string {
	if id == "" {
		id = "unsaved-" + at.Format("20060102-150405")
	}
	return filepath.Join(plots, id)
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	expCfg := experiment.FromConfig(cfg)
	expCfg.StopAtBottom = flagUntilBottom
	exp, err := experiment.New(expCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	label := cfg.Preset
	if label == "" {
		label = "custom"
	}
	fmt.Printf("running %s wheel for %.2fs...\n", label, cfg.Duration)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	var id string
	if !flagNoSave {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		id, err = st.Save(result.Meta(), result.History)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
		logger.Debug("run stored", "id", id, "dir", st.Dir())
	}
	if flagSavePlots {
		paths, err := export.SavePlots(result.History, chartDir(cfg.PlotsDir, id, start))
		if err != nil {
			logger.Warn("charts skipped", "err", err)
		}
		for _, p := range paths {
			fmt.Printf("wrote %s\n", p)
		}
	}
	fmt.Printf("steps: %d\n", result.Run.Accepted)
	printTimeToBottom(result)

	fmt.Println("\nmetrics:")
	printMetrics(result.Run.Metrics)
	return nil
}

func printTimeToBottom(r *experiment.Result) {
	if !r.HasBottom {
		fmt.Println("T = — (bottom not reached)")
		return
	}
	fmt.Printf("T = %.4f s", r.TimeToBottom)
	if r.Analytic.FallTime > 0 {
		rel := math.Abs(r.TimeToBottom-r.Analytic.FallTime) / r.Analytic.FallTime
		fmt.Printf("  (analytic %.4f s, error %.3f%%)", r.Analytic.FallTime, 100*rel)
	}
	fmt.Println()
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func printAnalytic(ref analysis.Analytic) {
	fmt.Printf("  acceleration:     %.6g m/s²\n", ref.Acceleration)
	fmt.Printf("  fall time:        %.6g s\n", ref.FallTime)
	fmt.Printf("  bottom speed:     %.6g m/s\n", ref.BottomSpeed)
	fmt.Printf("  period:           %.6g s\n", ref.Period)
	fmt.Printf("  rotational share: %.4f\n", ref.RotationalShare)
}
