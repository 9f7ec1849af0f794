package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/experiment"
	"github.com/san-kum/maxwell/internal/optim"
	"github.com/san-kum/maxwell/internal/physics"
)

var (
	flagFrom    float64
	flagTo      float64
	flagPoints  int
	flagLog     bool
	flagWorkers int
	flagSave    bool

	flagGrid   []string
	flagTarget float64
	flagMetric string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [param]",
	Short: "run the wheel over a range of one parameter",
	Long: `Run one simulation per value of a parameter, in parallel, and compare
each time to bottom with the closed form.

Parameters: ` + strings.Join(physics.ParamNames(), ", ") + `

Example:
  maxwell sweep inertia --from 1e-5 --to 1e-3 -n 9 --log`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "grid search for parameters that hit a target",
	Long: `Search a grid of parameter values for the wheel whose time to bottom
is closest to --target, or whose --metric is lowest.

Each --grid is name=lo:hi:n (n evenly spaced values, inclusive).

Example:
  maxwell tune --grid axle_radius=0.002:0.01:9 --grid inertia=2e-5:1e-4:5 --target 2`,
	Args: cobra.NoArgs,
	RunE: runTune,
}

func init() {
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&flagFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&flagTo, "to", 0, "last value")
	sweepCmd.Flags().IntVarP(&flagPoints, "points", "n", 10, "number of values")
	sweepCmd.Flags().BoolVar(&flagLog, "log", false, "space values logarithmically")
	sweepCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel runs (default: number of CPUs)")
	sweepCmd.Flags().BoolVar(&flagSave, "save", false, "store every run in the catalog")
	_ = sweepCmd.MarkFlagRequired("from")
	_ = sweepCmd.MarkFlagRequired("to")

	addSimFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&flagGrid, "grid", nil, "parameter grid name=lo:hi:n (repeatable)")
	tuneCmd.Flags().Float64Var(&flagTarget, "target", 0, "target time to bottom (s)")
	tuneCmd.Flags().StringVar(&flagMetric, "metric", "", "minimize this metric instead of matching --target")
	tuneCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel runs (default: number of CPUs)")
	_ = tuneCmd.MarkFlagRequired("grid")
}

func runSweep(cmd *cobra.Command, args []string) error {
	param := args[0]
	if _, ok := physics.ParamBounds[param]; !ok {
		return fmt.Errorf("unknown parameter: %s (available: %v)", param, physics.ParamNames())
	}
	if flagPoints < 2 {
		return errors.New("a sweep needs at least 2 points")
	}
	if flagLog && (flagFrom <= 0 || flagTo <= 0) {
		return errors.New("a log sweep needs positive bounds")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	values := experiment.Linspace(flagFrom, flagTo, flagPoints)
	if flagLog {
		values = experiment.Logspace(flagFrom, flagTo, flagPoints)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweeping", "param", param, "points", len(values))
	points, err := experiment.Sweep(ctx, experiment.FromConfig(cfg), param, values, flagWorkers)
	if err != nil {
		return err
	}

	if flagSave {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		for _, p := range points {
			id, err := st.Save(p.Result.Meta(), p.Result.History)
			if err != nil {
				return err
			}
			logger.Debug("run stored", "id", id, param, p.Value)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tAPPLIED\tT\tANALYTIC\tERROR\n", strings.ToUpper(param))
	times := make([]float64, 0, len(points))
	for _, p := range points {
		applied, _ := p.Result.Config.Params.Get(param)
		T, analytic, rel := "—", "—", "—"
		if p.Result.HasBottom {
			T = fmt.Sprintf("%.4fs", p.Result.TimeToBottom)
			times = append(times, p.Result.TimeToBottom)
		}
		if ft := p.Result.Analytic.FallTime; ft > 0 {
			analytic = fmt.Sprintf("%.4fs", ft)
			if p.Result.HasBottom {
				rel = fmt.Sprintf("%.3f%%", 100*math.Abs(p.Result.TimeToBottom-ft)/ft)
			}
		}
		fmt.Fprintf(w, "%g\t%g\t%s\t%s\t%s\n", p.Value, applied, T, analytic, rel)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(times) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(times,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("time to bottom (s) across the sweep"),
		))
	}
	return nil
}

// parseGrid parses name=lo:hi:n.
func parseGrid(arg string) (string, []float64, error) {
	name, rng, ok := strings.Cut(arg, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad grid %q: want name=lo:hi:n", arg)
	}
	if _, known := physics.ParamBounds[name]; !known {
		return "", nil, fmt.Errorf("bad grid %q: unknown parameter %s", arg, name)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("bad grid %q: want name=lo:hi:n", arg)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad grid %q: %w", arg, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad grid %q: %w", arg, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("bad grid %q: n must be a positive integer", arg)
	}
	return name, experiment.Linspace(lo, hi, n), nil
}

func runTune(cmd *cobra.Command, _ []string) error {
	if flagMetric == "" && !cmd.Flags().Changed("target") {
		return errors.New("set --target or --metric")
	}

	names := make([]string, 0, len(flagGrid))
	ranges := make([][]float64, 0, len(flagGrid))
	total := 1
	for _, arg := range flagGrid {
		name, values, err := parseGrid(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
		total *= len(values)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	search.SetWorkers(flagWorkers)
	objective := optim.TimeToBottom(flagTarget)
	goal := fmt.Sprintf("T closest to %gs", flagTarget)
	if flagMetric != "" {
		objective = optim.Metric(flagMetric)
		goal = "lowest " + flagMetric
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("grid search", "points", total, "goal", goal)
	best, score, err := search.Search(ctx, experiment.FromConfig(cfg), objective)
	if err != nil {
		return err
	}

	fmt.Printf("best (%s): score %.6g\n", goal, score)
	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s = %g\n", k, best[k])
	}
	return nil
}
