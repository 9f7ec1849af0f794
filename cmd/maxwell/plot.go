package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/analysis"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/storage"
)

var (
	flagPhaseWidth  int
	flagPhaseHeight int
)

var plotCmd = &cobra.Command{
	Use:   "plot [run_id]",
	Short: "plot run results",
	Args:  cobra.ExactArgs(1),
	RunE:  plotRun,
}

var phaseCmd = &cobra.Command{
	Use:   "phase [run_id]",
	Short: "phase space plot (velocity against height)",
	Args:  cobra.ExactArgs(1),
	RunE:  phasePlot,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [run_id]",
	Short: "frequency analysis and comparison with the closed form",
	Args:  cobra.ExactArgs(1),
	RunE:  analyzeRun,
}

func init() {
	phaseCmd.Flags().IntVar(&flagPhaseWidth, "cols", 70, "plot width in characters")
	phaseCmd.Flags().IntVar(&flagPhaseHeight, "rows", 20, "plot height in characters")
}

func loadRun(cmd *cobra.Command, id string) (*storage.RunMeta, dynamo.Snapshot, error) {
	st, err := storeForArgs(cmd)
	if err != nil {
		return nil, dynamo.Snapshot{}, err
	}
	defer st.Close()

	meta, err := st.Load(id)
	if err != nil {
		return nil, dynamo.Snapshot{}, err
	}
	snap, err := st.LoadHistory(id)
	if err != nil {
		return nil, dynamo.Snapshot{}, err
	}
	if snap.Len() == 0 {
		return nil, dynamo.Snapshot{}, errors.New("no data to plot")
	}
	return meta, snap, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, snap, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", snap.Len())

	kinetic := make([]float64, snap.Len())
	for i := range kinetic {
		kinetic[i] = snap.KineticTrans[i] + snap.KineticRot[i]
	}

	plots := []struct {
		caption string
		series  [][]float64
		colors  []asciigraph.AnsiColor
	}{
		{"height h (m)", [][]float64{snap.Height}, []asciigraph.AnsiColor{asciigraph.Cyan}},
		{"velocity v (m/s)", [][]float64{snap.Velocity}, []asciigraph.AnsiColor{asciigraph.Yellow}},
		{"energies: Ep (red), Ek (green), Ek rot (blue) (J)", [][]float64{snap.Potential, kinetic, snap.KineticRot},
			[]asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue}},
	}
	for _, p := range plots {
		graph := asciigraph.PlotMany(p.series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(p.colors...),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, snap, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("x-axis: h (m), y-axis: v (m/s)\n\n")
	fmt.Println(analysis.PhasePortrait(snap, flagPhaseWidth, flagPhaseHeight))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, snap, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	centered := make([]float64, snap.Len())
	mean := 0.0
	for _, h := range snap.Height {
		mean += h
	}
	mean /= float64(len(centered))
	for i, h := range snap.Height {
		centered[i] = h - mean
	}
	ps := analysis.PowerSpectrum(centered)
	if plotData := ps[:len(ps)/4]; len(plotData) > 1 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (h)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	ref, hasRef := analysis.Reference(meta.Params)

	period, err := analysis.DominantPeriod(snap)
	switch {
	case errors.Is(err, dynamo.ErrTooFewSamples):
		fmt.Println("dominant period: not enough oscillation to estimate")
	case err != nil:
		return err
	default:
		fmt.Printf("dominant frequency: %.3f hz\n", 1/period)
		fmt.Printf("period: %.4f s", period)
		if hasRef && ref.Period > 0 {
			fmt.Printf("  (analytic %.4f s, error %.2f%%)", ref.Period, 100*math.Abs(period-ref.Period)/ref.Period)
		}
		fmt.Println()
	}

	fmt.Printf("T = %s", formatT(*meta))
	if hasRef && meta.HasBottom {
		fmt.Printf("  (analytic %.4f s)", ref.FallTime)
	}
	fmt.Println()

	if hasRef {
		fmt.Println("\nanalytic:")
		printAnalytic(ref)
	}
	return nil
}
