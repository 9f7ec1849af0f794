package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/analysis"
	"github.com/san-kum/maxwell/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list runs",
	Args:  cobra.NoArgs,
	RunE:  listRuns,
}

var showCmd = &cobra.Command{
	Use:   "show [run_id]",
	Short: "show a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  showRun,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [run_id]",
	Short: "delete a stored run and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := storeForArgs(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func formatT(meta storage.RunMeta) string {
	if !meta.HasBottom {
		return "—"
	}
	return fmt.Sprintf("%.4fs", meta.TimeToBottom)
}

func listRuns(cmd *cobra.Command, _ []string) error {
	st, err := storeForArgs(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tFLOOR\tT")
	for _, run := range runs {
		preset := run.Preset
		if preset == "" {
			preset = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\n",
			run.ID,
			preset,
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Floor,
			formatT(run),
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := storeForArgs(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("created: %s\n", meta.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if meta.Preset != "" {
		fmt.Printf("preset: %s\n", meta.Preset)
	}
	fmt.Printf("floor: %s  dt: %gs  duration: %gs  steps: %d\n", meta.Floor, meta.Dt, meta.Duration, meta.Steps)
	fmt.Printf("T = %s\n", formatT(*meta))

	fmt.Println("\nparameters:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  mass\t%g kg\n", meta.Params.Mass)
	fmt.Fprintf(w, "  axle_radius\t%g m\n", meta.Params.AxleRadius)
	fmt.Fprintf(w, "  inertia\t%g kg·m²\n", meta.Params.Inertia)
	fmt.Fprintf(w, "  initial_height\t%g m\n", meta.Params.InitialHeight)
	fmt.Fprintf(w, "  gravity\t%g m/s²\n", meta.Params.Gravity)
	if err := w.Flush(); err != nil {
		return err
	}

	if ref, ok := analysis.Reference(meta.Params); ok {
		fmt.Println("\nanalytic:")
		printAnalytic(ref)
	}

	fmt.Println("\nmetrics:")
	printMetrics(meta.Metrics)
	return nil
}
