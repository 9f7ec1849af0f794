package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/analysis"
	"github.com/san-kum/maxwell/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "list available presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tMASS\tAXLE\tINERTIA\tHEIGHT\tT\tDESCRIPTION")
		for _, p := range config.Presets {
			T := "—"
			if ref, ok := analysis.Reference(p.Params); ok {
				T = fmt.Sprintf("%.3fs", ref.FallTime)
			}
			fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%s\t%s\n",
				p.Name,
				p.Params.Mass,
				p.Params.AxleRadius,
				p.Params.Inertia,
				p.Params.InitialHeight,
				T,
				p.Description,
			)
		}
		return w.Flush()
	},
}
