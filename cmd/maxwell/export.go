package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/export"
	"github.com/san-kum/maxwell/internal/storage"
)

var flagOut string

var exportCmd = &cobra.Command{
	Use:   "export [run_id]",
	Short: "write height, velocity and energy charts as SVG",
	Args:  cobra.ExactArgs(1),
	RunE:  exportSVG,
}

var exportCSVCmd = &cobra.Command{
	Use:   "export-csv [run_id]",
	Short: "export run data to CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  exportCSV,
}

var exportJSONCmd = &cobra.Command{
	Use:   "export-json [run_id]",
	Short: "export run data to JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  exportJSON,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output directory (default <plots>/<run_id>)")
	exportCmd.Flags().StringVar(&flagPlotsDir, "plots", "plots", "base directory for charts")
	exportCSVCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default stdout)")
	exportJSONCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default stdout)")
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	meta, snap, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	dir := flagOut
	if dir == "" {
		dir = filepath.Join(cfg.PlotsDir, meta.ID)
	}
	paths, err := export.SavePlots(snap, dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("wrote %s\n", p)
	}
	return nil
}

// output returns the destination for an export and a func to finish it.
func output() (io.Writer, func() error, error) {
	if flagOut == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(flagOut)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, snap, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	w, done, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, snap); err != nil {
		_ = done()
		return err
	}
	return done()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, snap, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	data := export.Data{
		ID:       meta.ID,
		Params:   meta.Params,
		Floor:    meta.Floor,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    meta.Steps,
		Metrics:  meta.Metrics,
		History:  snap,
	}
	if meta.HasBottom {
		t := meta.TimeToBottom
		data.TimeToBottom = &t
	}

	w, done, err := output()
	if err != nil {
		return err
	}
	if err := export.WriteJSON(w, data); err != nil {
		_ = done()
		return err
	}
	return done()
}
