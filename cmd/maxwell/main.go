// maxwell simulates an ideal Maxwell's wheel in the terminal.
//
// Usage:
//
//	maxwell                      - preset menu, then the live view
//	maxwell live                 - live view with the configured wheel
//	maxwell run                  - headless run, saved to the catalog
//	maxwell list | show | delete - browse stored runs
//	maxwell plot | phase | analyze <run_id>
//	maxwell export | export-csv | export-json <run_id>
//	maxwell sweep <param>        - parameter sweep
//	maxwell tune                 - grid search for a target fall time
//	maxwell batch [scenario]     - scripted runs or a Monte Carlo batch
//	maxwell serve                - live view over SSH
//
// Global flags:
//
//	--config <file>    - YAML configuration
//	--preset <name>    - start from a preset (see `maxwell presets`)
//	--data <dir>       - run catalog directory (default .maxwell)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/viz"
)

var (
	flagConfig   string
	flagPreset   string
	flagDataDir  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maxwell",
	Short: "Maxwell's wheel simulator",
	Long: `maxwell simulates an ideal Maxwell's wheel: a disk on an axle that
unwinds from two cords, trading potential energy for translation and spin.

Without a subcommand it opens the preset menu and the live view.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts := viz.OptionsFromConfig(cfg)
		opts.Logger = newLogger(cfg)
		return viz.Run(opts)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file path (yaml)")
	pf.StringVar(&flagPreset, "preset", "", "use preset configuration")
	pf.StringVar(&flagDataDir, "data", "", "data directory (default .maxwell)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		liveCmd,
		runCmd,
		listCmd,
		showCmd,
		deleteCmd,
		plotCmd,
		phaseCmd,
		analyzeCmd,
		exportCmd,
		exportCSVCmd,
		exportJSONCmd,
		presetsCmd,
		sweepCmd,
		tuneCmd,
		batchCmd,
		serveCmd,
	)
}
