package main

import (
	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/viz"
)

var flagTheme string

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "run the wheel with live visualization",
	Long: `Open the live view: the wheel drawn in the terminal next to its
readouts, live height/velocity and energy charts, and parameter sliders.

Keys: s start, p pause, r reset, tab/arrows select and adjust, enter type a
value, e export charts, f floor mode, t theme, ? help, q quit.`,
	Args: cobra.NoArgs,
	RunE: runLive,
}

func init() {
	addSimFlags(liveCmd)
	addViewFlags(liveCmd)
	addSimFlags(rootCmd)
	addViewFlags(rootCmd)
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagFPS, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&flagPlotsDir, "plots", config.DefaultPlotsDir, "directory for exported charts")
	cmd.Flags().StringVar(&flagTheme, "theme", viz.ThemeClassic.Name, "color theme")
}

func runLive(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := viz.OptionsFromConfig(cfg)
	opts.Theme = flagTheme
	opts.Logger = newLogger(cfg)
	return viz.RunLive(opts)
}
