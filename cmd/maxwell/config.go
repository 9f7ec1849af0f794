package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/physics"
	"github.com/san-kum/maxwell/internal/storage"
)

var (
	flagDt       float64
	flagDuration float64
	flagFloor    string
	flagFPS      int
	flagPlotsDir string
)

// paramFlags maps command-line flags to wheel parameters.
var paramFlags = []struct {
	flag, param, usage string
}{
	{"mass", physics.ParamMass, "wheel mass (kg)"},
	{"axle-radius", physics.ParamAxleRadius, "axle radius (m)"},
	{"inertia", physics.ParamInertia, "moment of inertia (kg·m²)"},
	{"height", physics.ParamInitialHeight, "cord length / release height (m)"},
	{"gravity", physics.ParamGravity, "gravitational acceleration (m/s²)"},
}

var paramValues = map[string]*float64{}

// addSimFlags registers the wheel and timing flags on cmd.
func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&flagDt, "dt", config.DefaultDt, "timestep (s)")
	f.Float64Var(&flagDuration, "time", config.DefaultDuration, "duration (s)")
	f.StringVar(&flagFloor, "floor", physics.FloorReflect.String(), "floor mode at the top: reflect or absorb")

	defaults := physics.DefaultParams()
	for _, pf := range paramFlags {
		v, ok := paramValues[pf.param]
		if !ok {
			v = new(float64)
			paramValues[pf.param] = v
		}
		def, _ := defaults.Get(pf.param)
		f.Float64Var(v, pf.flag, def, pf.usage)
	}
}

// loadConfig layers defaults, the config file, the preset and finally any
// flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("preset") {
		if err := cfg.ApplyPreset(flagPreset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	if f.Changed("data") {
		cfg.DataDir = flagDataDir
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Resolve(); err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
	}

	if f.Changed("dt") {
		cfg.Dt = flagDt
	}
	if f.Changed("time") {
		cfg.Duration = flagDuration
	}
	if f.Changed("floor") {
		cfg.Floor = flagFloor
	}
	if f.Changed("fps") {
		cfg.FPS = flagFPS
	}
	if f.Changed("plots") {
		cfg.PlotsDir = flagPlotsDir
	}
	for _, pf := range paramFlags {
		if !f.Changed(pf.flag) {
			continue
		}
		cfg.Params, _ = cfg.Params.With(pf.param, *paramValues[pf.param])
	}
	cfg.Params = cfg.Params.Clamp()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "maxwell",
		Level:           cfg.Level(),
	})
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	st, err := storage.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("cannot open run catalog: %w", err)
	}
	return st, nil
}

// storeForArgs opens the catalog for commands that only read runs.
func storeForArgs(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openStore(cfg)
}
