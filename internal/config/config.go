package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/maxwell/internal/physics"
)

const (
	DefaultDt         = 0.001
	DefaultDuration   = 10.0
	DefaultFPS        = 60
	DefaultMaxCatchUp = 250
	DefaultPlotsDir   = "plots"
	DefaultDataDir    = ".maxwell"
	DefaultLogLevel   = "info"
)

type Config struct {
	Preset     string         `yaml:"preset,omitempty"`
	Params     physics.Params `yaml:"params"`
	Floor      string         `yaml:"floor"`
	Dt         float64        `yaml:"dt"`
	Duration   float64        `yaml:"duration"`
	FPS        int            `yaml:"fps"`
	HistoryCap int            `yaml:"history_cap"`
	MaxCatchUp int            `yaml:"max_catch_up"`
	PlotsDir   string         `yaml:"plots_dir"`
	DataDir    string         `yaml:"data_dir"`
	LogLevel   string         `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Params:     physics.DefaultParams(),
		Floor:      physics.FloorReflect.String(),
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		FPS:        DefaultFPS,
		MaxCatchUp: DefaultMaxCatchUp,
		PlotsDir:   DefaultPlotsDir,
		DataDir:    DefaultDataDir,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults. A preset named in the file is
// applied first, so params and duration set in the same file override it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if head.Preset != "" {
		if err := cfg.ApplyPreset(head.Preset); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid value")
)

// Validate reports the first unusable setting. Parameters are not checked
// here: out-of-range values are clamped by Resolve.
func (c *Config) Validate() error {
	if c.Preset != "" {
		if _, ok := GetPreset(c.Preset); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPreset, c.Preset)
		}
	}
	if _, err := physics.ParseFloorMode(c.Floor); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, c.Duration)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.HistoryCap < 0 {
		return fmt.Errorf("%w: history_cap must not be negative", ErrInvalid)
	}
	if c.MaxCatchUp < 0 {
		return fmt.Errorf("%w: max_catch_up must not be negative", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return nil
}

// ApplyPreset replaces the parameters, and the duration when the preset has
// one, with the named preset's.
func (c *Config) ApplyPreset(name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	c.Preset = name
	c.Params = p.Params
	if p.Duration > 0 {
		c.Duration = p.Duration
	}
	return nil
}

// Resolve checks the preset name and clamps the parameters. It does not
// reapply the preset: values layered over it are kept.
func (c *Config) Resolve() error {
	if c.Preset != "" {
		if _, ok := GetPreset(c.Preset); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPreset, c.Preset)
		}
	}
	c.Params = c.Params.Clamp()
	return nil
}

func (c *Config) FloorMode() physics.FloorMode {
	m, _ := physics.ParseFloorMode(c.Floor)
	return m
}

func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
