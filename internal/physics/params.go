package physics

import (
	"fmt"
	"math"
	"strings"
)

// MinAxleRadius guards the acceleration and ω = v/R against division by zero.
const MinAxleRadius = 1e-6

const (
	DefaultMass          = 0.045
	DefaultAxleRadius    = 0.004
	DefaultInertia       = 5e-5
	DefaultInitialHeight = 0.5
	DefaultGravity       = 9.81
)

// Params are the operator-adjustable wheel parameters, SI units throughout.
type Params struct {
	Mass          float64 `yaml:"mass" json:"mass"`
	AxleRadius    float64 `yaml:"axle_radius" json:"axle_radius"`
	Inertia       float64 `yaml:"inertia" json:"inertia"`
	InitialHeight float64 `yaml:"initial_height" json:"initial_height"`
	Gravity       float64 `yaml:"gravity" json:"gravity"`
}

func DefaultParams() Params {
	return Params{
		Mass:          DefaultMass,
		AxleRadius:    DefaultAxleRadius,
		Inertia:       DefaultInertia,
		InitialHeight: DefaultInitialHeight,
		Gravity:       DefaultGravity,
	}
}

func (p Params) EffectiveRadius() float64 {
	return math.Max(p.AxleRadius, MinAxleRadius)
}

// Acceleration returns the constant downward acceleration m·g·R²/(I + m·R²).
// ok is false for a degenerate configuration (denominator <= 0).
func (p Params) Acceleration() (a float64, ok bool) {
	r := p.EffectiveRadius()
	denom := p.Inertia + p.Mass*r*r
	if denom <= 0 {
		return 0, false
	}
	return p.Mass * p.Gravity * r * r / denom, true
}

// Clamp pulls every field into its ParamBounds range.
func (p Params) Clamp() Params {
	p.Mass = ParamBounds[ParamMass].Clamp(p.Mass)
	p.AxleRadius = ParamBounds[ParamAxleRadius].Clamp(p.AxleRadius)
	p.Inertia = ParamBounds[ParamInertia].Clamp(p.Inertia)
	p.InitialHeight = ParamBounds[ParamInitialHeight].Clamp(p.InitialHeight)
	p.Gravity = ParamBounds[ParamGravity].Clamp(p.Gravity)
	return p
}

func (p Params) Get(name string) (float64, bool) {
	switch name {
	case ParamMass:
		return p.Mass, true
	case ParamAxleRadius:
		return p.AxleRadius, true
	case ParamInertia:
		return p.Inertia, true
	case ParamInitialHeight:
		return p.InitialHeight, true
	case ParamGravity:
		return p.Gravity, true
	}
	return 0, false
}

// With returns a copy of p with the named field set. The value is not clamped.
func (p Params) With(name string, v float64) (Params, bool) {
	switch name {
	case ParamMass:
		p.Mass = v
	case ParamAxleRadius:
		p.AxleRadius = v
	case ParamInertia:
		p.Inertia = v
	case ParamInitialHeight:
		p.InitialHeight = v
	case ParamGravity:
		p.Gravity = v
	default:
		return p, false
	}
	return p, true
}

const (
	ParamMass          = "mass"
	ParamAxleRadius    = "axle_radius"
	ParamInertia       = "inertia"
	ParamInitialHeight = "initial_height"
	ParamGravity       = "gravity"
)

// ParamNames lists parameters in display order.
func ParamNames() []string {
	return []string{ParamMass, ParamAxleRadius, ParamInertia, ParamInitialHeight, ParamGravity}
}

// Bounds is the accepted range of one parameter. Log marks parameters whose
// slider moves on a logarithmic scale.
type Bounds struct {
	Min, Max float64
	Log      bool
	Unit     string
}

var ParamBounds = map[string]Bounds{
	ParamMass:          {Min: 0.01, Max: 1.0, Unit: "kg"},
	ParamAxleRadius:    {Min: 0.002, Max: 0.02, Unit: "m"},
	ParamInertia:       {Min: 1e-5, Max: 1e-3, Log: true, Unit: "kg·m²"},
	ParamInitialHeight: {Min: 0.0, Max: 1.0, Unit: "m"},
	ParamGravity:       {Min: 9.0, Max: 10.0, Unit: "m/s²"},
}

func (b Bounds) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return b.Min
	}
	return math.Max(b.Min, math.Min(b.Max, v))
}

// Normalize maps v to a slider position in [0, 1].
func (b Bounds) Normalize(v float64) float64 {
	v = b.Clamp(v)
	if b.Max <= b.Min {
		return 0
	}
	if b.Log {
		lo, hi := math.Log10(b.Min), math.Log10(b.Max)
		return (math.Log10(v) - lo) / (hi - lo)
	}
	return (v - b.Min) / (b.Max - b.Min)
}

// Denormalize is the inverse of Normalize; n is clamped to [0, 1] first.
func (b Bounds) Denormalize(n float64) float64 {
	n = math.Max(0, math.Min(1, n))
	if b.Log {
		lo, hi := math.Log10(b.Min), math.Log10(b.Max)
		return math.Pow(10, lo+n*(hi-lo))
	}
	return b.Min + n*(b.Max-b.Min)
}

// FloorMode selects what happens when the wheel climbs back to h = 0.
type FloorMode int

const (
	// FloorReflect reverses upward velocity at the top of travel (elastic).
	FloorReflect FloorMode = iota
	// FloorAbsorb zeroes upward velocity at the top of travel.
	FloorAbsorb
)

func (m FloorMode) String() string {
	switch m {
	case FloorReflect:
		return "reflect"
	case FloorAbsorb:
		return "absorb"
	}
	return fmt.Sprintf("FloorMode(%d)", int(m))
}

func ParseFloorMode(s string) (FloorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reflect", "elastic":
		return FloorReflect, nil
	case "absorb", "inelastic":
		return FloorAbsorb, nil
	}
	return FloorReflect, fmt.Errorf("unknown floor mode: %q (want reflect or absorb)", s)
}
