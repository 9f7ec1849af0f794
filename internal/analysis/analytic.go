package analysis

import (
	"math"

	"github.com/san-kum/maxwell/internal/physics"
)

// Analytic holds closed-form values for a parameter set.
type Analytic struct {
	Acceleration    float64 `json:"acceleration"`
	FallTime        float64 `json:"fall_time"`
	BottomSpeed     float64 `json:"bottom_speed"`
	Period          float64 `json:"period"`
	RotationalShare float64 `json:"rotational_share"`
}

// Reference returns the closed-form values for p. ok is false when the
// wheel would never fall.
func Reference(p physics.Params) (Analytic, bool) {
	a, ok := p.Acceleration()
	if !ok || a <= 0 {
		return Analytic{}, false
	}
	fall := FallTime(a, p.InitialHeight)
	return Analytic{
		Acceleration:    a,
		FallTime:        fall,
		BottomSpeed:     BottomSpeed(a, p.InitialHeight),
		Period:          2 * fall,
		RotationalShare: RotationalShare(p),
	}, true
}

// FallTime is sqrt(2H/a), the time to descend H from rest.
func FallTime(a, H float64) float64 {
	if a <= 0 || H <= 0 {
		return 0
	}
	return math.Sqrt(2 * H / a)
}

func BottomSpeed(a, H float64) float64 {
	if a <= 0 || H <= 0 {
		return 0
	}
	return math.Sqrt(2 * a * H)
}

// RotationalShare is the fraction of kinetic energy stored as spin,
// I / (I + m·R²). It is the same at every instant of the ideal motion.
func RotationalShare(p physics.Params) float64 {
	r := p.EffectiveRadius()
	denom := p.Inertia + p.Mass*r*r
	if denom <= 0 {
		return 0
	}
	return p.Inertia / denom
}
