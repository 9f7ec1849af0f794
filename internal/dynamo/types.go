package dynamo

import (
	"fmt"
	"math"
)

// Record is one accepted integration step: the state after the step and the
// energies derived from it.
type Record struct {
	Time         float64
	Height       float64
	Velocity     float64
	Potential    float64
	KineticTrans float64
	KineticRot   float64
}

// Kinetic returns the sum of translational and rotational kinetic energy.
func (r Record) Kinetic() float64 {
	return r.KineticTrans + r.KineticRot
}

// Total returns Ep + Ek. Height grows downward, so for the lossless model the
// conserved quantity is Kinetic() - Potential, not Total().
func (r Record) Total() float64 {
	return r.Potential + r.KineticTrans + r.KineticRot
}

func (r Record) Valid() bool {
	for _, v := range [...]float64{r.Time, r.Height, r.Velocity, r.Potential, r.KineticTrans, r.KineticRot} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Stepper advances a system by a fixed simulated interval.
// Step reports whether the state actually advanced.
type Stepper interface {
	Step(dt float64) bool
	Last() (Record, bool)
}

type Metric interface {
	Name() string
	Observe(r Record)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(r Record)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.001,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Steps is the number of fixed steps needed to cover Duration.
func (c Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(math.Round(c.Duration / c.Dt))
}

type Result struct {
	Steps    int
	Accepted int
	Elapsed  float64
	Metrics  map[string]float64
	Errors   []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
