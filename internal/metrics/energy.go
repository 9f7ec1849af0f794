package metrics

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// EnergyResidual tracks how far Ek - Ep strays from zero, relative to the
// largest potential energy seen. Height grows downward, so the lossless wheel
// keeps Ek - Ep constant at zero.
type EnergyResidual struct {
	name        string
	maxResidual float64
	maxEp       float64
}

func NewEnergyResidual() *EnergyResidual {
	return &EnergyResidual{name: "energy_residual"}
}

func (e *EnergyResidual) Name() string { return e.name }

func (e *EnergyResidual) Observe(r dynamo.Record) {
	e.maxResidual = math.Max(e.maxResidual, math.Abs(r.Kinetic()-r.Potential))
	e.maxEp = math.Max(e.maxEp, math.Abs(r.Potential))
}

func (e *EnergyResidual) Value() float64 {
	if e.maxEp == 0 {
		return 0
	}
	return e.maxResidual / e.maxEp
}

func (e *EnergyResidual) Reset() {
	e.maxResidual = 0
	e.maxEp = 0
}

type PeakEnergy struct {
	name string
	peak float64
}

func NewPeakEnergy() *PeakEnergy {
	return &PeakEnergy{name: "peak_kinetic"}
}

func (p *PeakEnergy) Name() string { return p.name }

func (p *PeakEnergy) Observe(r dynamo.Record) {
	p.peak = math.Max(p.peak, r.Kinetic())
}

func (p *PeakEnergy) Value() float64 { return p.peak }

func (p *PeakEnergy) Reset() { p.peak = 0 }

// RotationalShare is the mean fraction of kinetic energy stored as spin.
type RotationalShare struct {
	name    string
	sum     float64
	samples int
}

func NewRotationalShare() *RotationalShare {
	return &RotationalShare{name: "rotational_share"}
}

func (s *RotationalShare) Name() string { return s.name }

func (s *RotationalShare) Observe(r dynamo.Record) {
	k := r.Kinetic()
	if k <= 0 {
		return
	}
	s.sum += r.KineticRot / k
	s.samples++
}

func (s *RotationalShare) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *RotationalShare) Reset() {
	s.sum = 0
	s.samples = 0
}
