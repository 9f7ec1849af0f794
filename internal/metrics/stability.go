package metrics

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// BoundsViolations counts records outside [0, maxHeight] or with non-finite
// values. A correct run reports 0.
type BoundsViolations struct {
	name       string
	maxHeight  float64
	violations int
}

func NewBoundsViolations(maxHeight float64) *BoundsViolations {
	return &BoundsViolations{
		name:      "bounds_violations",
		maxHeight: maxHeight,
	}
}

func (b *BoundsViolations) Name() string { return b.name }

func (b *BoundsViolations) Observe(r dynamo.Record) {
	if !r.Valid() || r.Height < 0 || r.Height > b.maxHeight {
		b.violations++
	}
}

func (b *BoundsViolations) Value() float64 { return float64(b.violations) }

func (b *BoundsViolations) Reset() { b.violations = 0 }

// Reversals counts sign changes of the velocity: bounces at either end.
type Reversals struct {
	name  string
	prev  float64
	count int
}

func NewReversals() *Reversals {
	return &Reversals{name: "reversals"}
}

func (r *Reversals) Name() string { return r.name }

func (r *Reversals) Observe(rec dynamo.Record) {
	if rec.Velocity == 0 {
		return
	}
	if r.prev != 0 && math.Signbit(rec.Velocity) != math.Signbit(r.prev) {
		r.count++
	}
	r.prev = rec.Velocity
}

func (r *Reversals) Value() float64 { return float64(r.count) }

func (r *Reversals) Reset() {
	r.prev = 0
	r.count = 0
}

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(r dynamo.Record) {
	p.peak = math.Max(p.peak, math.Abs(r.Velocity))
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }
