package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
)

func TestEnergyResidual(t *testing.T) {
	m := NewEnergyResidual()

	m.Observe(dynamo.Record{Potential: 2, KineticTrans: 1, KineticRot: 1})
	if m.Value() != 0 {
		t.Errorf("expected zero residual, got %f", m.Value())
	}

	m.Observe(dynamo.Record{Potential: 4, KineticTrans: 1, KineticRot: 2})
	if math.Abs(m.Value()-0.25) > 1e-12 {
		t.Errorf("expected residual 0.25, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero residual after reset")
	}
}

func TestPeakEnergy(t *testing.T) {
	m := NewPeakEnergy()
	m.Observe(dynamo.Record{KineticTrans: 1, KineticRot: 2})
	m.Observe(dynamo.Record{KineticTrans: 0.5})
	if m.Value() != 3 {
		t.Errorf("expected peak 3, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestRotationalShare(t *testing.T) {
	m := NewRotationalShare()
	m.Observe(dynamo.Record{})
	if m.Value() != 0 {
		t.Error("records at rest should be ignored")
	}
	m.Observe(dynamo.Record{KineticTrans: 1, KineticRot: 3})
	if m.Value() != 0.75 {
		t.Errorf("expected 0.75, got %f", m.Value())
	}
}
