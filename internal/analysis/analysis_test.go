package analysis

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
	"github.com/san-kum/maxwell/internal/sim"
)

var lab = physics.Params{Mass: 0.045, AxleRadius: 0.0075, Inertia: 5.25e-5, InitialHeight: 0.24, Gravity: 9.81}

func simulate(t *testing.T, p physics.Params, duration float64) dynamo.Snapshot {
	t.Helper()
	w := physics.NewWheel(p)
	if _, err := sim.New(w).Run(context.Background(), dynamo.Config{Dt: 0.001, Duration: duration}); err != nil {
		t.Fatal(err)
	}
	return w.History()
}

func TestReference(t *testing.T) {
	ref, ok := Reference(lab)
	if !ok {
		t.Fatal("expected a reference")
	}
	if math.Abs(ref.FallTime-1.031390872) > 1e-8 {
		t.Errorf("FallTime = %v", ref.FallTime)
	}
	if math.Abs(ref.Period-2*ref.FallTime) > 1e-12 {
		t.Errorf("Period = %v", ref.Period)
	}
	if math.Abs(ref.BottomSpeed-ref.Acceleration*ref.FallTime) > 1e-12 {
		t.Errorf("BottomSpeed = %v", ref.BottomSpeed)
	}

	// m·R² = 2.53e-6, so spin holds almost everything
	if ref.RotationalShare < 0.95 || ref.RotationalShare >= 1 {
		t.Errorf("RotationalShare = %v", ref.RotationalShare)
	}

	if _, ok := Reference(physics.Params{}); ok {
		t.Error("degenerate params should have no reference")
	}
}

func TestFallTimeEdgeCases(t *testing.T) {
	if FallTime(0, 1) != 0 || FallTime(1, 0) != 0 {
		t.Error("expected zero fall time for degenerate input")
	}
	if BottomSpeed(-1, 1) != 0 {
		t.Error("expected zero speed for negative acceleration")
	}
}

func TestRotationalShareMatchesSimulation(t *testing.T) {
	snap := simulate(t, lab, 0.5)
	last := snap.Record(snap.Len() - 1)
	got := last.KineticRot / last.Kinetic()
	if want := RotationalShare(lab); math.Abs(got-want) > 1e-9 {
		t.Errorf("share = %v, want %v", got, want)
	}
}

func TestDominantPeriod(t *testing.T) {
	snap := simulate(t, lab, 20)
	got, err := DominantPeriod(snap)
	if err != nil {
		t.Fatal(err)
	}
	ref, _ := Reference(lab)
	if math.Abs(got-ref.Period)/ref.Period > 0.05 {
		t.Errorf("period = %v, want ~%v", got, ref.Period)
	}
}

func TestDominantPeriodTooShort(t *testing.T) {
	snap := dynamo.SnapshotOf([]dynamo.Record{{Time: 0.001}, {Time: 0.002}})
	if _, err := DominantPeriod(snap); !errors.Is(err, dynamo.ErrTooFewSamples) {
		t.Errorf("expected ErrTooFewSamples, got %v", err)
	}
}

func TestPowerSpectrum(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) / 64)
	}
	ps := PowerSpectrum(data)
	if len(ps) != 32 {
		t.Fatalf("expected 32 bins, got %d", len(ps))
	}
	peak := 0
	for k := range ps {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak != 4 {
		t.Errorf("expected peak at bin 4, got %d", peak)
	}
}

func TestPhasePortrait(t *testing.T) {
	snap := simulate(t, lab, 2)
	out := PhasePortrait(snap, 40, 12)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(lines))
	}
	if !strings.Contains(out, "•") {
		t.Error("no points plotted")
	}
	if PhasePortrait(dynamo.Snapshot{}, 40, 12) != "" {
		t.Error("empty snapshot should render nothing")
	}
}
