package physics

import (
	"math"
	"testing"
)

func labParams() Params {
	return Params{Mass: 0.045, AxleRadius: 0.0075, Inertia: 5.25e-5, InitialHeight: 0.24, Gravity: 9.81}
}

func TestFloorModes(t *testing.T) {
	const dt = 0.001
	a, _ := labParams().Acceleration()
	// one step from just above the release point, still rising
	vAfter := -0.05 + a*dt

	tests := []struct {
		mode FloorMode
		want float64
	}{
		{FloorReflect, -vAfter},
		{FloorAbsorb, 0},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			w := NewWheel(labParams(), WithFloor(tt.mode))
			w.Start()
			w.state = State{Height: 1e-5, Velocity: -0.05}

			if !w.Step(dt) {
				t.Fatal("step was rejected")
			}
			s := w.State()
			if s.Height != 0 {
				t.Errorf("height = %v, want 0", s.Height)
			}
			if math.Abs(s.Velocity-tt.want) > 1e-15 {
				t.Errorf("velocity = %v, want %v", s.Velocity, tt.want)
			}
			if tt.mode == FloorReflect && s.Velocity <= 0 {
				t.Errorf("reflected velocity should point down, got %v", s.Velocity)
			}
			if s.AngularVelocity != s.Velocity/labParams().EffectiveRadius() {
				t.Errorf("ω = %v not tied to v = %v", s.AngularVelocity, s.Velocity)
			}
		})
	}
}

func TestCrossingFallsBackToInterpolation(t *testing.T) {
	const dt = 0.001
	p := labParams()
	H := p.InitialHeight
	a, _ := p.Acceleration()
	v0 := 0.5
	// the exact parabola stops ¼·a·dt² short of H at τ = dt, while the
	// semi-implicit update lands ¼·a·dt² past it
	h0 := H - v0*dt - 0.75*a*dt*dt

	if _, found := FirstCrossing(h0, v0, a, H, dt); found {
		t.Fatal("setup should leave the parabola short of the bottom")
	}

	w := NewWheel(p)
	w.Start()
	w.state = State{Height: h0, Velocity: v0, Time: 1}
	if !w.Step(dt) {
		t.Fatal("step was rejected")
	}

	ttb, ok := w.TimeToBottom()
	if !ok {
		t.Fatal("crossing was not recorded")
	}
	tau := dt * (v0*dt + 0.75*a*dt*dt) / (v0*dt + a*dt*dt)
	if math.Abs(ttb-(1+tau)) > 1e-12 {
		t.Errorf("time to bottom = %.15f, want %.15f", ttb, 1+tau)
	}
	if ttb <= 1 || ttb > 1+dt {
		t.Errorf("time to bottom %v is outside the step", ttb)
	}

	s := w.State()
	if s.Height != H || s.Velocity >= 0 {
		t.Errorf("expected clamp and reflect at the bottom, got %+v", s)
	}
}
