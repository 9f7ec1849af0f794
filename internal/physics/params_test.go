package physics

import (
	"math"
	"testing"
)

func TestDefaultParamsWithinBounds(t *testing.T) {
	p := DefaultParams()
	if p.Clamp() != p {
		t.Errorf("defaults are not within bounds: %+v", p)
	}
}

func TestAcceleration(t *testing.T) {
	p := Params{Mass: 0.045, AxleRadius: 0.0075, Inertia: 5.25e-5, InitialHeight: 0.24, Gravity: 9.81}
	a, ok := p.Acceleration()
	if !ok {
		t.Fatal("expected a valid acceleration")
	}
	if math.Abs(a-0.4512265758091993) > 1e-12 {
		t.Errorf("a = %v", a)
	}

	if _, ok := (Params{}).Acceleration(); ok {
		t.Error("zero params should be degenerate")
	}
}

func TestEffectiveRadius(t *testing.T) {
	if r := (Params{AxleRadius: 0}).EffectiveRadius(); r != MinAxleRadius {
		t.Errorf("EffectiveRadius() = %v, want %v", r, MinAxleRadius)
	}
	if r := (Params{AxleRadius: 0.01}).EffectiveRadius(); r != 0.01 {
		t.Errorf("EffectiveRadius() = %v", r)
	}
}

func TestClamp(t *testing.T) {
	p := Params{Mass: 10, AxleRadius: 0, Inertia: 1, InitialHeight: -1, Gravity: math.NaN()}.Clamp()
	want := Params{Mass: 1, AxleRadius: 0.002, Inertia: 1e-3, InitialHeight: 0, Gravity: 9}
	if p != want {
		t.Errorf("Clamp() = %+v, want %+v", p, want)
	}
}

func TestBoundsNormalize(t *testing.T) {
	lin := ParamBounds[ParamMass]
	log := ParamBounds[ParamInertia]

	tests := []struct {
		name string
		b    Bounds
		v    float64
		n    float64
	}{
		{"linear min", lin, 0.01, 0},
		{"linear max", lin, 1, 1},
		{"log min", log, 1e-5, 0},
		{"log mid", log, 1e-4, 0.5},
		{"log max", log, 1e-3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Normalize(tt.v); math.Abs(got-tt.n) > 1e-12 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.v, got, tt.n)
			}
			if got := tt.b.Denormalize(tt.n); math.Abs(got-tt.v) > 1e-12*math.Max(1, tt.v) {
				t.Errorf("Denormalize(%v) = %v, want %v", tt.n, got, tt.v)
			}
		})
	}
}

func TestParamsWithAndGet(t *testing.T) {
	p := DefaultParams()
	for _, name := range ParamNames() {
		q, ok := p.With(name, 0.5)
		if !ok {
			t.Fatalf("With(%q) not accepted", name)
		}
		if v, _ := q.Get(name); v != 0.5 {
			t.Errorf("Get(%q) = %v", name, v)
		}
	}
	if _, ok := p.With("length", 1); ok {
		t.Error("unknown name accepted")
	}
}

func TestParseFloorMode(t *testing.T) {
	tests := []struct {
		in   string
		want FloorMode
		err  bool
	}{
		{"", FloorReflect, false},
		{"reflect", FloorReflect, false},
		{"Absorb", FloorAbsorb, false},
		{"sticky", FloorReflect, true},
	}
	for _, tt := range tests {
		got, err := ParseFloorMode(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseFloorMode(%q) = %v, %v", tt.in, got, err)
		}
		if err == nil && got.String() == "" {
			t.Errorf("empty String() for %v", got)
		}
	}
}
