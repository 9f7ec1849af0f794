package viz

import "math"

// ring is a precomputed sin/cos table over one turn, linearly interpolated.
// Drawing only needs a dot's worth of precision, and the wheel rim and
// spokes are redrawn every frame.
type ring struct {
	sin []float64
	cos []float64
	n   int
}

// 1024 entries is about 0.006 rad, well under one Braille dot at any radius
// the canvas can show.
var unitRing = newRing(1024)

func newRing(n int) *ring {
	t := &ring{
		sin: make([]float64, n),
		cos: make([]float64, n),
		n:   n,
	}
	for i := 0; i < n; i++ {
		a := float64(i) * 2 * math.Pi / float64(n)
		t.sin[i], t.cos[i] = math.Sincos(a)
	}
	return t
}

func (t *ring) SinCos(x float64) (sin, cos float64) {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := idx - float64(i)

	i0 := i % t.n
	i1 := (i + 1) % t.n

	sin = t.sin[i0]*(1-frac) + t.sin[i1]*frac
	cos = t.cos[i0]*(1-frac) + t.cos[i1]*frac
	return sin, cos
}
