package physics

import "math"

const crossingEps = 1e-12

// FirstCrossing returns the earliest τ in [0, dt] with
// h0 + v0·τ + ½·a·τ² = target.
func FirstCrossing(h0, v0, a, target, dt float64) (float64, bool) {
	A := a / 2
	B := v0
	C := h0 - target

	if math.Abs(A) < crossingEps {
		if math.Abs(B) <= crossingEps {
			return 0, false
		}
		tau := -C / B
		if tau >= 0 && tau <= dt {
			return tau, true
		}
		return 0, false
	}

	D := B*B - 4*A*C
	if D < 0 {
		return 0, false
	}
	sq := math.Sqrt(D)
	r1 := (-B - sq) / (2 * A)
	r2 := (-B + sq) / (2 * A)

	best, found := 0.0, false
	for _, r := range [2]float64{r1, r2} {
		if r < 0 || r > dt {
			continue
		}
		if !found || r < best {
			best, found = r, true
		}
	}
	return best, found
}
