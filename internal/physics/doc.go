// Package physics models an ideal Maxwell's wheel: a disk on an axle that
// unwinds from two cords, trading potential energy for translation and spin.
//
// The wheel falls with constant acceleration
//
//	a = m·g·R² / (I + m·R²)
//
// and is advanced with semi-implicit Euler (velocity first, then height).
// Height is measured downward from the release point and confined to
// [0, InitialHeight]. At the bottom the cords rewind and velocity flips; at
// the top the [FloorMode] decides between an elastic bounce and a stop.
//
// The first instant the wheel reaches the bottom is located inside the step
// by solving the quadratic of motion, see [FirstCrossing].
//
// # Usage
//
//	w := physics.NewWheel(physics.DefaultParams())
//	w.Start()
//	for i := 0; i < 3000; i++ {
//	    w.Step(0.001)
//	}
//	if t, ok := w.TimeToBottom(); ok {
//	    fmt.Printf("T = %.4f s\n", t)
//	}
//
// A Wheel is not safe for concurrent use; hand [Wheel.History] snapshots to
// other goroutines.
package physics
