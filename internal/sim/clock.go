package sim

import (
	"math"
	"time"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Clock converts real elapsed time into a whole number of fixed steps.
// Leftover time below one step carries over to the next frame. When a frame
// would need more than maxCatchUp steps the surplus is dropped, so a stalled
// terminal does not cause a burst of simulated time.
type Clock struct {
	step       time.Duration
	maxCatchUp int
	acc        time.Duration
}

// NewClock returns a clock for a fixed step of dt seconds. maxCatchUp <= 0
// removes the cap.
func NewClock(dt float64, maxCatchUp int) *Clock {
	step := time.Duration(math.Round(dt * float64(time.Second)))
	if step <= 0 {
		step = time.Millisecond
	}
	if maxCatchUp < 0 {
		maxCatchUp = 0
	}
	return &Clock{step: step, maxCatchUp: maxCatchUp}
}

// Dt is the fixed step in seconds.
func (c *Clock) Dt() float64 { return c.step.Seconds() }

// Advance adds elapsed to the accumulator and returns the number of steps
// that are now due.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		c.acc += elapsed
	}
	n := int(c.acc / c.step)
	if c.maxCatchUp > 0 && n > c.maxCatchUp {
		c.acc = 0
		return c.maxCatchUp
	}
	c.acc -= time.Duration(n) * c.step
	return n
}

// Drive advances the clock and steps s once per due step. It returns the
// number of steps s accepted.
func (c *Clock) Drive(elapsed time.Duration, s dynamo.Stepper) int {
	n := c.Advance(elapsed)
	dt := c.Dt()
	accepted := 0
	for i := 0; i < n; i++ {
		if s.Step(dt) {
			accepted++
		}
	}
	return accepted
}

// Pending is the accumulated time not yet turned into steps.
func (c *Clock) Pending() time.Duration { return c.acc }

func (c *Clock) Reset() { c.acc = 0 }
