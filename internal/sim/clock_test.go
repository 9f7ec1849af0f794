package sim

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(0.001, 0)

	if n := c.Advance(16 * time.Millisecond); n != 16 {
		t.Errorf("expected 16 steps, got %d", n)
	}
	if n := c.Advance(500 * time.Microsecond); n != 0 {
		t.Errorf("expected 0 steps, got %d", n)
	}
	if c.Pending() != 500*time.Microsecond {
		t.Errorf("expected 0.5ms pending, got %v", c.Pending())
	}
	if n := c.Advance(500 * time.Microsecond); n != 1 {
		t.Errorf("expected carry-over step, got %d", n)
	}
	if c.Pending() != 0 {
		t.Errorf("expected nothing pending, got %v", c.Pending())
	}
}

func TestClockCatchUpLimit(t *testing.T) {
	c := NewClock(0.001, 250)

	if n := c.Advance(2 * time.Second); n != 250 {
		t.Errorf("expected capped 250 steps, got %d", n)
	}
	if c.Pending() != 0 {
		t.Errorf("surplus should be dropped, got %v pending", c.Pending())
	}
}

func TestClockIgnoresNegativeElapsed(t *testing.T) {
	c := NewClock(0.001, 0)
	if n := c.Advance(-time.Second); n != 0 {
		t.Errorf("expected 0 steps, got %d", n)
	}
}

func TestClockDrive(t *testing.T) {
	c := NewClock(0.1, 0)
	st := &countingStepper{}
	st.Start()

	if got := c.Drive(time.Second, st); got != 10 {
		t.Errorf("expected 10 accepted steps, got %d", got)
	}
	if c.Dt() != 0.1 {
		t.Errorf("Dt() = %v", c.Dt())
	}

	c.Advance(50 * time.Millisecond)
	c.Reset()
	if c.Pending() != 0 {
		t.Error("Reset left time pending")
	}
}
