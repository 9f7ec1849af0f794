package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// State is the kinematic state of the wheel. Height is measured downward from
// the release point, so a descending wheel has positive Velocity.
type State struct {
	Height          float64
	Velocity        float64
	AngularVelocity float64
	Angle           float64
	Time            float64
}

// Wheel is an ideal Maxwell's wheel. It has no clock of its own: the caller
// decides when to Step and with which dt.
type Wheel struct {
	params Params
	floor  FloorMode

	state   State
	running bool

	ttb    float64
	hasTTB bool

	history *dynamo.History
}

type Option func(*Wheel)

func WithFloor(m FloorMode) Option {
	return func(w *Wheel) { w.floor = m }
}

// WithHistoryCapacity bounds the record log; 0 keeps every record.
func WithHistoryCapacity(n int) Option {
	return func(w *Wheel) { w.history = dynamo.NewHistory(n) }
}

func NewWheel(p Params, opts ...Option) *Wheel {
	w := &Wheel{
		params:  p.Clamp(),
		floor:   FloorReflect,
		history: dynamo.NewHistory(0),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Step advances the wheel by dt and appends one record. It returns false and
// leaves everything untouched when the wheel is paused, dt is not a positive
// finite number, or the parameters are degenerate.
func (w *Wheel) Step(dt float64) bool {
	if !w.running || !(dt > 0) || math.IsInf(dt, 0) {
		return false
	}
	a, ok := w.params.Acceleration()
	if !ok {
		return false
	}
	if a < 0 && w.state.Velocity > 0 {
		w.state.Velocity = 0
		w.state.AngularVelocity = 0
		return false
	}

	H := w.params.InitialHeight
	R := w.params.EffectiveRadius()
	h0, v0 := w.state.Height, w.state.Velocity

	v := v0 + a*dt
	h := h0 + v*dt

	if !w.hasTTB && v0 > 0 && h0 < H && h >= H {
		tau, found := FirstCrossing(h0, v0, a, H, dt)
		if !found {
			// Semi-implicit displacement overshoots the quadratic by ½·a·dt².
			tau = dt * (H - h0) / (h - h0)
		}
		w.ttb = w.state.Time + tau
		w.hasTTB = true
	}

	if h <= 0 {
		h = 0
		if v < 0 {
			switch w.floor {
			case FloorAbsorb:
				v = 0
			default:
				v = -v
			}
		}
	}
	if h >= H {
		h = H
		if v > 0 {
			v = -v
		}
	}

	w.state.Height = h
	w.state.Velocity = v
	w.state.AngularVelocity = v / R
	w.state.Angle += w.state.AngularVelocity * dt
	w.state.Time += dt

	ep, ekt, ekr := w.Energies()
	w.history.Append(dynamo.Record{
		Time:         w.state.Time,
		Height:       h,
		Velocity:     v,
		Potential:    ep,
		KineticTrans: ekt,
		KineticRot:   ekr,
	})
	return true
}

// Reset returns the wheel to rest at the top and pauses it.
func (w *Wheel) Reset(clearHistory bool) {
	w.state = State{}
	w.running = false
	w.ttb = 0
	w.hasTTB = false
	if clearHistory {
		w.history.Clear()
	}
}

func (w *Wheel) Start()        { w.running = true }
func (w *Wheel) Pause()        { w.running = false }
func (w *Wheel) Running() bool { return w.running }

func (w *Wheel) State() State { return w.state }

// TimeToBottom returns the interpolated instant the wheel first reached the
// lowest point in this run.
func (w *Wheel) TimeToBottom() (float64, bool) {
	return w.ttb, w.hasTTB
}

// Energies returns potential, translational and rotational kinetic energy
// for the current state.
func (w *Wheel) Energies() (ep, ekt, ekr float64) {
	p := w.params
	s := w.state
	ep = p.Mass * p.Gravity * s.Height
	ekt = 0.5 * p.Mass * s.Velocity * s.Velocity
	ekr = 0.5 * p.Inertia * s.AngularVelocity * s.AngularVelocity
	return ep, ekt, ekr
}

func (w *Wheel) Params() Params { return w.params }

func (w *Wheel) GetParams() map[string]float64 {
	out := make(map[string]float64, len(ParamBounds))
	for _, name := range ParamNames() {
		v, _ := w.params.Get(name)
		out[name] = v
	}
	return out
}

// SetParam clamps value into the parameter's bounds, applies it and resets
// the wheel. It returns the value actually applied.
func (w *Wheel) SetParam(name string, value float64) (float64, error) {
	b, ok := ParamBounds[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	value = b.Clamp(value)
	w.params, _ = w.params.With(name, value)
	w.Reset(true)
	return value, nil
}

func (w *Wheel) SetParams(p Params) {
	w.params = p.Clamp()
	w.Reset(true)
}

func (w *Wheel) SetFloor(m FloorMode) {
	w.floor = m
	w.Reset(true)
}

func (w *Wheel) Floor() FloorMode { return w.floor }

// History returns a deep copy of the record log.
func (w *Wheel) History() dynamo.Snapshot { return w.history.Snapshot() }

// Recent copies the last n records, or all of them when n <= 0.
func (w *Wheel) Recent(n int) dynamo.Snapshot {
	total := w.history.Len()
	if n <= 0 || n > total {
		n = total
	}
	records := make([]dynamo.Record, n)
	for i := range records {
		records[i] = w.history.At(total - n + i)
	}
	return dynamo.SnapshotOf(records)
}

func (w *Wheel) HistoryLen() int { return w.history.Len() }

func (w *Wheel) Last() (dynamo.Record, bool) { return w.history.Last() }

var _ dynamo.Stepper = (*Wheel)(nil)
