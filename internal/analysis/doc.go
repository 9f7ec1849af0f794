// Package analysis derives reference values and summaries for wheel runs.
//
//   - [Reference]: closed-form acceleration, fall time, bottom speed, period
//   - [DominantPeriod]: oscillation period estimated from a history via FFT
//   - [PhasePortrait]: height/velocity phase plot rendered as text
//
// The closed forms assume the ideal model: constant acceleration on the way
// down, an elastic turn at the bottom and no losses.
package analysis
