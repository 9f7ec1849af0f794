// Package viz is the terminal front end of the wheel simulation.
//
// It implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live view. Frame ticks feed a fixed-step clock that
//     advances the wheel; the wheel is drawn on a Braille [Canvas] next to
//     the readouts, live charts and the parameter sliders.
//   - [App]: a preset menu that opens the live view.
//   - [Server]: the same menu served over SSH with Wish.
//
// # Key Bindings
//
//	s / p / space - Start, pause, toggle
//	r             - Reset to rest at the top
//	tab / ↑ ↓     - Select parameter
//	← → / + -     - Move the slider (inertia moves in decades)
//	enter         - Type a value (comma accepted as decimal point)
//	e             - Export height, velocity and energy charts as SVG
//	f             - Toggle floor mode (reflect / absorb)
//	t             - Cycle color themes
//	?             - Full help
//
// Changing a parameter or the floor mode clamps the value and resets the
// wheel.
package viz
