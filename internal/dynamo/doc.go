// Package dynamo provides the shared simulation primitives.
//
// The package defines the types every other package exchanges:
//
//   - [Record]: one accepted step (kinematics plus derived energies)
//   - [History]: append-only record log, optionally bounded
//   - [Snapshot]: column-oriented deep copy of a history for export
//   - [Stepper]: anything advanced by a fixed timestep
//   - [Metric], [Observer]: per-record hooks used by the simulator
//
// # Example
//
//	h := dynamo.NewHistory(0)
//	h.Append(dynamo.Record{Time: 0.001, Height: 1e-7})
//	snap := h.Snapshot()
//
// # Thread Safety
//
// History is NOT thread-safe. The owner serializes Append and Clear;
// other goroutines must work on a Snapshot.
package dynamo
