package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a record with NaN or Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnknownParam indicates a parameter name the system does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrInvalidStep indicates a non-positive or non-finite timestep or duration.
	ErrInvalidStep = errors.New("dynamo: timestep and duration must be positive")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrTooFewSamples indicates a history too short to plot or analyze.
	ErrTooFewSamples = errors.New("dynamo: not enough samples")
)
