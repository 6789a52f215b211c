package ivc

import "errors"

var (
	// ErrShapeMismatch is returned when a circuit, accumulator, key or proof
	// was built for different public parameters.
	ErrShapeMismatch = errors.New("ivc: shape does not match the public parameters")
	// ErrWitnessUnsatisfied is returned when a step witness violates its relation.
	ErrWitnessUnsatisfied = errors.New("ivc: step witness does not satisfy the relation")
	// ErrCapacityExceeded is returned when a step count does not fit the compression circuit.
	ErrCapacityExceeded = errors.New("ivc: step count outside the compression capacity")
	// ErrAccumulatorMismatch is returned when an accumulator does not replay to its own state.
	ErrAccumulatorMismatch = errors.New("ivc: accumulator does not match the claimed computation")
	ErrInvalidProof        = errors.New("ivc: invalid compressed proof")
)
