package hashchain

import (
	"errors"
)

var (
	ErrInvalidStepNum = errors.New("hashchain: step count out of range")
	// ErrInconsistentChain means the folded chain failed its own check
	// before compression. It is an internal error, not a verification result.
	ErrInconsistentChain = errors.New("hashchain: accumulated chain does not verify")
)

// ProvingError wraps every failure of Prover.Prove with the stage it came from.
type ProvingError struct {
	Op  string
	Err error
}

func (e *ProvingError) Error() string {
	return "hashchain: " + e.Op + ": " + e.Err.Error()
}

func (e *ProvingError) Unwrap() error {
	return e.Err
}
