//go:build !icicle

// Package gpu selects the Groth16 prover backend. Building with the icicle
// tag enables GPU proving.
package gpu

import (
	"github.com/consensys/gnark/backend"
)

const HasIcicle = false

func ProverOptions() []backend.ProverOption {
	return nil
}
