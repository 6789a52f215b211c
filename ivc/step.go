// Package ivc folds a sequence of step relations into one running state and
// compresses it into a constant-size Groth16 proof.
//
// Two tracks are carried side by side: the primary track with the real step
// circuit and a companion track, usually the TrivialCircuit.
package ivc

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/frontend"
)

// StepCircuit is a relation applied once per step. The exported
// frontend.Variable fields of the implementation are its private witness.
type StepCircuit[C any] interface {
	// Arity is the number of state elements consumed and produced.
	Arity() int
	// Synthesize constrains the witness against z and returns the next state.
	Synthesize(api frontend.API, z []frontend.Variable) ([]frontend.Variable, error)
	// Idle returns a new witness that satisfies the relation on state z. The
	// compression circuit uses it for slots past the last step and as
	// placeholder when compiling.
	Idle(z []fr.Element) C
}

// TrivialCircuit returns its state unchanged.
type TrivialCircuit struct{}

func (me *TrivialCircuit) Arity() int {
	return 1
}

func (me *TrivialCircuit) Synthesize(_ frontend.API, z []frontend.Variable) ([]frontend.Variable, error) {
	return z, nil
}

func (me *TrivialCircuit) Idle(_ []fr.Element) *TrivialCircuit {
	return me
}

func toVariables(z []fr.Element) []frontend.Variable {
	vars := make([]frontend.Variable, len(z))
	for i := range z {
		vars[i] = z[i].BigInt(new(big.Int))
	}
	return vars
}

func cloneState(z []fr.Element) []fr.Element {
	return append([]fr.Element(nil), z...)
}

func equalState(a, b []fr.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}
