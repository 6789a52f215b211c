package ivc

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
)

// tapState copies its inputs to its outputs. A step frame routes its output
// state through it so that the solver can hand the state back to the caller,
// see shape.apply.
func tapState(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) != len(outputs) {
		return fmt.Errorf("tap: %d inputs for %d outputs", len(inputs), len(outputs))
	}
	for i := range inputs {
		outputs[i].Set(inputs[i])
	}
	return nil
}

func init() {
	solver.RegisterHint(tapState)
}
