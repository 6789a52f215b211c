// Package chain defines the step relation of the Poseidon2 hash chain.
package chain

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/frontend"

	"github.com/eon-protocol/hashchain/circuits/hasher"
)

// ARITY is the size of the public state (i, v).
const ARITY = 2

// Circuit is one step of the chain. IsFinal is 1 on the last step only, which
// releases the index check; the value check is always enforced.
type Circuit struct {
	IsFinal frontend.Variable
	I       frontend.Variable
	V       frontend.Variable
}

// NewCircuit returns the witness for one step.
func NewCircuit(isFinal bool, i uint64, v fr.Element) *Circuit {
	flag := 0
	if isFinal {
		flag = 1
	}
	return &Circuit{
		IsFinal: flag,
		I:       new(big.Int).SetUint64(i),
		V:       v.BigInt(new(big.Int)),
	}
}

func (me *Circuit) Arity() int {
	return ARITY
}

// Synthesize enforces
//
//	IsFinal * (1 - IsFinal) == 0
//	(I - z[0]) * (1 - IsFinal) == 0
//	V == z[1]
//
// and returns (I + 1, Compress(z[0], z[1])).
func (me *Circuit) Synthesize(api frontend.API, z []frontend.Variable) ([]frontend.Variable, error) {
	if len(z) != ARITY {
		return nil, fmt.Errorf("chain: expected %d inputs, got %d", ARITY, len(z))
	}

	api.AssertIsBoolean(me.IsFinal)
	notFinal := api.Sub(1, me.IsFinal)
	api.AssertIsEqual(api.Mul(api.Sub(me.I, z[0]), notFinal), 0)
	api.AssertIsEqual(me.V, z[1])

	perm, err := hasher.NewPoseidon2FromParameters(api)
	if err != nil {
		return nil, err
	}
	// the index output of the final step is padding
	iNext := api.Add(me.I, 1)
	vNext := perm.Compress(z[0], z[1])

	return []frontend.Variable{iNext, vNext}, nil
}

// Idle returns a witness that satisfies the relation on state z without
// reading its index, so it can fill unused slots.
func (me *Circuit) Idle(z []fr.Element) *Circuit {
	return NewCircuit(true, 0, z[1])
}
