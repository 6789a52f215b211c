// Package hashchain proves and verifies that a value is the end of a Poseidon2
// hash chain of a given length started from a public initial value.
package hashchain

import (
	"sync"

	"github.com/eon-protocol/hashchain/circuits/chain"
	"github.com/eon-protocol/hashchain/ivc"
)

type (
	Params          = ivc.PublicParams[*chain.Circuit, *ivc.TrivialCircuit]
	Accumulator     = ivc.Accumulator[*chain.Circuit, *ivc.TrivialCircuit]
	CompressedProof = ivc.CompressedProof
	VerifyingKey    = ivc.VerifyingKey
)

// NewParams compiles the chain circuits for chains of up to capacity - 1
// non-final steps.
func NewParams(capacity int) (*Params, error) {
	return ivc.Setup(&chain.Circuit{}, &ivc.TrivialCircuit{}, capacity)
}

// DefaultParams is built on first use and shared by the whole process.
var DefaultParams = sync.OnceValues(func() (*Params, error) {
	return NewParams(DEFAULT_CAPACITY)
})
