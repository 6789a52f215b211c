// Centralizes Poseidon2 parameters for both native and circuit code.
package hasher

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
)

const WIDTH = 2
const ROUND_FULL = 8
const ROUND_PARTIAL = 56
const USESEED = true
const SEED = "EON_HASHCHAIN_POSEIDON2_SEED"

// GetPermutation returns a native Poseidon2 permutation using the parameters above.
var GetPermutation = sync.OnceValue(func() *poseidon2.Permutation {
	if USESEED {
		return poseidon2.NewPermutationWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)
	}
	return poseidon2.NewPermutation(WIDTH, ROUND_FULL, ROUND_PARTIAL)
})

// getParameters returns the round keys as circuit constants. They only depend
// on the field and the parameters above, so every gadget shares one copy.
var getParameters = sync.OnceValue(func() parameters {
	var concrete *poseidon2.Parameters
	if USESEED {
		concrete = poseidon2.NewParametersWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)
	} else {
		concrete = poseidon2.NewParameters(WIDTH, ROUND_FULL, ROUND_PARTIAL)
	}
	params := parameters{
		width:           WIDTH,
		degreeSBox:      poseidon2.DegreeSBox(),
		nbFullRounds:    ROUND_FULL,
		nbPartialRounds: ROUND_PARTIAL,
		roundKeys:       make([][]big.Int, len(concrete.RoundKeys)),
	}
	for i := range params.roundKeys {
		params.roundKeys[i] = make([]big.Int, len(concrete.RoundKeys[i]))
		for j := range params.roundKeys[i] {
			concrete.RoundKeys[i][j].BigInt(&params.roundKeys[i][j])
		}
	}
	return params
})
