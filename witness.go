package hashchain

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/eon-protocol/hashchain/circuits/chain"
	"github.com/eon-protocol/hashchain/circuits/hasher"
)

func initialState(initValue uint64) []fr.Element {
	return []fr.Element{fr.NewElement(1), fr.NewElement(initValue)}
}

func companionState() []fr.Element {
	return make([]fr.Element, COMPANION_ARITY)
}

// chainValues returns v_0 .. v_stepNum with v_0 = initValue and
// v_k = Compress(k, v_{k-1}).
func chainValues(initValue uint64, stepNum int) []fr.Element {
	vals := make([]fr.Element, stepNum+1)
	vals[0].SetUint64(initValue)
	for k := 1; k <= stepNum; k++ {
		vals[k] = hasher.Compress(fr.NewElement(uint64(k)), vals[k-1])
	}
	return vals
}

// ChainValue returns v_stepNum, the value the final step receives. A
// negative stepNum is treated as 0.
func ChainValue(initValue uint64, stepNum int) fr.Element {
	vals := chainValues(initValue, max(stepNum, 0))
	return vals[len(vals)-1]
}

// FinalState is the state a valid proof for (initValue, stepNum) claims:
// the padding index 1 and the hash of (stepNum + 1, v_stepNum).
func FinalState(initValue uint64, stepNum int) []fr.Element {
	stepNum = max(stepNum, 0)
	return []fr.Element{
		fr.NewElement(1),
		hasher.Compress(fr.NewElement(uint64(stepNum+1)), ChainValue(initValue, stepNum)),
	}
}

// witnesses derives stepNum non-final witnesses (0, k, v_{k-1}) followed by
// the final one (1, 0, v_stepNum).
func witnesses(initValue uint64, stepNum int) []*chain.Circuit {
	vals := chainValues(initValue, stepNum)
	ws := make([]*chain.Circuit, 0, stepNum+1)
	for k := 1; k <= stepNum; k++ {
		ws = append(ws, chain.NewCircuit(false, uint64(k), vals[k-1]))
	}
	return append(ws, chain.NewCircuit(true, 0, vals[stepNum]))
}
