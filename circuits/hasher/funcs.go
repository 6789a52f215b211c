// native (off-circuit) Poseidon hasher functions
package hasher

import (
	"log"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Compress runs the native Poseidon2 permutation on (x,y) and returns
// perm([x,y])[1] + y, matching the circuit's Compress semantics (t=2).
func Compress(x, y fr.Element) fr.Element {
	vars := [2]fr.Element{x, y}
	if err := GetPermutation().Permutation(vars[:]); err != nil {
		log.Fatalln(err)
	}
	var ret fr.Element
	ret.Add(&vars[1], &y)
	return ret
}

// Sum folds a sequence using Compress(acc, v) starting from zero.
func Sum(val ...fr.Element) fr.Element {
	var ret fr.Element
	for _, v := range val {
		ret = Compress(ret, v)
	}
	return ret
}

// SumUint64 is Sum over small integers, used for shape digests.
func SumUint64(val ...uint64) fr.Element {
	elems := make([]fr.Element, len(val))
	for i, v := range val {
		elems[i].SetUint64(v)
	}
	return Sum(elems...)
}
