package ivc

import (
	"github.com/consensys/gnark-crypto/ecc"
)

// All tracks live in the BLS12-381 scalar field, the field of the hasher.
const CURVE = ecc.BLS12_381

var FIELD = CURVE.ScalarField()

// MAX_ARITY bounds the state length accepted when decoding a proof.
const MAX_ARITY = 1 << 10
