package chain

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"

	"github.com/eon-protocol/hashchain/circuits/hasher"
)

// stepHarness exposes one step with its incoming and outgoing state public.
type stepHarness struct {
	Z    [ARITY]frontend.Variable `gnark:",public"`
	Out  [ARITY]frontend.Variable `gnark:",public"`
	Step Circuit
}

func (c *stepHarness) Define(api frontend.API) error {
	out, err := c.Step.Synthesize(api, c.Z[:])
	if err != nil {
		return err
	}
	for i := range out {
		api.AssertIsEqual(out[i], c.Out[i])
	}
	return nil
}

func harness(step *Circuit, i uint64, v fr.Element, outI uint64, outV fr.Element) *stepHarness {
	return &stepHarness{
		Z:    [ARITY]frontend.Variable{i, v.String()},
		Out:  [ARITY]frontend.Variable{outI, outV.String()},
		Step: *step,
	}
}

func TestStep_NonFinal(t *testing.T) {
	assert := test.NewAssert(t)

	var v fr.Element
	v.SetUint64(100)
	next := hasher.Compress(fr.NewElement(3), v)
	var wrong fr.Element
	wrong.SetUint64(101)

	assert.CheckCircuit(
		&stepHarness{},
		test.WithValidAssignment(harness(NewCircuit(false, 3, v), 3, v, 4, next)),
		// index differs from z[0]
		test.WithInvalidAssignment(harness(NewCircuit(false, 4, v), 3, v, 5, next)),
		// value differs from z[1]
		test.WithInvalidAssignment(harness(NewCircuit(false, 3, wrong), 3, v, 4, next)),
		// output not the hash of the incoming state
		test.WithInvalidAssignment(harness(NewCircuit(false, 3, v), 3, v, 4, wrong)),
		test.WithCurves(ecc.BLS12_381),
		test.WithBackends(backend.GROTH16),
	)
}

func TestStep_FinalReleasesIndex(t *testing.T) {
	assert := test.NewAssert(t)

	var v fr.Element
	v.SetRandom()
	next := hasher.Compress(fr.NewElement(5), v)

	assert.CheckCircuit(
		&stepHarness{},
		test.WithValidAssignment(harness(NewCircuit(true, 0, v), 5, v, 1, next)),
		test.WithValidAssignment(harness(NewCircuit(true, 77, v), 5, v, 78, next)),
		// the value check still holds on the final step
		test.WithInvalidAssignment(harness(NewCircuit(true, 0, fr.NewElement(1)), 5, v, 1, next)),
		test.WithCurves(ecc.BLS12_381),
		test.WithBackends(backend.GROTH16),
	)
}

func TestStep_FlagMustBeBoolean(t *testing.T) {
	var v fr.Element
	v.SetUint64(9)
	step := NewCircuit(false, 2, v)
	step.IsFinal = 2
	err := test.IsSolved(&stepHarness{}, harness(step, 3, v, 3, hasher.Compress(fr.NewElement(3), v)), ecc.BLS12_381.ScalarField())
	if err == nil {
		t.Fatal("IsFinal = 2 accepted")
	}
}

func TestIdle_SatisfiesAnyState(t *testing.T) {
	for it := 0; it < 4; it++ {
		var i, v fr.Element
		i.SetRandom()
		v.SetRandom()
		z := []fr.Element{i, v}
		step := (&Circuit{}).Idle(z)
		next := hasher.Compress(i, v)
		w := &stepHarness{
			Z:    [ARITY]frontend.Variable{i.String(), v.String()},
			Out:  [ARITY]frontend.Variable{1, next.String()},
			Step: *step,
		}
		if err := test.IsSolved(&stepHarness{}, w, ecc.BLS12_381.ScalarField()); err != nil {
			t.Fatalf("iteration %d: %v", it, err)
		}
	}
}

func TestCircuit_Arity(t *testing.T) {
	if n := (&Circuit{}).Arity(); n != 2 {
		t.Fatalf("arity %d", n)
	}
	if _, err := (&Circuit{}).Synthesize(nil, make([]frontend.Variable, 3)); err == nil {
		t.Fatal("wrong state length accepted")
	}
}
