package ivc

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// frame wraps a single step: the incoming state is public, the step witness
// is private and the outgoing state is tapped by the solver.
type frame[C StepCircuit[C]] struct {
	Z    []frontend.Variable `gnark:",public"`
	Step C
}

func (me *frame[C]) Define(api frontend.API) error {
	out, err := me.Step.Synthesize(api, me.Z)
	if err != nil {
		return err
	}
	if len(out) != len(me.Z) {
		return fmt.Errorf("%w: step returned %d elements for arity %d", ErrShapeMismatch, len(out), len(me.Z))
	}
	taps, err := api.Compiler().NewHint(tapState, len(out), out...)
	if err != nil {
		return err
	}
	for i := range out {
		api.AssertIsEqual(taps[i], out[i])
	}
	return nil
}

// shape is a compiled step frame.
type shape[C StepCircuit[C]] struct {
	arity int
	ccs   constraint.ConstraintSystem
}

func compileShape[C StepCircuit[C]](step C) (*shape[C], error) {
	arity := step.Arity()
	if arity < 1 {
		return nil, fmt.Errorf("%w: arity %d", ErrShapeMismatch, arity)
	}
	placeholder := &frame[C]{Z: make([]frontend.Variable, arity), Step: step}
	ccs, err := frontend.Compile(FIELD, r1cs.NewBuilder, placeholder)
	if err != nil {
		return nil, fmt.Errorf("compile step frame: %w", err)
	}
	return &shape[C]{arity: arity, ccs: ccs}, nil
}

// apply solves one step on state z and returns the next state.
func (me *shape[C]) apply(step C, z []fr.Element) ([]fr.Element, error) {
	if step.Arity() != me.arity || len(z) != me.arity {
		return nil, fmt.Errorf("%w: arity %d, state of %d", ErrShapeMismatch, step.Arity(), len(z))
	}
	w, err := frontend.NewWitness(&frame[C]{Z: toVariables(z), Step: step}, FIELD)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWitnessUnsatisfied, err)
	}

	var next []fr.Element
	tap := func(_ *big.Int, inputs, outputs []*big.Int) error {
		next = make([]fr.Element, len(inputs))
		for i := range inputs {
			outputs[i].Set(inputs[i])
			next[i].SetBigInt(inputs[i])
		}
		return nil
	}
	if _, err := me.ccs.Solve(w, solver.OverrideHint(solver.GetHintID(tapState), tap)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWitnessUnsatisfied, err)
	}
	if len(next) != me.arity {
		return nil, fmt.Errorf("%w: tapped %d elements", ErrShapeMismatch, len(next))
	}
	return next, nil
}
