package ivc

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Accumulator is the running state of an incremental computation. It
// records every applied witness so the compression circuit can replay them.
// Steps must be folded in order and an Accumulator is not safe for
// concurrent use.
type Accumulator[C StepCircuit[C], T StepCircuit[T]] struct {
	digest fr.Element

	z0, z0c []fr.Element
	zi, zic []fr.Element

	steps      []C
	companions []T
}

// NewAccumulator starts a computation at (z0, z0c) and applies the first
// step of both tracks.
func NewAccumulator[C StepCircuit[C], T StepCircuit[T]](pp *PublicParams[C, T], c0 C, t0 T, z0, z0c []fr.Element) (*Accumulator[C, T], error) {
	if len(z0) != pp.primary.arity || len(z0c) != pp.secondary.arity {
		return nil, fmt.Errorf("%w: initial states of %d and %d", ErrShapeMismatch, len(z0), len(z0c))
	}
	acc := &Accumulator[C, T]{
		digest: pp.digest,
		z0:     cloneState(z0),
		z0c:    cloneState(z0c),
		zi:     cloneState(z0),
		zic:    cloneState(z0c),
	}
	if err := acc.Fold(pp, c0, t0); err != nil {
		return nil, err
	}
	return acc, nil
}

// Fold applies one more step of both tracks. On error the accumulator is
// left untouched.
func (me *Accumulator[C, T]) Fold(pp *PublicParams[C, T], c C, t T) error {
	if !me.digest.Equal(&pp.digest) {
		return ErrShapeMismatch
	}
	zi, err := pp.primary.apply(c, me.zi)
	if err != nil {
		return fmt.Errorf("step %d: %w", len(me.steps), err)
	}
	zic, err := pp.secondary.apply(t, me.zic)
	if err != nil {
		return fmt.Errorf("step %d companion: %w", len(me.steps), err)
	}
	me.zi, me.zic = zi, zic
	me.steps = append(me.steps, c)
	me.companions = append(me.companions, t)
	return nil
}

// NumSteps is the number of steps folded so far.
func (me *Accumulator[C, T]) NumSteps() int {
	return len(me.steps)
}

// State returns copies of the current states of both tracks.
func (me *Accumulator[C, T]) State() ([]fr.Element, []fr.Element) {
	return cloneState(me.zi), cloneState(me.zic)
}

// Verify replays the recorded steps from (z0, z0c) and checks that they
// reach the current states after exactly numSteps steps.
func (me *Accumulator[C, T]) Verify(pp *PublicParams[C, T], numSteps int, z0, z0c []fr.Element) ([]fr.Element, []fr.Element, error) {
	if !me.digest.Equal(&pp.digest) {
		return nil, nil, ErrShapeMismatch
	}
	if numSteps != len(me.steps) {
		return nil, nil, fmt.Errorf("%w: %d steps claimed, %d folded", ErrAccumulatorMismatch, numSteps, len(me.steps))
	}
	if !equalState(z0, me.z0) || !equalState(z0c, me.z0c) {
		return nil, nil, fmt.Errorf("%w: initial state", ErrAccumulatorMismatch)
	}

	z, zc := cloneState(z0), cloneState(z0c)
	for j := range me.steps {
		var err error
		if z, err = pp.primary.apply(me.steps[j], z); err != nil {
			return nil, nil, fmt.Errorf("replay step %d: %w", j, err)
		}
		if zc, err = pp.secondary.apply(me.companions[j], zc); err != nil {
			return nil, nil, fmt.Errorf("replay step %d companion: %w", j, err)
		}
	}
	if !equalState(z, me.zi) || !equalState(zc, me.zic) {
		return nil, nil, fmt.Errorf("%w: final state", ErrAccumulatorMismatch)
	}
	return z, zc, nil
}
