package ivc

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
	"golang.org/x/sync/errgroup"

	"github.com/eon-protocol/hashchain/circuits/hasher"
)

// PublicParams holds the compiled shapes of both tracks and of the
// compression circuit. It does not depend on any chain data and is safe for
// concurrent use once built.
type PublicParams[C StepCircuit[C], T StepCircuit[T]] struct {
	primary   *shape[C]
	secondary *shape[T]
	compress  constraint.ConstraintSystem

	step      C
	companion T
	capacity  int
	digest    fr.Element
}

// Setup compiles the step frames and the compression circuit for up to
// capacity steps. step and companion only provide the shape through their
// Idle witnesses.
func Setup[C StepCircuit[C], T StepCircuit[T]](step C, companion T, capacity int) (*PublicParams[C, T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, capacity)
	}
	if step.Arity() < 1 || companion.Arity() < 1 {
		return nil, fmt.Errorf("%w: arities %d and %d", ErrShapeMismatch, step.Arity(), companion.Arity())
	}
	log := logger.Logger().With().Str("component", "ivc").Int("capacity", capacity).Logger()

	pp := &PublicParams[C, T]{step: step, companion: companion, capacity: capacity}
	// Compilation writes into the placeholders, every circuit gets its own.
	var g errgroup.Group
	g.Go(func() (err error) {
		pp.primary, err = compileShape(step.Idle(make([]fr.Element, step.Arity())))
		return
	})
	g.Go(func() (err error) {
		pp.secondary, err = compileShape(companion.Idle(make([]fr.Element, companion.Arity())))
		return
	})
	g.Go(func() (err error) {
		placeholder := newCompression[C, T](step, companion, capacity)
		pp.compress, err = frontend.Compile(FIELD, r1cs.NewBuilder, placeholder)
		if err != nil {
			err = fmt.Errorf("compile compression circuit: %w", err)
		}
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pp.digest = hasher.SumUint64(
		uint64(pp.primary.arity),
		uint64(pp.secondary.arity),
		uint64(pp.primary.ccs.GetNbConstraints()),
		uint64(pp.secondary.ccs.GetNbConstraints()),
		uint64(capacity),
		uint64(pp.compress.GetNbConstraints()),
		uint64(pp.compress.GetNbPublicVariables()),
	)
	log.Debug().
		Int("step_constraints", pp.primary.ccs.GetNbConstraints()).
		Int("companion_constraints", pp.secondary.ccs.GetNbConstraints()).
		Int("compression_constraints", pp.compress.GetNbConstraints()).
		Str("digest", pp.digest.String()).
		Msg("public parameters ready")
	return pp, nil
}

func (me *PublicParams[C, T]) Arity() int {
	return me.primary.arity
}

func (me *PublicParams[C, T]) CompanionArity() int {
	return me.secondary.arity
}

// Capacity is the largest step count the compression circuit accepts.
func (me *PublicParams[C, T]) Capacity() int {
	return me.capacity
}

// Digest identifies the shapes; keys, accumulators and proofs carry it.
func (me *PublicParams[C, T]) Digest() fr.Element {
	return me.digest
}

func (me *PublicParams[C, T]) NbConstraints() int {
	return me.compress.GetNbConstraints()
}
