package ivc

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
)

// compression replays up to len(Steps) steps of both tracks from the public
// initial states. Only the first NumSteps slots move the state, the rest must
// still be satisfied and are filled with Idle witnesses.
type compression[C StepCircuit[C], T StepCircuit[T]] struct {
	NumSteps    frontend.Variable   `gnark:",public"`
	Z0          []frontend.Variable `gnark:",public"`
	ZN          []frontend.Variable `gnark:",public"`
	Z0Companion []frontend.Variable `gnark:",public"`
	ZNCompanion []frontend.Variable `gnark:",public"`

	Steps      []C
	Companions []T
}

func newCompression[C StepCircuit[C], T StepCircuit[T]](step C, companion T, capacity int) *compression[C, T] {
	arity, carity := step.Arity(), companion.Arity()
	c := &compression[C, T]{
		Z0:          make([]frontend.Variable, arity),
		ZN:          make([]frontend.Variable, arity),
		Z0Companion: make([]frontend.Variable, carity),
		ZNCompanion: make([]frontend.Variable, carity),
		Steps:       make([]C, capacity),
		Companions:  make([]T, capacity),
	}
	for j := 0; j < capacity; j++ {
		c.Steps[j] = step.Idle(make([]fr.Element, arity))
		c.Companions[j] = companion.Idle(make([]fr.Element, carity))
	}
	return c
}

func (me *compression[C, T]) Define(api frontend.API) error {
	capacity := len(me.Steps)
	api.AssertIsLessOrEqual(me.NumSteps, capacity)
	api.AssertIsDifferent(me.NumSteps, 0)

	z := append([]frontend.Variable(nil), me.Z0...)
	zc := append([]frontend.Variable(nil), me.Z0Companion...)
	var active frontend.Variable = 1
	for j := 0; j < capacity; j++ {
		// active drops to 0 from slot NumSteps on and never comes back
		active = api.Mul(active, api.Sub(1, api.IsZero(api.Sub(me.NumSteps, j))))

		out, err := me.Steps[j].Synthesize(api, z)
		if err != nil {
			return fmt.Errorf("slot %d: %w", j, err)
		}
		outc, err := me.Companions[j].Synthesize(api, zc)
		if err != nil {
			return fmt.Errorf("slot %d companion: %w", j, err)
		}
		if len(out) != len(z) || len(outc) != len(zc) {
			return fmt.Errorf("%w: slot %d", ErrShapeMismatch, j)
		}
		for i := range z {
			z[i] = api.Select(active, out[i], z[i])
		}
		for i := range zc {
			zc[i] = api.Select(active, outc[i], zc[i])
		}
	}

	for i := range z {
		api.AssertIsEqual(z[i], me.ZN[i])
	}
	for i := range zc {
		api.AssertIsEqual(zc[i], me.ZNCompanion[i])
	}
	return nil
}

// CompressedSetup runs the circuit specific Groth16 setup of the compression
// circuit. Every call samples fresh keys.
func CompressedSetup[C StepCircuit[C], T StepCircuit[T]](pp *PublicParams[C, T]) (*ProvingKey, *VerifyingKey, error) {
	pk, vk, err := groth16.Setup(pp.compress)
	if err != nil {
		return nil, nil, fmt.Errorf("groth16 setup: %w", err)
	}
	return &ProvingKey{Key: pk, Digest: pp.digest},
		&VerifyingKey{
			Key:            vk,
			Arity:          uint32(pp.primary.arity),
			CompanionArity: uint32(pp.secondary.arity),
			Capacity:       uint32(pp.capacity),
			Digest:         pp.digest,
		}, nil
}

// Compress turns the accumulator into a constant size proof.
func Compress[C StepCircuit[C], T StepCircuit[T]](pp *PublicParams[C, T], pk *ProvingKey, acc *Accumulator[C, T], opts ...backend.ProverOption) (*CompressedProof, error) {
	if !pk.Digest.Equal(&pp.digest) || !acc.digest.Equal(&pp.digest) {
		return nil, ErrShapeMismatch
	}
	n := acc.NumSteps()
	if n < 1 || n > pp.capacity {
		return nil, fmt.Errorf("%w: %d steps, capacity %d", ErrCapacityExceeded, n, pp.capacity)
	}

	assignment := &compression[C, T]{
		NumSteps:    n,
		Z0:          toVariables(acc.z0),
		ZN:          toVariables(acc.zi),
		Z0Companion: toVariables(acc.z0c),
		ZNCompanion: toVariables(acc.zic),
		Steps:       make([]C, pp.capacity),
		Companions:  make([]T, pp.capacity),
	}
	copy(assignment.Steps, acc.steps)
	copy(assignment.Companions, acc.companions)
	for j := n; j < pp.capacity; j++ {
		assignment.Steps[j] = pp.step.Idle(acc.zi)
		assignment.Companions[j] = pp.companion.Idle(acc.zic)
	}

	w, err := frontend.NewWitness(assignment, FIELD)
	if err != nil {
		return nil, fmt.Errorf("compression witness: %w", err)
	}
	log := logger.Logger().With().Str("component", "ivc").Int("steps", n).Logger()
	log.Debug().Msg("compressing accumulator")
	proof, err := groth16.Prove(pp.compress, pk.Key, w, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWitnessUnsatisfied, err)
	}
	return &CompressedProof{
		Proof:       proof,
		ZN:          cloneState(acc.zi),
		ZNCompanion: cloneState(acc.zic),
		Digest:      pp.digest,
	}, nil
}

// CompressedProof is a Groth16 proof over the compression circuit together
// with the final states it claims.
type CompressedProof struct {
	Proof       groth16.Proof
	ZN          []fr.Element
	ZNCompanion []fr.Element
	Digest      fr.Element
}

// Verify checks that numSteps steps lead from (z0, z0c) to the claimed final
// states and returns them.
func (me *CompressedProof) Verify(vk *VerifyingKey, numSteps int, z0, z0c []fr.Element) ([]fr.Element, []fr.Element, error) {
	if me == nil || me.Proof == nil || vk == nil || vk.Key == nil {
		return nil, nil, ErrInvalidProof
	}
	if !me.Digest.Equal(&vk.Digest) {
		return nil, nil, ErrShapeMismatch
	}
	arity, carity := int(vk.Arity), int(vk.CompanionArity)
	if len(z0) != arity || len(me.ZN) != arity || len(z0c) != carity || len(me.ZNCompanion) != carity {
		return nil, nil, fmt.Errorf("%w: state lengths", ErrShapeMismatch)
	}
	if numSteps < 1 || numSteps > int(vk.Capacity) {
		return nil, nil, fmt.Errorf("%w: %d steps, capacity %d", ErrCapacityExceeded, numSteps, vk.Capacity)
	}

	public, err := publicWitness(numSteps, z0, me.ZN, z0c, me.ZNCompanion)
	if err != nil {
		return nil, nil, err
	}
	if err := groth16.Verify(me.Proof, vk.Key, public); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	return cloneState(me.ZN), cloneState(me.ZNCompanion), nil
}

// publicWitness lays out the public inputs in the declaration order of the
// compression circuit.
func publicWitness(numSteps int, z0, zn, z0c, znc []fr.Element) (witness.Witness, error) {
	nbPublic := 1 + len(z0) + len(zn) + len(z0c) + len(znc)
	values := make(chan any, nbPublic)
	values <- uint64(numSteps)
	for _, part := range [][]fr.Element{z0, zn, z0c, znc} {
		for i := range part {
			values <- part[i]
		}
	}
	close(values)

	w, err := witness.New(FIELD)
	if err != nil {
		return nil, err
	}
	if err := w.Fill(nbPublic, 0, values); err != nil {
		return nil, err
	}
	return w, nil
}
