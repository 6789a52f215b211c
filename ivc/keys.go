package ivc

import (
	"encoding/binary"
	"fmt"
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend/groth16"
	groth16bls12381 "github.com/consensys/gnark/backend/groth16/bls12-381"
)

type ProvingKey struct {
	Key    groth16.ProvingKey
	Digest fr.Element
}

// VerifyingKey carries the Groth16 key of the compression circuit and the
// shape it was derived from.
type VerifyingKey struct {
	Key            groth16.VerifyingKey
	Arity          uint32
	CompanionArity uint32
	Capacity       uint32
	Digest         fr.Element
}

func (me *ProvingKey) WriteTo(w io.Writer) (int64, error) {
	enc := bls12381.NewEncoder(w)
	if err := enc.Encode(&me.Digest); err != nil {
		return enc.BytesWritten(), err
	}
	n, err := me.Key.WriteTo(w)
	return n + enc.BytesWritten(), err
}

func (me *ProvingKey) ReadFrom(r io.Reader) (int64, error) {
	dec := bls12381.NewDecoder(r)
	if err := dec.Decode(&me.Digest); err != nil {
		return dec.BytesRead(), err
	}
	me.Key = groth16.NewProvingKey(CURVE)
	n, err := me.Key.ReadFrom(r)
	return n + dec.BytesRead(), err
}

func (me *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	enc := bls12381.NewEncoder(w)
	if err := enc.Encode(&me.Digest); err != nil {
		return enc.BytesWritten(), err
	}
	buf := [12]byte{}
	binary.BigEndian.PutUint32(buf[0:4], me.Arity)
	binary.BigEndian.PutUint32(buf[4:8], me.CompanionArity)
	binary.BigEndian.PutUint32(buf[8:12], me.Capacity)
	if n, err := w.Write(buf[:]); err != nil {
		return int64(n) + enc.BytesWritten(), err
	}
	n, err := me.Key.WriteTo(w)
	return n + 12 + enc.BytesWritten(), err
}

func (me *VerifyingKey) ReadFrom(r io.Reader) (int64, error) {
	dec := bls12381.NewDecoder(r)
	if err := dec.Decode(&me.Digest); err != nil {
		return dec.BytesRead(), err
	}
	for _, v := range []*uint32{&me.Arity, &me.CompanionArity, &me.Capacity} {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}
	if me.Arity > MAX_ARITY || me.CompanionArity > MAX_ARITY {
		return dec.BytesRead(), fmt.Errorf("%w: arities %d and %d", ErrShapeMismatch, me.Arity, me.CompanionArity)
	}
	// the constant wire, NumSteps and four states
	key, err := readGroth16VerifyingKey(dec, 2+2*int(me.Arity+me.CompanionArity))
	if err != nil {
		return dec.BytesRead(), err
	}
	me.Key = key
	return dec.BytesRead(), nil
}

// readGroth16VerifyingKey decodes a key written by groth16.VerifyingKey.WriteTo
// for a circuit without commitments and nbWires public wires.
func readGroth16VerifyingKey(dec *bls12381.Decoder, nbWires int) (*groth16bls12381.VerifyingKey, error) {
	var vk groth16bls12381.VerifyingKey
	points := []any{&vk.G1.Alpha, &vk.G1.Beta, &vk.G2.Beta, &vk.G2.Gamma, &vk.G1.Delta, &vk.G2.Delta}
	for _, v := range points {
		if err := dec.Decode(v); err != nil {
			return nil, err
		}
	}
	var nbK uint32
	if err := dec.Decode(&nbK); err != nil {
		return nil, err
	}
	if int(nbK) != nbWires {
		return nil, fmt.Errorf("%w: %d public wires, expected %d", ErrShapeMismatch, nbK, nbWires)
	}
	vk.G1.K = make([]bls12381.G1Affine, nbK)
	for i := range vk.G1.K {
		if err := dec.Decode(&vk.G1.K[i]); err != nil {
			return nil, err
		}
	}
	// PublicAndCommitmentCommitted and the commitment keys
	for _, what := range []string{"committed wires", "commitment keys"} {
		var count uint32
		if err := dec.Decode(&count); err != nil {
			return nil, err
		}
		if count != 0 {
			return nil, fmt.Errorf("%w: %d %s", ErrShapeMismatch, count, what)
		}
	}
	vk.PublicAndCommitmentCommitted = [][]int{}
	if err := vk.Precompute(); err != nil {
		return nil, err
	}
	return &vk, nil
}

// WriteTo writes the digest, both final states and then the Groth16 proof.
func (me *CompressedProof) WriteTo(w io.Writer) (int64, error) {
	enc := bls12381.NewEncoder(w)
	if err := enc.Encode(&me.Digest); err != nil {
		return enc.BytesWritten(), err
	}
	var extra int64
	for _, state := range [][]fr.Element{me.ZN, me.ZNCompanion} {
		buf := [4]byte{}
		binary.BigEndian.PutUint32(buf[:], uint32(len(state)))
		if n, err := w.Write(buf[:]); err != nil {
			return int64(n) + extra + enc.BytesWritten(), err
		}
		extra += 4
		for i := range state {
			if err := enc.Encode(&state[i]); err != nil {
				return extra + enc.BytesWritten(), err
			}
		}
	}
	n, err := me.Proof.WriteTo(w)
	return n + extra + enc.BytesWritten(), err
}

func (me *CompressedProof) ReadFrom(r io.Reader) (int64, error) {
	dec := bls12381.NewDecoder(r)
	if err := dec.Decode(&me.Digest); err != nil {
		return dec.BytesRead(), err
	}
	states := [2][]fr.Element{}
	for s := range states {
		var size uint32
		if err := dec.Decode(&size); err != nil {
			return dec.BytesRead(), err
		}
		if size > MAX_ARITY {
			return dec.BytesRead(), fmt.Errorf("%w: state of %d elements", ErrInvalidProof, size)
		}
		states[s] = make([]fr.Element, size)
		for i := range states[s] {
			if err := dec.Decode(&states[s][i]); err != nil {
				return dec.BytesRead(), err
			}
		}
	}
	proof, err := readGroth16Proof(dec)
	if err != nil {
		return dec.BytesRead(), err
	}
	me.ZN, me.ZNCompanion, me.Proof = states[0], states[1], proof
	return dec.BytesRead(), nil
}

// readGroth16Proof decodes a proof written by groth16.Proof.WriteTo. The
// compression circuit has no commitments, so their count must be zero.
func readGroth16Proof(dec *bls12381.Decoder) (*groth16bls12381.Proof, error) {
	var proof groth16bls12381.Proof
	if err := dec.Decode(&proof.Ar); err != nil {
		return nil, err
	}
	if err := dec.Decode(&proof.Bs); err != nil {
		return nil, err
	}
	if err := dec.Decode(&proof.Krs); err != nil {
		return nil, err
	}
	var nbCommitments uint32
	if err := dec.Decode(&nbCommitments); err != nil {
		return nil, err
	}
	if nbCommitments != 0 {
		return nil, fmt.Errorf("%w: %d commitments", ErrInvalidProof, nbCommitments)
	}
	proof.Commitments = []bls12381.G1Affine{}
	if err := dec.Decode(&proof.CommitmentPok); err != nil {
		return nil, err
	}
	if !proof.CommitmentPok.IsInfinity() {
		return nil, fmt.Errorf("%w: commitment proof without commitments", ErrInvalidProof)
	}
	return &proof, nil
}
