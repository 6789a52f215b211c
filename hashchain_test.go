package hashchain

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/hashchain/circuits/hasher"
	"github.com/eon-protocol/hashchain/ivc"
)

func prove(t testing.TB, initValue uint64, stepNum int, opts ...Option) (*CompressedProof, *VerifyingKey) {
	t.Helper()
	proof, vk, err := NewProver(initValue, stepNum, opts...).Prove()
	require.NoError(t, err)
	return proof, vk
}

func TestProveVerify_Completeness(t *testing.T) {
	for _, n := range []int{0, 1, 4, 8, 16} {
		t.Run(fmt.Sprintf("step_num=%d", n), func(t *testing.T) {
			proof, vk := prove(t, 100, n)
			require.True(t, NewVerifier(vk).Verify(100, n, proof))
			require.Equal(t, FinalState(100, n), proof.ZN)
		})
	}
}

func TestVerify_RejectsTamperedStatement(t *testing.T) {
	proof, vk := prove(t, 100, 4)
	v := NewVerifier(vk)
	require.True(t, v.Verify(100, 4, proof))

	t.Run("init", func(t *testing.T) {
		require.False(t, v.Verify(101, 4, proof))
		require.False(t, v.Verify(0, 4, proof))
	})
	t.Run("length", func(t *testing.T) {
		require.False(t, v.Verify(100, 3, proof))
		require.False(t, v.Verify(100, 5, proof))
		require.False(t, v.Verify(100, -1, proof))
		require.False(t, v.Verify(100, DEFAULT_CAPACITY, proof))
	})
	t.Run("claimed output", func(t *testing.T) {
		tampered := *proof
		tampered.ZN = FinalState(100, 5)
		require.False(t, v.Verify(100, 4, &tampered))
	})
	t.Run("nil proof", func(t *testing.T) {
		require.False(t, v.Verify(100, 4, nil))
	})
	t.Run("foreign key", func(t *testing.T) {
		_, vk2 := prove(t, 100, 4)
		require.False(t, NewVerifier(vk2).Verify(100, 4, proof))
	})
}

func TestVerify_RejectsTamperedBytes(t *testing.T) {
	proof, vk := prove(t, 100, 4)
	v := NewVerifier(vk)

	var buf bytes.Buffer
	_, err := proof.WriteTo(&buf)
	require.NoError(t, err)
	encoded := buf.Bytes()

	var decoded CompressedProof
	_, err = decoded.ReadFrom(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.True(t, v.Verify(100, 4, &decoded))

	for i := range encoded {
		for _, bit := range []byte{0x01, 0x80} {
			raw := bytes.Clone(encoded)
			raw[i] ^= bit
			var tampered CompressedProof
			if _, err := tampered.ReadFrom(bytes.NewReader(raw)); err != nil {
				continue
			}
			require.False(t, v.Verify(100, 4, &tampered), "byte %d bit %#x accepted", i, bit)
		}
	}
}

func TestVerify_RejectsTamperedKeyBytes(t *testing.T) {
	proof, vk := prove(t, 100, 4)

	var buf bytes.Buffer
	_, err := vk.WriteTo(&buf)
	require.NoError(t, err)
	encoded := buf.Bytes()

	var decoded VerifyingKey
	_, err = decoded.ReadFrom(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.True(t, NewVerifier(&decoded).Verify(100, 4, proof))

	// Capacity only bounds the step counts tried before the pairing check
	capacity := fr.Bytes + 8
	for i := range encoded {
		if i >= capacity && i < capacity+4 {
			continue
		}
		raw := bytes.Clone(encoded)
		raw[i] ^= 0x01
		var tampered VerifyingKey
		if _, err := tampered.ReadFrom(bytes.NewReader(raw)); err != nil {
			continue
		}
		require.False(t, NewVerifier(&tampered).Verify(100, 4, proof), "byte %d accepted", i)
	}

	raw := bytes.Clone(encoded)
	raw[capacity] ^= 0x01
	var widened VerifyingKey
	_, err = widened.ReadFrom(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Greater(t, widened.Capacity, vk.Capacity)
	v := NewVerifier(&widened)
	require.True(t, v.Verify(100, 4, proof))
	require.False(t, v.Verify(100, DEFAULT_CAPACITY, proof))
}

func TestScenario(t *testing.T) {
	v := fr.NewElement(100)
	for k := uint64(1); k <= 4; k++ {
		v = hasher.Compress(fr.NewElement(k), v)
	}
	require.Equal(t, v, ChainValue(100, 4))

	ws := NewProver(100, 4).Witnesses()
	require.Len(t, ws, 5)
	for k, w := range ws[:4] {
		require.EqualValues(t, 0, w.IsFinal)
		require.EqualValues(t, k+1, w.I.(*big.Int).Uint64())
	}
	require.EqualValues(t, 1, ws[4].IsFinal)

	proof, vk := prove(t, 100, 4)
	require.True(t, NewVerifier(vk).Verify(100, 4, proof))
	want := hasher.Compress(fr.NewElement(5), v)
	require.True(t, proof.ZN[1].Equal(&want))
}

func TestBoundary_ZeroSteps(t *testing.T) {
	require.Equal(t, fr.NewElement(7), ChainValue(7, 0))
	require.Equal(t, fr.NewElement(7), ChainValue(7, -3))

	ws := NewProver(7, 0).Witnesses()
	require.Len(t, ws, 1)
	require.EqualValues(t, 1, ws[0].IsFinal)

	proof, vk := prove(t, 7, 0)
	v := NewVerifier(vk)
	require.True(t, v.Verify(7, 0, proof))
	require.False(t, v.Verify(7, 1, proof))
}

func TestProve_Errors(t *testing.T) {
	_, _, err := NewProver(1, -1).Prove()
	var perr *ProvingError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "validate", perr.Op)
	require.ErrorIs(t, err, ErrInvalidStepNum)
	require.Nil(t, NewProver(1, -1).Witnesses())

	pp, err := NewParams(2)
	require.NoError(t, err)
	_, _, err = NewProver(1, 2, WithParams(pp)).Prove()
	require.ErrorIs(t, err, ivc.ErrCapacityExceeded)
	_, _, err = NewProver(1, DEFAULT_CAPACITY).Prove()
	require.ErrorIs(t, err, ivc.ErrCapacityExceeded)

	proof, vk, err := NewProver(1, 1, WithParams(pp), WithSelfCheck(false)).Prove()
	require.NoError(t, err)
	require.True(t, NewVerifier(vk).Verify(1, 1, proof))
}

func TestProve_Progress(t *testing.T) {
	var out bytes.Buffer
	pp, err := NewParams(4)
	require.NoError(t, err)
	_, _, err = NewProver(3, 3, WithParams(pp), WithProgress(&out)).Prove()
	require.NoError(t, err)
	require.Contains(t, out.String(), "folding")
}

func TestVerifyBatch(t *testing.T) {
	proof4, vk := prove(t, 100, 4)
	v := NewVerifier(vk)
	got := v.VerifyBatch([]Claim{
		{InitValue: 100, StepNum: 4, Proof: proof4},
		{InitValue: 100, StepNum: 3, Proof: proof4},
		{InitValue: 99, StepNum: 4, Proof: proof4},
		{InitValue: 100, StepNum: 4, Proof: nil},
	})
	require.Equal(t, []bool{true, false, false, false}, got)
	require.Empty(t, v.VerifyBatch(nil))
}

func TestDefaultParams_Shared(t *testing.T) {
	a, err := DefaultParams()
	require.NoError(t, err)
	b, err := DefaultParams()
	require.NoError(t, err)
	require.Same(t, a, b)
	require.Equal(t, DEFAULT_CAPACITY, a.Capacity())
}

func benchmarkProve(b *testing.B, stepNum int) {
	pp, err := DefaultParams()
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := NewProver(100, stepNum, WithParams(pp)).Prove(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProve4(b *testing.B)  { benchmarkProve(b, 4) }
func BenchmarkProve8(b *testing.B)  { benchmarkProve(b, 8) }
func BenchmarkProve16(b *testing.B) { benchmarkProve(b, 16) }

func BenchmarkVerify(b *testing.B) {
	proof, vk := prove(b, 100, 16)
	v := NewVerifier(vk)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !v.Verify(100, 16, proof) {
			b.Fatal("proof rejected")
		}
	}
}
