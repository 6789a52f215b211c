package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/hashchain/ivc"
)

func TestParseStatement(t *testing.T) {
	initValue, stepNum, err := parseStatement([]string{"100", "4"})
	require.NoError(t, err)
	require.EqualValues(t, 100, initValue)
	require.Equal(t, 4, stepNum)

	_, _, err = parseStatement([]string{"-1", "4"})
	require.Error(t, err)
	_, _, err = parseStatement([]string{"1", "four"})
	require.Error(t, err)
}

func TestHexFiles(t *testing.T) {
	pp, err := ivc.Setup(&ivc.TrivialCircuit{}, &ivc.TrivialCircuit{}, 1)
	require.NoError(t, err)
	pk, vk, err := ivc.CompressedSetup(pp)
	require.NoError(t, err)
	z0 := []fr.Element{fr.NewElement(3)}
	acc, err := ivc.NewAccumulator(pp, &ivc.TrivialCircuit{}, &ivc.TrivialCircuit{}, z0, z0)
	require.NoError(t, err)
	proof, err := ivc.Compress(pp, pk, acc)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, writeHex(filepath.Join(dir, "vk"), vk))
	require.NoError(t, writeHex(filepath.Join(dir, "proof"), proof))

	var vk2 ivc.VerifyingKey
	require.NoError(t, readHex(filepath.Join(dir, "vk"), &vk2))
	var proof2 ivc.CompressedProof
	require.NoError(t, readHex(filepath.Join(dir, "proof"), &proof2))
	zn, _, err := proof2.Verify(&vk2, 1, z0, z0)
	require.NoError(t, err)
	require.Equal(t, z0, zn)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

type rawBytes []byte

func (b rawBytes) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b)
	return int64(n), err
}

func TestWriteHex_ReportsErrors(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, writeHex(dir, rawBytes{1, 2, 3}), "a directory cannot be created as a file")
	require.ErrorIs(t, encodeHex(failingWriter{}, rawBytes{1}), os.ErrClosed)

	path := filepath.Join(dir, "value")
	require.NoError(t, writeHex(path, rawBytes{1, 2, 3}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "010203\n", string(raw))
}
