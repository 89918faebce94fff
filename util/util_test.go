package util

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeToBits(t *testing.T) {
	bits, err := DecomposeToBits(big.NewInt(5), 4)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1, 0, 1}, bits)

	bits, err = DecomposeToBits(big.NewInt(0), 6)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 0, 0, 0}, bits)

	bits, err = DecomposeToBits(big.NewInt(15), 4)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 1, 1, 1}, bits)
}

func TestDecomposeToBitsRejects(t *testing.T) {
	_, err := DecomposeToBits(big.NewInt(16), 4)
	assert.ErrorIs(t, err, ErrValueTooLarge)

	_, err = DecomposeToBits(big.NewInt(-1), 4)
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestRecomposeBits(t *testing.T) {
	const testTimes = 1 << 8
	bound := new(big.Int).Lsh(big.NewInt(1), 256)
	for i := 0; i < testTimes; i++ {
		v, err := rand.Int(rand.Reader, bound)
		require.NoError(t, err)

		bits, err := DecomposeToBits(v, 256)
		require.NoError(t, err)
		require.Len(t, bits, 256)

		got := RecomposeBits(bits)
		if got.Cmp(v) != 0 {
			t.Error("testRecompose | Got:", got, "Wanted:", v)
		}
	}
}

func TestRandomBelow(t *testing.T) {
	bound := big.NewInt(1000)
	for i := 0; i < 1<<10; i++ {
		v, err := RandomBelow(rand.Reader, bound)
		require.NoError(t, err)
		assert.True(t, v.Sign() >= 0 && v.Cmp(bound) < 0)
	}

	_, err := RandomBelow(rand.Reader, big.NewInt(0))
	assert.ErrorIs(t, err, ErrNonPositiveBound)
}

func TestShuffleIsPermutation(t *testing.T) {
	items := make([]int, 64)
	for i := range items {
		items[i] = i
	}

	err := Shuffle(rand.Reader, len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	assert.Len(t, seen, 64)
}

func TestShuffleCoversAllPositions(t *testing.T) {
	// Every element must be able to land in every slot.
	const n = 4
	var hits [n][n]int
	rnd := NewSeededReader([]byte("shuffle"))
	for round := 0; round < 4000; round++ {
		items := []int{0, 1, 2, 3}
		require.NoError(t, Shuffle(rnd, n, func(i, j int) { items[i], items[j] = items[j], items[i] }))
		for pos, v := range items {
			hits[v][pos]++
		}
	}
	for v := 0; v < n; v++ {
		for pos := 0; pos < n; pos++ {
			assert.Greater(t, hits[v][pos], 800, "element %d at position %d", v, pos)
		}
	}
}

func TestSeededReader(t *testing.T) {
	a := make([]byte, 64)
	b := make([]byte, 64)
	_, _ = NewSeededReader([]byte("seed")).Read(a)
	_, _ = NewSeededReader([]byte("seed")).Read(b)
	assert.True(t, bytes.Equal(a, b))

	_, _ = NewSeededReader([]byte("other")).Read(b)
	assert.False(t, bytes.Equal(a, b))
}

func TestHashAsInt(t *testing.T) {
	value := []byte("attribute")
	assert.LessOrEqual(t, SHA256AsInt(value).BitLen(), 256)
	assert.LessOrEqual(t, SHA512AsInt(value).BitLen(), 512)
	assert.LessOrEqual(t, SHA256x4AsInt(value).BitLen(), 32)

	full := SHA256AsInt(value)
	prefix := new(big.Int).Rsh(full, 256-32)
	assert.Equal(t, 0, prefix.Cmp(SHA256x4AsInt(value)))
}
