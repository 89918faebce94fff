package elgamal

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/bpattest/group"
)

var testGroups = []group.Group{
	group.SecP256k1(),
	group.P256(),
	group.Ristretto255(),
}

func TestElGamal(t *testing.T) {
	for _, g := range testGroups {
		n := g.Name()
		t.Run(n+"/EncodeDecode", func(tt *testing.T) { testEncodeDecode(tt, g) })
		t.Run(n+"/Homomorphism", func(tt *testing.T) { testHomomorphism(tt, g) })
	}
}

func testEncodeDecode(t *testing.T, g group.Group) {
	sk, err := GenerateKeys(rand.Reader, g)
	require.NoError(t, err)
	pk := sk.Public()

	for m := int64(0); m < 3; m++ {
		c, err := pk.Encode(rand.Reader, big.NewInt(m))
		require.NoError(t, err)
		got, ok := sk.Decode([]int64{0, 1, 2}, c)
		if !ok || got != m {
			t.Error("testEncodeDecode | Got:", got, ok, "Wanted:", m)
		}
	}

	c, err := pk.Encode(rand.Reader, big.NewInt(5))
	require.NoError(t, err)
	_, ok := sk.Decode([]int64{0, 1, 2}, c)
	require.False(t, ok)
}

func testHomomorphism(t *testing.T, g group.Group) {
	sk, err := GenerateKeys(rand.Reader, g)
	require.NoError(t, err)
	pk := sk.Public()

	// P() = N - 1 is -1 in the plaintext space.
	c1, err := pk.Encode(rand.Reader, pk.P())
	require.NoError(t, err)
	c2, err := pk.Encode(rand.Reader, big.NewInt(3))
	require.NoError(t, err)

	got, ok := sk.Decode([]int64{0, 1, 2}, c1.Add(c2))
	require.True(t, ok)
	require.Equal(t, int64(2), got)
}
