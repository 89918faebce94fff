package boneh

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takakv/bpattest/util"
)

const testKeyBits = 32

func testKey(t *testing.T) *PrivateKey {
	sk, err := GenerateKeys(util.NewSeededReader([]byte(t.Name())), testKeyBits)
	require.NoError(t, err)
	return sk
}

func TestFP2Arithmetic(t *testing.T) {
	p := big.NewInt(11) // 11 = 2 mod 3
	x := NewFP2Value(p, big.NewInt(0), big.NewInt(1))

	// x^2 = -x - 1
	want := NewFP2Value(p, big.NewInt(-1), big.NewInt(-1))
	assert.True(t, x.Mul(x).Equal(want), "x^2 | Got: %s Wanted: %s", x.Mul(x), want)

	// x^3 = 1
	assert.True(t, x.Exp(big.NewInt(3)).IsOne())

	// v^(p^2-1) = 1 for any non-zero v.
	v := NewFP2Value(p, big.NewInt(4), big.NewInt(7))
	order := big.NewInt(11*11 - 1)
	assert.True(t, v.Exp(order).IsOne())
	assert.True(t, v.Exp(big.NewInt(-1)).Mul(v).IsOne())
}

func TestGenerateKeys(t *testing.T) {
	sk := testKey(t)
	p := sk.P()

	three := big.NewInt(3)
	assert.Equal(t, int64(2), new(big.Int).Mod(p, three).Int64())
	assert.True(t, p.ProbablyPrime(20))

	// Every multiple of p + 1 encodes zero.
	pPlusOne := new(big.Int).Add(p, big.NewInt(1))
	assert.True(t, sk.G().Exp(pPlusOne).IsOne())
	assert.True(t, sk.H().Exp(sk.t1).IsOne())
	assert.False(t, sk.H().IsOne())

	_, err := GenerateKeys(rand.Reader, 8)
	assert.ErrorIs(t, err, ErrKeySize)
}

func TestGenerateKeysDeterministic(t *testing.T) {
	a, err := GenerateKeys(util.NewSeededReader([]byte("seed")), testKeyBits)
	require.NoError(t, err)
	b, err := GenerateKeys(util.NewSeededReader([]byte("seed")), testKeyBits)
	require.NoError(t, err)
	assert.Equal(t, 0, a.P().Cmp(b.P()))
	assert.True(t, a.G().Equal(b.G()))
}

func TestEncodeDecode(t *testing.T) {
	sk := testKey(t)
	pk := sk.Public()
	candidates := []int64{0, 1, 2}

	for m := int64(0); m < 3; m++ {
		c, err := pk.Encode(rand.Reader, big.NewInt(m))
		require.NoError(t, err)

		got, ok := sk.Decode(candidates, c)
		require.True(t, ok)
		assert.Equal(t, m, got)
	}

	c, err := pk.Encode(rand.Reader, big.NewInt(7))
	require.NoError(t, err)
	_, ok := sk.Decode(candidates, c)
	assert.False(t, ok)
}

func TestHomomorphism(t *testing.T) {
	sk := testKey(t)
	pk := sk.Public()
	p := pk.P()

	// (p + 1) - 1 + 2 = 2 modulo p + 1.
	c1, err := pk.Encode(rand.Reader, p)
	require.NoError(t, err)
	c2, err := pk.Encode(rand.Reader, big.NewInt(2))
	require.NoError(t, err)
	c3, err := pk.Encode(rand.Reader, big.NewInt(1))
	require.NoError(t, err)

	got, ok := sk.Decode([]int64{0, 1, 2}, c1.Add(c2).Add(c3))
	require.True(t, ok)
	assert.Equal(t, int64(2), got)
}

func TestFromPair(t *testing.T) {
	sk := testKey(t)
	c, err := sk.Encode(rand.Reader, big.NewInt(1))
	require.NoError(t, err)

	a, b := c.(*FP2Value).Coordinates()
	rebuilt := sk.FromPair(a, b)
	got, ok := sk.Decode([]int64{0, 1, 2}, rebuilt)
	require.True(t, ok)
	assert.Equal(t, int64(1), got)
}
