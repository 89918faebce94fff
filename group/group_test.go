package group

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var allGroups = []Group{
	SecP256k1(),
	P256(),
	P384(),
	Ristretto255(),
}

func TestGroup(t *testing.T) {
	const testTimes = 1 << 5
	for _, g := range allGroups {
		n := g.Name()
		t.Run(n+"/Neg", func(tt *testing.T) { testNeg(tt, testTimes, g) })
		t.Run(n+"/Order", func(tt *testing.T) { testOrder(tt, testTimes, g) })
		t.Run(n+"/Set", func(tt *testing.T) { testSet(tt, g) })
		t.Run(n+"/Math", func(tt *testing.T) { testMath(tt, g) })
		t.Run(n+"/Identity", func(tt *testing.T) { testIdentity(tt, g) })
	}
}

func testNeg(t *testing.T, testTimes int, g Group) {
	Q := g.Element()
	for i := 0; i < testTimes; i++ {
		P := g.Random(rand.Reader)
		Q.Set(P)
		Q.Subtract(Q, P)
		got := Q.IsIdentity()
		want := true
		if got != want {
			t.Error("testNeg | Got:", got, "Wanted:", want)
		}
	}
}

func testOrder(t *testing.T, testTimes int, g Group) {
	I := g.Identity()
	Q := g.Element()
	minusOne := big.NewInt(-1)
	for i := 0; i < testTimes; i++ {
		P := g.Random(rand.Reader)

		Q.Scale(P, minusOne)
		got := Q.Add(Q, P)
		want := I
		if !got.IsEqual(want) {
			t.Error("testOrder | Got:", got, "Wanted:", want)
		}
	}
}

func testSet(t *testing.T, g Group) {
	P := g.Random(rand.Reader)
	Q := g.Element()
	Q.Set(P)
	if !Q.IsEqual(P) {
		t.Error("testSet | Got:", false, "Wanted:", true)
	}
}

func testMath(t *testing.T, g Group) {
	a := g.Element().BaseScale(big.NewInt(2))
	b := g.Element().Add(g.Generator(), g.Generator())
	if !a.IsEqual(b) {
		t.Error("doubling error")
	}

	a = g.Element().Add(a, g.Generator())
	b = g.Element().BaseScale(big.NewInt(3))
	if !a.IsEqual(b) {
		t.Error("error in adding or scaling")
	}

	e := g.Identity()
	r1 := g.Random(rand.Reader)
	r2 := g.Random(rand.Reader)
	e.Add(r1, r2)
	e.Subtract(e, r2)
	if !e.IsEqual(r1) {
		t.Error("error in subtracting")
	}
}

func testIdentity(t *testing.T, g Group) {
	require.True(t, g.Element().BaseScale(big.NewInt(0)).IsIdentity())
	require.True(t, g.Element().BaseScale(g.N()).IsIdentity())

	G := g.Generator()
	sum := g.Element().Add(g.Identity(), G)
	require.True(t, sum.IsEqual(G))
	require.False(t, G.IsIdentity())
}

func TestByName(t *testing.T) {
	for _, g := range allGroups {
		t.Run(fmt.Sprintf("lookup-%s", g.Name()), func(t *testing.T) {
			found, err := ByName(g.Name())
			require.NoError(t, err)
			require.Equal(t, g.Name(), found.Name())
		})
	}

	_, err := ByName("bn254")
	require.Error(t, err)
}
