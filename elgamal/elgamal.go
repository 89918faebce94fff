// Package elgamal implements exponential (lifted) ElGamal over a prime-order
// group. Plaintexts are scalars modulo the group order N, so the key exposes
// P() = N - 1 and multiples of P() + 1 encode zero.
package elgamal

import (
	"io"
	"math/big"

	"github.com/takakv/bpattest/group"
	"github.com/takakv/bpattest/scheme"
	"github.com/takakv/bpattest/util"
)

type Ciphertext struct {
	G group.Group
	U group.Element // rG
	V group.Element // mG + rH
}

type PublicKey struct {
	group group.Group
	h     group.Element
}

type PrivateKey struct {
	PublicKey
	x *big.Int
}

func (pk *PublicKey) Group() group.Group {
	return pk.group
}

func (pk *PublicKey) H() group.Element {
	return pk.h
}

func (pk *PublicKey) P() *big.Int {
	return new(big.Int).Sub(pk.group.N(), big.NewInt(1))
}

// Public returns the public half of the key pair.
func (sk *PrivateKey) Public() *PublicKey {
	pk := sk.PublicKey
	return &pk
}

func (pk *PublicKey) Encode(rnd io.Reader, m *big.Int) (scheme.Ciphertext, error) {
	G := pk.group
	r, err := util.RandomBelow(rnd, G.N())
	if err != nil {
		return nil, err
	}

	liftedMessage := G.Element().BaseScale(m)
	mask := G.Element().Scale(pk.h, r)

	var ciphertext Ciphertext
	ciphertext.G = G
	ciphertext.U = G.Element().BaseScale(r)
	ciphertext.V = G.Element().Add(liftedMessage, mask)
	return &ciphertext, nil
}

// Add returns the component-wise sum of both ciphertexts.
func (c *Ciphertext) Add(o scheme.Ciphertext) scheme.Ciphertext {
	d, ok := o.(*Ciphertext)
	if !ok {
		panic("incompatible ciphertext type")
	}
	return &Ciphertext{
		G: c.G,
		U: c.G.Element().Add(c.U, d.U),
		V: c.G.Element().Add(c.V, d.V),
	}
}

func (c *Ciphertext) String() string {
	return "ElGamal<" + c.U.String() + ", " + c.V.String() + ">"
}

// Decode strips the mask with the secret exponent and compares mG against
// every candidate.
func (sk *PrivateKey) Decode(candidates []int64, c scheme.Ciphertext) (int64, bool) {
	ct, ok := c.(*Ciphertext)
	if !ok {
		return 0, false
	}

	G := sk.group
	mask := G.Element().Scale(ct.U, sk.x)
	lifted := G.Element().Subtract(ct.V, mask)
	for _, k := range candidates {
		if lifted.IsEqual(G.Element().BaseScale(big.NewInt(k))) {
			return k, true
		}
	}
	return 0, false
}

// GenerateKeys samples a secret exponent x in [1, N) and sets H = xG.
func GenerateKeys(rnd io.Reader, g group.Group) (*PrivateKey, error) {
	bound := new(big.Int).Sub(g.N(), big.NewInt(1))
	x, err := util.RandomBelow(rnd, bound)
	if err != nil {
		return nil, err
	}
	x.Add(x, big.NewInt(1))

	return &PrivateKey{
		PublicKey: PublicKey{group: g, h: g.Element().BaseScale(x)},
		x:         x,
	}, nil
}

var _ scheme.PrivateKey = (*PrivateKey)(nil)
var _ scheme.PublicKey = (*PublicKey)(nil)
