// Package boneh implements the exact Boneh-Goh-Nissim style encoding over
// F_{p^2} used by bit-pair attestations.
//
// The public modulus p satisfies p + 1 = l·q1·q2. Plaintexts live in the
// exponent of g, an element of order q1·q2, so every multiple of p + 1
// encodes zero. Decoding raises a ciphertext to q1, which cancels the
// blinding term h of order q1.
package boneh

import (
	"fmt"
	"io"
	"math/big"

	"github.com/takakv/bpattest/scheme"
	"github.com/takakv/bpattest/util"
)

// MinKeyBits is the smallest accepted size of the primes q1 and q2.
const MinKeyBits = 16

var ErrKeySize = fmt.Errorf("key size must be at least %d bits", MinKeyBits)

type PublicKey struct {
	p *big.Int
	g *FP2Value
	h *FP2Value
}

type PrivateKey struct {
	PublicKey
	t1 *big.Int
}

// NewPublicKey assembles a public key from its parts.
func NewPublicKey(p *big.Int, g, h *FP2Value) *PublicKey {
	return &PublicKey{p: p, g: g, h: h}
}

// NewPrivateKey assembles a private key; t1 is the order of h.
func NewPrivateKey(pk *PublicKey, t1 *big.Int) *PrivateKey {
	return &PrivateKey{PublicKey: *pk, t1: t1}
}

func (pk *PublicKey) P() *big.Int {
	return pk.p
}

func (pk *PublicKey) G() *FP2Value {
	return pk.g
}

func (pk *PublicKey) H() *FP2Value {
	return pk.h
}

// Public returns the public half of the key pair.
func (sk *PrivateKey) Public() *PublicKey {
	pk := sk.PublicKey
	return &pk
}

// Encode returns g^m · h^r for a fresh r in [0, p).
func (pk *PublicKey) Encode(rnd io.Reader, m *big.Int) (scheme.Ciphertext, error) {
	r, err := util.RandomBelow(rnd, pk.p)
	if err != nil {
		return nil, err
	}
	return pk.g.Exp(m).Mul(pk.h.Exp(r)), nil
}

// Decode returns the candidate k with c^t1 = (g^t1)^k.
func (sk *PrivateKey) Decode(candidates []int64, c scheme.Ciphertext) (int64, bool) {
	v, ok := c.(*FP2Value)
	if !ok || v.mod.Cmp(sk.p) != 0 {
		return 0, false
	}

	d := v.Exp(sk.t1)
	base := sk.g.Exp(sk.t1)
	for _, k := range candidates {
		if base.Exp(big.NewInt(k)).Equal(d) {
			return k, true
		}
	}
	return 0, false
}

// FromPair rebuilds a ciphertext from its two field coordinates.
func (sk *PrivateKey) FromPair(a, b *big.Int) scheme.Ciphertext {
	return NewFP2Value(sk.p, a, b)
}

// GenerateKeys draws primes q1 and q2 of keyBits bits, searches the smallest
// multiplier l for which p = l·q1·q2 - 1 is a prime congruent to 2 mod 3, and
// picks g of order q1·q2 and h of order q1 inside the norm-one subgroup.
func GenerateKeys(rnd io.Reader, keyBits int) (*PrivateKey, error) {
	if keyBits < MinKeyBits {
		return nil, ErrKeySize
	}

	q1, q2, err := distinctPrimes(rnd, keyBits)
	if err != nil {
		return nil, err
	}
	n := new(big.Int).Mul(q1, q2)
	p, l := goodModulus(n)

	// u^(p-1) lies in the subgroup of order p + 1; raising further by l
	// leaves an element whose order divides n.
	cofactor := new(big.Int).Sub(p, big.NewInt(1))
	cofactor.Mul(cofactor, l)

	var g *FP2Value
	for {
		u, err := randomFP2(rnd, p)
		if err != nil {
			return nil, err
		}
		g = u.Exp(cofactor)
		if !g.Exp(q1).IsOne() && !g.Exp(q2).IsOne() {
			break
		}
	}

	hCofactor := new(big.Int).Mul(cofactor, q2)
	var h *FP2Value
	for {
		v, err := randomFP2(rnd, p)
		if err != nil {
			return nil, err
		}
		h = v.Exp(hCofactor)
		if !h.IsOne() {
			break
		}
	}

	return NewPrivateKey(NewPublicKey(p, g, h), q1), nil
}

func distinctPrimes(rnd io.Reader, bits int) (*big.Int, *big.Int, error) {
	q1, err := randomPrime(rnd, bits)
	if err != nil {
		return nil, nil, err
	}
	for {
		q2, err := randomPrime(rnd, bits)
		if err != nil {
			return nil, nil, err
		}
		if q1.Cmp(q2) != 0 {
			return q1, q2, nil
		}
	}
}

// randomPrime returns a prime with its top bit set. It only reads from rnd, so
// seeded readers give reproducible keys.
func randomPrime(rnd io.Reader, bits int) (*big.Int, error) {
	lo := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	for {
		c, err := util.RandomBelow(rnd, lo)
		if err != nil {
			return nil, err
		}
		c.Add(c, lo)
		c.SetBit(c, 0, 1)
		if c.ProbablyPrime(20) {
			return c, nil
		}
	}
}

func goodModulus(n *big.Int) (*big.Int, *big.Int) {
	three := big.NewInt(3)
	two := big.NewInt(2)
	for l := int64(1); ; l++ {
		p := new(big.Int).Mul(n, big.NewInt(l))
		p.Sub(p, big.NewInt(1))
		if new(big.Int).Mod(p, three).Cmp(two) == 0 && p.ProbablyPrime(20) {
			return p, big.NewInt(l)
		}
	}
}

func randomFP2(rnd io.Reader, p *big.Int) (*FP2Value, error) {
	for {
		a, err := util.RandomBelow(rnd, p)
		if err != nil {
			return nil, err
		}
		b, err := util.RandomBelow(rnd, p)
		if err != nil {
			return nil, err
		}
		v := NewFP2Value(p, a, b)
		if !v.IsZero() {
			return v, nil
		}
	}
}

var _ scheme.PairKey = (*PrivateKey)(nil)
var _ scheme.PublicKey = (*PublicKey)(nil)
