// Package scheme describes the additively homomorphic public-key primitive the
// attestation core is built on. Plaintexts are taken modulo a divisor of P()+1.
package scheme

import (
	"io"
	"math/big"
)

// Ciphertext is an encoding of a small integer.
type Ciphertext interface {
	// Add returns the encoding of the sum of both plaintexts.
	// Neither operand is modified.
	Add(c Ciphertext) Ciphertext
	String() string
}

// PublicKey encodes plaintexts.
type PublicKey interface {
	// P returns the modulus p of the key.
	P() *big.Int
	// Encode returns a fresh randomised encoding of m.
	Encode(rnd io.Reader, m *big.Int) (Ciphertext, error)
}

// PrivateKey trial-decodes ciphertexts against a small candidate set.
type PrivateKey interface {
	P() *big.Int
	// Decode returns the first candidate encoded by c, or false when none is.
	Decode(candidates []int64, c Ciphertext) (int64, bool)
}

// PairKey is a PrivateKey whose ciphertexts can be rebuilt from a raw
// coordinate pair.
type PairKey interface {
	PrivateKey
	FromPair(a, b *big.Int) Ciphertext
}
