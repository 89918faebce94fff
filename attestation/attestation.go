// Package attestation builds zero-knowledge bit-pair attestations of a secret
// integer and derives the challenges a verifier sends against them.
package attestation

import (
	"github.com/takakv/bpattest/scheme"
)

// BitPairCommitment holds the encodings of two adjacent masked bits and the
// encoding of the negated sum of their masks.
type BitPairCommitment struct {
	C0          scheme.Ciphertext
	C1          scheme.Ciphertext
	Correctness scheme.Ciphertext
}

// Compress homomorphically adds the three ciphertexts. For a well-formed
// commitment the masks cancel and the result encodes the sum of both bits.
func (b BitPairCommitment) Compress() scheme.Ciphertext {
	return b.C0.Add(b.C1).Add(b.Correctness)
}

// Attestation is an unordered set of bit-pair commitments made under one
// public key. It is not modified after Attest returns it.
type Attestation struct {
	publicKey scheme.PublicKey
	bitPairs  []BitPairCommitment
}

// New assembles an attestation received from elsewhere.
func New(pk scheme.PublicKey, bitPairs []BitPairCommitment) *Attestation {
	pairs := make([]BitPairCommitment, len(bitPairs))
	copy(pairs, bitPairs)
	return &Attestation{publicKey: pk, bitPairs: pairs}
}

func (a *Attestation) PublicKey() scheme.PublicKey {
	return a.publicKey
}

// BitPairs returns a copy of the commitments.
func (a *Attestation) BitPairs() []BitPairCommitment {
	pairs := make([]BitPairCommitment, len(a.bitPairs))
	copy(pairs, a.bitPairs)
	return pairs
}

// Len returns the number of commitments, half the bit space.
func (a *Attestation) Len() int {
	return len(a.bitPairs)
}
