package attestation

import (
	"io"
	"math/big"

	"github.com/takakv/bpattest/scheme"
	"github.com/takakv/bpattest/util"
)

type indexedCiphertext struct {
	index int
	c     scheme.Ciphertext
}

type ciphertextPair struct {
	index int
	c0    scheme.Ciphertext
	c1    scheme.Ciphertext
}

// Attest commits to value, decomposed into bitSpace bits, under pk.
//
// Every bit is encoded together with a mask, and every pair of adjacent bits
// receives a correctness ciphertext encoding the additive inverse of the pair's
// masks modulo p + 1. Pair order and correctness order are shuffled
// independently, so the result reveals nothing but the number of pairs.
func Attest(rnd io.Reader, pk scheme.PublicKey, value *big.Int, bitSpace int) (*Attestation, error) {
	if err := util.CheckBitSpace(bitSpace); err != nil {
		return nil, err
	}
	bits, err := util.DecomposeToBits(value, bitSpace)
	if err != nil {
		return nil, err
	}

	p := pk.P()
	masks, err := GenerateMasks(rnd, p, bitSpace)
	if err != nil {
		return nil, err
	}
	pPlusOne := new(big.Int).Add(p, big.NewInt(1))

	public := make([]scheme.Ciphertext, bitSpace)
	for i, bit := range bits {
		m := new(big.Int).Add(masks[i], big.NewInt(int64(bit)))
		if public[i], err = pk.Encode(rnd, m); err != nil {
			return nil, err
		}
	}

	private := make([]indexedCiphertext, 0, bitSpace/2)
	for i := 0; i < bitSpace; i += 2 {
		inverse := new(big.Int).Add(masks[i], masks[i+1])
		inverse.Mod(inverse, pPlusOne)
		inverse.Sub(p, inverse)
		inverse.Add(inverse, big.NewInt(1))

		c, err := pk.Encode(rnd, inverse)
		if err != nil {
			return nil, err
		}
		private = append(private, indexedCiphertext{index: i, c: c})
	}

	pairs := make([]ciphertextPair, 0, bitSpace/2)
	for i := 0; i < bitSpace; i += 2 {
		pairs = append(pairs, ciphertextPair{index: i, c0: public[i], c1: public[i+1]})
	}
	err = util.Shuffle(rnd, len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
	if err != nil {
		return nil, err
	}

	// Flatten the shuffled pairs and remember where each original pair went.
	shuffled := make([]scheme.Ciphertext, 0, bitSpace)
	shuffleMap := make(map[int]int, len(pairs))
	for _, pair := range pairs {
		shuffleMap[pair.index] = len(shuffled)
		shuffled = append(shuffled, pair.c0, pair.c1)
	}

	for i := range private {
		private[i].index = shuffleMap[private[i].index]
	}
	err = util.Shuffle(rnd, len(private), func(i, j int) { private[i], private[j] = private[j], private[i] })
	if err != nil {
		return nil, err
	}

	bitPairs := make([]BitPairCommitment, 0, len(private))
	for _, correctness := range private {
		bitPairs = append(bitPairs, BitPairCommitment{
			C0:          shuffled[correctness.index],
			C1:          shuffled[correctness.index+1],
			Correctness: correctness.c,
		})
	}

	return &Attestation{publicKey: pk, bitPairs: bitPairs}, nil
}

// AttestSHA256 attests the SHA-256 digest of value in a 256-bit space.
func AttestSHA256(rnd io.Reader, pk scheme.PublicKey, value []byte) (*Attestation, error) {
	return Attest(rnd, pk, util.SHA256AsInt(value), 256)
}

// AttestSHA512 attests the SHA-512 digest of value in a 512-bit space.
func AttestSHA512(rnd io.Reader, pk scheme.PublicKey, value []byte) (*Attestation, error) {
	return Attest(rnd, pk, util.SHA512AsInt(value), 512)
}

// AttestSHA256x4 attests the first 4 bytes of the SHA-256 digest of value in a
// 32-bit space.
func AttestSHA256x4(rnd io.Reader, pk scheme.PublicKey, value []byte) (*Attestation, error) {
	return Attest(rnd, pk, util.SHA256x4AsInt(value), 32)
}
