package attestation

import (
	"errors"
	"io"
	"math/big"

	"github.com/takakv/bpattest/relativity"
	"github.com/takakv/bpattest/scheme"
)

var ErrInvalidHonestyValue = errors.New("honesty check value must be 0, 1 or 2")

var responseCandidates = []int64{0, 1, 2}

// CreateChallenge compresses commitment and blinds the result with a fresh
// encoding of zero.
func CreateChallenge(rnd io.Reader, pk scheme.PublicKey, commitment BitPairCommitment) (scheme.Ciphertext, error) {
	zero, err := pk.Encode(rnd, big.NewInt(0))
	if err != nil {
		return nil, err
	}
	return commitment.Compress().Add(zero), nil
}

// CreateHonestyCheck encodes a known answer v, which a verifier can plant
// among real challenges to catch a lying decoder.
func CreateHonestyCheck(rnd io.Reader, pk scheme.PublicKey, v int64) (scheme.Ciphertext, error) {
	if v < 0 || v > 2 {
		return nil, ErrInvalidHonestyValue
	}
	return pk.Encode(rnd, big.NewInt(v))
}

// CreateChallengeResponse decodes challenge against {0, 1, 2}.
// A challenge matching none of them is answered with CategoryUnknown.
func CreateChallengeResponse(sk scheme.PrivateKey, challenge scheme.Ciphertext) relativity.Category {
	k, ok := sk.Decode(responseCandidates, challenge)
	if !ok {
		return relativity.CategoryUnknown
	}
	return relativity.Category(k)
}

// CreateChallengeResponseFromPair rebuilds the challenge from a raw coordinate
// pair before decoding it. Keys without a pair representation answer
// CategoryUnknown.
func CreateChallengeResponseFromPair(sk scheme.PrivateKey, a, b *big.Int) relativity.Category {
	pairKey, ok := sk.(scheme.PairKey)
	if !ok {
		return relativity.CategoryUnknown
	}
	return CreateChallengeResponse(sk, pairKey.FromPair(a, b))
}
