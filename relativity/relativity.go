// Package relativity scores observed challenge responses against the
// responses a claimed value would produce.
package relativity

import (
	"math"
	"math/big"

	"github.com/takakv/bpattest/util"
)

// BinaryRelativity returns the histogram of bit-pair sums of value decomposed
// into bitSpace bits. CategoryUnknown is always zero.
func BinaryRelativity(value *big.Int, bitSpace int) (*Histogram, error) {
	if err := util.CheckBitSpace(bitSpace); err != nil {
		return nil, err
	}
	bits, err := util.DecomposeToBits(value, bitSpace)
	if err != nil {
		return nil, err
	}

	var counts [NumCategories]uint64
	for i := 0; i < bitSpace; i += 2 {
		counts[bits[i]+bits[i+1]]++
	}
	return FromCounts(counts), nil
}

func BinaryRelativitySHA256(value []byte) (*Histogram, error) {
	return BinaryRelativity(util.SHA256AsInt(value), 256)
}

func BinaryRelativitySHA512(value []byte) (*Histogram, error) {
	return BinaryRelativity(util.SHA512AsInt(value), 512)
}

func BinaryRelativitySHA256x4(value []byte) (*Histogram, error) {
	return BinaryRelativity(util.SHA256x4AsInt(value), 32)
}

// Match returns the ratio in [0, 1] between observed and expected counts.
// Observing more responses in a category than expected is impossible for a
// matching value and yields 0. Categories with a zero count on either side do
// not contribute.
func Match(expected, observed *Histogram) float64 {
	exp := expected.Counts()
	obs := observed.Counts()

	match := 1.0
	for k := range exp {
		if exp[k] < obs[k] {
			return 0
		}
		if exp[k] == 0 || obs[k] == 0 {
			continue
		}
		match *= float64(obs[k]) / float64(exp[k])
	}
	return match
}

// Certainty weighs Match by 1 - 2^-n, n being the number of observed responses.
func Certainty(expected, observed *Histogram) float64 {
	return Match(expected, observed) * confidence(observed.Total())
}

func confidence(rounds uint64) float64 {
	if rounds > math.MaxInt32 {
		return 1
	}
	return 1 - math.Ldexp(1, -int(rounds))
}
