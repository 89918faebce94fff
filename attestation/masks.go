package attestation

import (
	"errors"
	"io"
	"math/big"

	"github.com/takakv/bpattest/util"
)

var (
	ErrInvalidModulus   = errors.New("key modulus must be positive")
	ErrInvalidMaskCount = errors.New("mask count must be positive")
)

// GenerateMasks returns n shuffled masks whose sum is -1 modulo p + 1.
// The first n - 1 masks are uniform in [0, p); the last one is chosen to
// fix the sum and lies in [0, p].
func GenerateMasks(rnd io.Reader, p *big.Int, n int) ([]*big.Int, error) {
	if p == nil || p.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	if n < 1 {
		return nil, ErrInvalidMaskCount
	}

	masks := make([]*big.Int, 0, n)
	sum := new(big.Int)
	for i := 0; i < n-1; i++ {
		r, err := util.RandomBelow(rnd, p)
		if err != nil {
			return nil, err
		}
		masks = append(masks, r)
		sum.Add(sum, r)
	}

	pPlusOne := new(big.Int).Add(p, big.NewInt(1))
	last := new(big.Int).Mod(sum, pPlusOne)
	last.Sub(p, last)
	masks = append(masks, last)

	// The corrective mask must not be recognisable by its position.
	err := util.Shuffle(rnd, len(masks), func(i, j int) { masks[i], masks[j] = masks[j], masks[i] })
	if err != nil {
		return nil, err
	}
	return masks, nil
}
