package util

import (
	"errors"
	"math/big"
)

var (
	ErrNegativeValue = errors.New("value is negative")
	ErrValueTooLarge = errors.New("value does not fit in the bit space")
)

/*
DecomposeToBits receives as input a bigint x and outputs its binary representation
as exactly bitSpace bits, most significant bit first and zero padded on the left.
A value that needs more than bitSpace bits is rejected, never truncated.
*/
func DecomposeToBits(x *big.Int, bitSpace int) ([]uint8, error) {
	if x.Sign() < 0 {
		return nil, ErrNegativeValue
	}
	if bitSpace < 0 || x.BitLen() > bitSpace {
		return nil, ErrValueTooLarge
	}

	result := make([]uint8, bitSpace)
	for i := 0; i < bitSpace; i++ {
		result[bitSpace-1-i] = uint8(x.Bit(i))
	}

	return result, nil
}

// RecomposeBits is the inverse of DecomposeToBits.
func RecomposeBits(bits []uint8) *big.Int {
	x := new(big.Int)
	for _, b := range bits {
		x.Lsh(x, 1)
		if b != 0 {
			x.SetBit(x, 0, 1)
		}
	}
	return x
}

// ErrOddBitSpace is returned when a bit space cannot be split into bit pairs.
var ErrOddBitSpace = errors.New("bit space must be positive and even")

// CheckBitSpace verifies that bitSpace splits into a whole number of bit pairs.
func CheckBitSpace(bitSpace int) error {
	if bitSpace <= 0 || bitSpace%2 != 0 {
		return ErrOddBitSpace
	}
	return nil
}
