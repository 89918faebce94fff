package util

import (
	"crypto/sha256"
	"crypto/sha512"
	"math/big"
)

// SHA256AsInt interprets the SHA-256 digest of value as an unsigned 256-bit integer.
func SHA256AsInt(value []byte) *big.Int {
	digest := sha256.Sum256(value)
	return new(big.Int).SetBytes(digest[:])
}

// SHA512AsInt interprets the SHA-512 digest of value as an unsigned 512-bit integer.
func SHA512AsInt(value []byte) *big.Int {
	digest := sha512.Sum512(value)
	return new(big.Int).SetBytes(digest[:])
}

// SHA256x4AsInt keeps the first 4 bytes of the SHA-256 digest of value,
// giving a 32-bit integer.
func SHA256x4AsInt(value []byte) *big.Int {
	digest := sha256.Sum256(value)
	return new(big.Int).SetBytes(digest[:4])
}
