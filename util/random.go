package util

import (
	"crypto/sha256"
	"errors"
	"io"
	"math/big"

	"golang.org/x/crypto/chacha20"
)

var ErrNonPositiveBound = errors.New("sampling bound must be positive")

// RandomBelow samples uniformly from [0, bound) by drawing bound.BitLen()-bit
// candidates from rnd and rejecting those that are too large.
func RandomBelow(rnd io.Reader, bound *big.Int) (*big.Int, error) {
	if bound.Sign() <= 0 {
		return nil, ErrNonPositiveBound
	}

	bitLen := bound.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	excess := uint(len(buf)*8 - bitLen)

	for {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, err
		}
		buf[0] &= byte(0xff >> excess)

		candidate := new(big.Int).SetBytes(buf)
		if candidate.Cmp(bound) < 0 {
			return candidate, nil
		}
	}
}

// Shuffle permutes n elements with the Fisher-Yates algorithm, using rnd for
// every index draw. swap exchanges the elements at i and j.
func Shuffle(rnd io.Reader, n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := RandomBelow(rnd, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		swap(i, int(j.Int64()))
	}
	return nil
}

type seededReader struct {
	stream *chacha20.Cipher
}

// NewSeededReader returns a deterministic reader producing the ChaCha20 key
// stream for the given seed. It exists for reproducible tests and must never
// replace crypto/rand.Reader outside of them.
func NewSeededReader(seed []byte) io.Reader {
	key := sha256.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	stream, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// Key and nonce sizes are fixed above.
		panic(err)
	}
	return &seededReader{stream: stream}
}

func (r *seededReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.stream.XORKeyStream(p, p)
	return len(p), nil
}
