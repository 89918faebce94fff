// Package verifier runs challenge rounds against an attestation and scores the
// responses against a claimed value.
package verifier

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/takakv/bpattest/attestation"
	"github.com/takakv/bpattest/relativity"
	"github.com/takakv/bpattest/telemetry"
)

var (
	ErrBitSpaceMismatch = errors.New("attestation does not cover the claimed bit space")
	ErrSessionDone      = errors.New("session already ran")
)

const (
	defaultWorkers  = 4
	defaultCacheTTL = 10 * time.Minute
)

// Verifier creates verification sessions. Expected histograms are cached per
// claimed value and bit space.
type Verifier struct {
	rnd           io.Reader
	honestyChecks int
	workers       int
	metrics       *telemetry.Metrics
	logger        *log.Entry
	expected      *cache.Cache
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithRand replaces crypto/rand.Reader as the randomness source. Reads are
// serialised, so rnd may be a stream that is not safe for concurrent use.
func WithRand(rnd io.Reader) Option {
	return func(v *Verifier) {
		v.rnd = &lockedReader{r: rnd}
	}
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

// WithHonestyChecks plants n challenges with known answers in every session.
func WithHonestyChecks(n int) Option {
	return func(v *Verifier) {
		if n >= 0 {
			v.honestyChecks = n
		}
	}
}

// WithWorkers bounds the number of challenges in flight.
func WithWorkers(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.workers = n
		}
	}
}

func WithMetrics(m *telemetry.Metrics) Option {
	return func(v *Verifier) {
		v.metrics = m
	}
}

func WithLogger(logger *log.Entry) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// WithCacheTTL sets how long expected histograms stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(v *Verifier) {
		v.expected = cache.New(ttl, 2*ttl)
	}
}

func New(opts ...Option) *Verifier {
	v := &Verifier{
		rnd:      rand.Reader,
		workers:  defaultWorkers,
		logger:   log.NewEntry(log.StandardLogger()),
		expected: cache.New(defaultCacheTTL, 2*defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.metrics == nil {
		v.metrics = telemetry.NewMetrics(nil)
	}
	return v
}

// Expected returns the histogram a truthful responder produces for claim.
// The result is shared between sessions and must not be modified.
func (v *Verifier) Expected(claim *big.Int, bitSpace int) (*relativity.Histogram, error) {
	key := fmt.Sprintf("%d/%s", bitSpace, claim.Text(16))
	if cached, ok := v.expected.Get(key); ok {
		return cached.(*relativity.Histogram), nil
	}

	h, err := relativity.BinaryRelativity(claim, bitSpace)
	if err != nil {
		return nil, err
	}
	v.expected.Set(key, h, cache.DefaultExpiration)
	return h, nil
}

// NewSession prepares the verification of att against claim.
func (v *Verifier) NewSession(att *attestation.Attestation, claim *big.Int, bitSpace int) (*Session, error) {
	if att.Len()*2 != bitSpace {
		return nil, fmt.Errorf("%w: %d bit pairs for %d bits", ErrBitSpaceMismatch, att.Len(), bitSpace)
	}
	expected, err := v.Expected(claim, bitSpace)
	if err != nil {
		return nil, fmt.Errorf("expected histogram: %w", err)
	}

	id := uuid.New()
	return &Session{
		ID:          id,
		verifier:    v,
		attestation: att,
		expected:    expected,
		observed:    relativity.NewHistogram(),
		log: v.logger.WithFields(log.Fields{
			"session":  id.String(),
			"bitSpace": bitSpace,
		}),
	}, nil
}
