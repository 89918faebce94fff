package verifier

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/takakv/bpattest/attestation"
	"github.com/takakv/bpattest/relativity"
	"github.com/takakv/bpattest/scheme"
	"github.com/takakv/bpattest/util"
)

// Responder answers challenges; it is the holder of the private key.
type Responder interface {
	Respond(ctx context.Context, challenge scheme.Ciphertext) (relativity.Category, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, challenge scheme.Ciphertext) (relativity.Category, error)

func (f ResponderFunc) Respond(ctx context.Context, challenge scheme.Ciphertext) (relativity.Category, error) {
	return f(ctx, challenge)
}

// LocalResponder decodes challenges with a private key held in process.
type LocalResponder struct {
	Key scheme.PrivateKey
}

func (r LocalResponder) Respond(_ context.Context, challenge scheme.Ciphertext) (relativity.Category, error) {
	return attestation.CreateChallengeResponse(r.Key, challenge), nil
}

// Result summarises a finished session.
type Result struct {
	SessionID uuid.UUID
	Certainty float64
	Match     float64
	Rounds    uint64
	Honest    bool
	Observed  [relativity.NumCategories]uint64
}

// Session is one verification of one attestation against one claimed value.
type Session struct {
	ID          uuid.UUID
	verifier    *Verifier
	attestation *attestation.Attestation
	expected    *relativity.Histogram
	observed    *relativity.Histogram
	log         *log.Entry
	ran         atomic.Bool
}

type round struct {
	challenge scheme.Ciphertext
	honesty   bool
	want      relativity.Category
}

// Expected returns the histogram the session scores against.
func (s *Session) Expected() *relativity.Histogram {
	return s.expected
}

// Observed returns the histogram accumulated so far.
func (s *Session) Observed() *relativity.Histogram {
	return s.observed
}

// Run challenges every bit pair once, mixed with the configured number of
// honesty checks in random order, and sends the rounds to responder from a
// bounded pool of workers. A wrong answer to an honesty check makes the
// session dishonest and its certainty 0. A session runs once; later calls
// return ErrSessionDone.
func (s *Session) Run(ctx context.Context, responder Responder) (Result, error) {
	if s.ran.Swap(true) {
		return Result{}, ErrSessionDone
	}
	rounds, err := s.rounds()
	if err != nil {
		s.verifier.metrics.ObserveSession("failed")
		return Result{}, err
	}
	s.log.WithFields(log.Fields{
		"rounds":        len(rounds),
		"honestyChecks": s.verifier.honestyChecks,
	}).Debug("session started")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg        sync.WaitGroup
		errOnce   sync.Once
		firstErr  error
		dishonest atomic.Bool
	)
	work := make(chan round)

	workers := s.verifier.workers
	if workers > len(rounds) {
		workers = len(rounds)
	}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for r := range work {
				response, err := responder.Respond(ctx, r.challenge)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				s.record(r, response, &dishonest)
			}
		}()
	}

dispatch:
	for _, r := range rounds {
		select {
		case work <- r:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(work)
	wg.Wait()

	if firstErr == nil && ctx.Err() != nil {
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		s.log.WithError(firstErr).Error("session aborted")
		s.verifier.metrics.ObserveSession("failed")
		return Result{}, fmt.Errorf("session %s: %w", s.ID, firstErr)
	}

	result := Result{
		SessionID: s.ID,
		Match:     relativity.Match(s.expected, s.observed),
		Certainty: relativity.Certainty(s.expected, s.observed),
		Rounds:    s.observed.Total(),
		Honest:    !dishonest.Load(),
		Observed:  s.observed.Counts(),
	}
	if !result.Honest {
		result.Certainty = 0
		s.verifier.metrics.ObserveSession("dishonest")
	} else {
		s.verifier.metrics.ObserveSession("honest")
	}

	s.log.WithFields(log.Fields{
		"certainty": result.Certainty,
		"match":     result.Match,
		"rounds":    result.Rounds,
		"honest":    result.Honest,
	}).Info("session finished")
	return result, nil
}

func (s *Session) record(r round, response relativity.Category, dishonest *atomic.Bool) {
	if r.honesty {
		if response != r.want {
			dishonest.Store(true)
			s.verifier.metrics.ObserveHonestyFailure()
			s.log.WithFields(log.Fields{
				"want": r.want.String(),
				"got":  response.String(),
			}).Warn("honesty check failed")
		}
		return
	}

	if err := s.observed.Process(response); err != nil {
		// An out-of-range answer cannot come from an honest decoder.
		dishonest.Store(true)
		s.log.WithError(err).Warn("invalid response")
		return
	}
	s.verifier.metrics.ObserveResponse(response)
}

func (s *Session) rounds() ([]round, error) {
	rnd := s.verifier.rnd
	pk := s.attestation.PublicKey()

	rounds := make([]round, 0, s.attestation.Len()+s.verifier.honestyChecks)
	for _, bp := range s.attestation.BitPairs() {
		challenge, err := attestation.CreateChallenge(rnd, pk, bp)
		if err != nil {
			return nil, fmt.Errorf("create challenge: %w", err)
		}
		rounds = append(rounds, round{challenge: challenge})
	}

	for i := 0; i < s.verifier.honestyChecks; i++ {
		v, err := util.RandomBelow(rnd, big.NewInt(3))
		if err != nil {
			return nil, err
		}
		challenge, err := attestation.CreateHonestyCheck(rnd, pk, v.Int64())
		if err != nil {
			return nil, fmt.Errorf("create honesty check: %w", err)
		}
		rounds = append(rounds, round{challenge: challenge, honesty: true, want: relativity.Category(v.Int64())})
	}

	err := util.Shuffle(rnd, len(rounds), func(i, j int) { rounds[i], rounds[j] = rounds[j], rounds[i] })
	if err != nil {
		return nil, err
	}
	return rounds, nil
}
