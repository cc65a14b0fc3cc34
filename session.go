package propcheck

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"propcheck/config"
	"propcheck/exhaustive"
	"propcheck/memo"
	"propcheck/random"
	"propcheck/shrink"
)

// A Session produces the samples of one property run.
//
// It chooses between exhaustive and random generation, places the edge cases
// and caches generators of memoizable arbitraries. Close the session when the
// run is over to drop the lazy definitions it created.
type Session struct {
	id     uuid.UUID
	params config.Parameters
	seed   int64
	cache  *memo.Cache
	log    *logrus.Entry
}

// NewSession validates the options and creates a session.
func NewSession(opts ...config.Option) (*Session, error) {
	params := config.New(opts...)
	if err := params.Validate(); err != nil {
		return nil, err
	}
	id := uuid.New()
	return &Session{
		id:     id,
		params: params,
		seed:   random.SeedOrNow(params.Seed),
		cache:  memo.New(10 * time.Minute),
		log:    log.WithField("session", id.String()),
	}, nil
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Seed is the seed of the session's random source. Passing it back with
// the Seed option reproduces the session.
func (s *Session) Seed() int64 {
	return s.seed
}

func (s *Session) Parameters() config.Parameters {
	return s.params
}

// Close drops cached generators and every lazy definition.
func (s *Session) Close() {
	s.cache.Flush()
	ResetLazyDefinitions()
	s.log.Debug("session closed")
}

// Samples is the sequence of values a session produces for one arbitrary.
type Samples[T any] struct {
	mode       config.GenerationMode
	seed       int64
	tries      int64
	edges      []shrink.Shrinkable[T]
	generator  random.Generator[T]
	enumerator exhaustive.Generator[T]
}

// Mode is the generation mode the session chose, either random or
// exhaustive.
func (s *Samples[T]) Mode() config.GenerationMode {
	return s.mode
}

// Count is the number of samples All yields when no error occurs. For an
// exhaustive enumeration it is an upper bound.
func (s *Samples[T]) Count() int64 {
	if s.mode == config.GenerationExhaustive {
		return s.enumerator.MaxCount()
	}
	return s.tries
}

// All yields the samples. Each call restarts from the session seed, so the
// sequence is the same every time. Generation stops at the first error.
func (s *Samples[T]) All() iter.Seq2[shrink.Shrinkable[T], error] {
	return func(yield func(shrink.Shrinkable[T], error) bool) {
		if s.mode == config.GenerationExhaustive {
			for v := range s.enumerator.All() {
				if !yield(shrink.Unshrinkable(v), nil) {
					return
				}
			}
			return
		}
		var produced int64
		for _, e := range s.edges {
			if produced >= s.tries {
				return
			}
			produced++
			if !yield(e, nil) {
				return
			}
		}
		r := random.NewSource(s.seed)
		for ; produced < s.tries; produced++ {
			sample, err := s.generator(r)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(sample, nil) {
				return
			}
		}
	}
}

// Values collects the values of All.
func (s *Samples[T]) Values() ([]T, error) {
	var out []T
	for sample, err := range s.All() {
		if err != nil {
			return out, err
		}
		out = append(out, sample.Value())
	}
	return out, nil
}

// Generate prepares the samples of a for the session.
//
// In auto mode the whole domain is enumerated when it has at most Tries
// values, otherwise samples are random. Configuration errors of a are
// returned here, before any sample is drawn.
func Generate[T any](s *Session, a Arbitrary[T]) (*Samples[T], error) {
	p := s.params
	samples := &Samples[T]{seed: s.seed, tries: p.Tries}
	logger := s.log.WithField("seed", s.seed)

	if p.Generation != config.GenerationRandom {
		gen, err := a.Exhaustive(p.Tries)
		switch {
		case err == nil:
			samples.mode = config.GenerationExhaustive
			samples.enumerator = gen
			logger.WithField("count", gen.MaxCount()).Info("generating exhaustively")
			return samples, nil
		case p.Generation == config.GenerationExhaustive:
			return nil, err
		case !errors.Is(err, exhaustive.ErrInfeasible):
			return nil, err
		}
		logger.WithError(err).Debug("exhaustive generation not available")
	}

	samples.mode = config.GenerationRandom
	gen, err := cachedGenerator(s, a)
	if err != nil {
		return nil, err
	}
	if p.EdgeCases != config.EdgeCasesNone {
		edges, err := a.EdgeCases(p.MaxEdgeCases)
		if err != nil {
			return nil, err
		}
		if p.EdgeCases == config.EdgeCasesFirst {
			for e := range edges.All() {
				samples.edges = append(samples.edges, e)
			}
		} else {
			gen = random.WithEdgeCases(gen, edges, p.EdgeCaseProbability)
		}
	}
	samples.generator = gen
	logger.WithFields(logrus.Fields{
		"tries":      p.Tries,
		"gen_size":   p.GenSize,
		"edge_cases": p.EdgeCases,
	}).Info("generating randomly")
	return samples, nil
}

func cachedGenerator[T any](s *Session, a Arbitrary[T]) (random.Generator[T], error) {
	f, ok := a.(Fingerprinter)
	if !ok || !a.Memoizable() {
		return a.Generator(s.params.GenSize)
	}
	key := fmt.Sprintf("%T/%s/%d", a, f.Fingerprint(), s.params.GenSize)
	return memo.Lookup(s.cache, key, func() (random.Generator[T], error) {
		return a.Generator(s.params.GenSize)
	})
}
