package propcheck

import (
	"fmt"
	"iter"
	"math/rand"
	"reflect"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"

	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
	"propcheck/shrink"
	"propcheck/telemetry"
)

var log = logrus.WithField("component", "propcheck")

type lazyArbitrary[T any] struct {
	supplier func() Arbitrary[T]
	once     *sync.Once
	value    *Arbitrary[T]

	mu         *sync.Mutex
	generators map[lazyGeneratorKey]random.Generator[T]
}

type lazyGeneratorKey struct {
	genSize  int
	embedded bool
}

// Lazy defers building an arbitrary until a value is generated. It is the
// building block for recursive domains:
//
//	var tree Arbitrary[*Node]
//	tree = OneOf(leaf, Lazy(func() Arbitrary[*Node] { return node(tree, tree) }))
//
// A lazy arbitrary cannot be enumerated and has no edge cases, since both
// would have to expand the definition eagerly.
func Lazy[T any](supplier func() Arbitrary[T]) Arbitrary[T] {
	var a Arbitrary[T]
	return lazyArbitrary[T]{
		supplier:   supplier,
		once:       &sync.Once{},
		value:      &a,
		mu:         &sync.Mutex{},
		generators: make(map[lazyGeneratorKey]random.Generator[T]),
	}
}

func (l lazyArbitrary[T]) arbitrary() Arbitrary[T] {
	l.once.Do(func() { *l.value = l.supplier() })
	return *l.value
}

// generator derives the inner generator on first use. The lock is not held
// while deriving because the definition may refer back to this arbitrary.
func (l lazyArbitrary[T]) generator(key lazyGeneratorKey) (random.Generator[T], error) {
	l.mu.Lock()
	gen, ok := l.generators[key]
	l.mu.Unlock()
	if ok {
		return gen, nil
	}
	var err error
	if key.embedded {
		gen, err = l.arbitrary().GeneratorWithEmbeddedEdgeCases(key.genSize)
	} else {
		gen, err = l.arbitrary().Generator(key.genSize)
	}
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.generators[key] = gen
	l.mu.Unlock()
	return gen, nil
}

func (l lazyArbitrary[T]) deferred(key lazyGeneratorKey) random.Generator[T] {
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		gen, err := l.generator(key)
		if err != nil {
			return nil, err
		}
		return gen(r)
	}
}

func (l lazyArbitrary[T]) Generator(genSize int) (random.Generator[T], error) {
	return l.deferred(lazyGeneratorKey{genSize: genSize}), nil
}

func (l lazyArbitrary[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	return l.deferred(lazyGeneratorKey{genSize: genSize, embedded: true}), nil
}

func (l lazyArbitrary[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	return exhaustive.Generator[T]{}, fmt.Errorf("%w: lazy definition", exhaustive.ErrNotEnumerable)
}

func (l lazyArbitrary[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	return edgecase.None[T](), nil
}

func (l lazyArbitrary[T]) Memoizable() bool { return false }

// maxProduced bounds the values a lazy definition keeps for borrowing.
const maxProduced = 1000

type lazyKey struct {
	typ   reflect.Type
	shape string
}

var lazyRegistry = struct {
	sync.Mutex
	definitions map[lazyKey]any
}{definitions: make(map[lazyKey]any)}

// ResetLazyDefinitions drops every definition registered by LazyOf together
// with the values kept for borrowing. Sessions call it when they are closed.
func ResetLazyDefinitions() {
	lazyRegistry.Lock()
	defer lazyRegistry.Unlock()
	n := len(lazyRegistry.definitions)
	maps.Clear(lazyRegistry.definitions)
	log.WithField("definitions", n).Debug("reset lazy definitions")
}

// LazyOf picks one of the deferred alternatives with equal probability. The
// alternatives are only built when first needed.
//
// Definitions are registered per value type and set of supplier functions,
// so calling LazyOf again with the same functions returns the same
// definition and shares the values it produced. Closures created by the same
// function literal share their code, use LazyOfKeyed when they differ in
// what they capture.
//
// Shrinking a value tries, in this order: values produced earlier by the same
// definition that are not farther from the target, the value's own shrink
// candidates, and finally the first other alternative that, regenerated from
// the recorded seed, is not farther from the target.
func LazyOf[T any](suppliers ...func() Arbitrary[T]) Arbitrary[T] {
	pointers := make([]string, len(suppliers))
	for i, s := range suppliers {
		pointers[i] = fmt.Sprintf("%x", reflect.ValueOf(s).Pointer())
	}
	return lazyOfFor(strings.Join(pointers, ","), suppliers)
}

// LazyOfKeyed is LazyOf registered under an explicit key.
func LazyOfKeyed[T any](key string, suppliers ...func() Arbitrary[T]) Arbitrary[T] {
	return lazyOfFor("key:"+key, suppliers)
}

func lazyOfFor[T any](shape string, suppliers []func() Arbitrary[T]) Arbitrary[T] {
	if len(suppliers) == 0 {
		return ofArbitrary[T]{err: configErrorf("LazyOf needs at least one alternative")}
	}
	key := lazyKey{typ: reflect.TypeFor[T](), shape: shape}

	lazyRegistry.Lock()
	defer lazyRegistry.Unlock()
	if def, ok := lazyRegistry.definitions[key].(*lazyOf[T]); ok {
		return def
	}
	def := &lazyOf[T]{
		suppliers:  append([]func() Arbitrary[T](nil), suppliers...),
		generators: make(map[int][]random.Generator[T]),
	}
	lazyRegistry.definitions[key] = def
	return def
}

type lazyOf[T any] struct {
	suppliers []func() Arbitrary[T]

	once         sync.Once
	alternatives []Arbitrary[T]

	mu         sync.Mutex
	generators map[int][]random.Generator[T]
	produced   []*lazyShrinkable[T]
}

func (l *lazyOf[T]) arbitraries() []Arbitrary[T] {
	l.once.Do(func() {
		alternatives := make([]Arbitrary[T], len(l.suppliers))
		for i, s := range l.suppliers {
			alternatives[i] = s()
		}
		l.alternatives = alternatives
	})
	return l.alternatives
}

func (l *lazyOf[T]) branches(genSize int) ([]random.Generator[T], error) {
	l.mu.Lock()
	gens, ok := l.generators[genSize]
	l.mu.Unlock()
	if ok {
		return gens, nil
	}
	alternatives := l.arbitraries()
	gens = make([]random.Generator[T], len(alternatives))
	for i, a := range alternatives {
		gen, err := a.Generator(genSize)
		if err != nil {
			return nil, err
		}
		gens[i] = gen
	}
	l.mu.Lock()
	l.generators[genSize] = gens
	l.mu.Unlock()
	return gens, nil
}

func (l *lazyOf[T]) remember(s *lazyShrinkable[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.produced) < maxProduced {
		s.poolIndex = len(l.produced)
		l.produced = append(l.produced, s)
	}
}

func (l *lazyOf[T]) snapshot() []*lazyShrinkable[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*lazyShrinkable[T](nil), l.produced...)
}

func (l *lazyOf[T]) Generator(genSize int) (random.Generator[T], error) {
	return func(r *rand.Rand) (shrink.Shrinkable[T], error) {
		gens, err := l.branches(genSize)
		if err != nil {
			return nil, err
		}
		index := r.Intn(len(gens))
		seed, source := random.Derive(r)
		inner, err := gens[index](source)
		if err != nil {
			return nil, err
		}
		s := &lazyShrinkable[T]{
			owner:     l,
			genSize:   genSize,
			inner:     inner,
			seed:      seed,
			index:     index,
			used:      map[int]bool{index: true},
			borrowed:  map[int]bool{},
			poolIndex: -1,
		}
		l.remember(s)
		return s, nil
	}, nil
}

func (l *lazyOf[T]) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[T], error) {
	return l.Generator(genSize)
}

func (l *lazyOf[T]) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[T], error) {
	return exhaustive.Generator[T]{}, fmt.Errorf("%w: lazy alternatives", exhaustive.ErrNotEnumerable)
}

func (l *lazyOf[T]) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[T], error) {
	return edgecase.None[T](), nil
}

func (l *lazyOf[T]) Memoizable() bool { return false }

// lazyShrinkable is a value produced by a LazyOf definition. The seed and
// index record how to regenerate it, used tracks the alternatives already
// tried in this shrink lineage and borrowed the produced values taken over.
type lazyShrinkable[T any] struct {
	owner   *lazyOf[T]
	genSize int
	inner   shrink.Shrinkable[T]

	seed      int64
	index     int
	used      map[int]bool
	borrowed  map[int]bool
	poolIndex int
}

func (s *lazyShrinkable[T]) Value() T {
	return s.inner.Value()
}

func (s *lazyShrinkable[T]) Distance() shrink.Distance {
	return s.inner.Distance()
}

func (s *lazyShrinkable[T]) derive(inner shrink.Shrinkable[T], index int, used, borrowed map[int]bool) *lazyShrinkable[T] {
	return &lazyShrinkable[T]{
		owner:     s.owner,
		genSize:   s.genSize,
		inner:     inner,
		seed:      s.seed,
		index:     index,
		used:      used,
		borrowed:  borrowed,
		poolIndex: -1,
	}
}

func (s *lazyShrinkable[T]) Shrink() iter.Seq[shrink.Shrinkable[T]] {
	return shrink.Bounded(s.Distance(), func(yield func(shrink.Shrinkable[T]) bool) {
		if !s.borrow(yield) {
			return
		}
		if !s.intrinsic(yield) {
			return
		}
		s.alternative(yield)
	})
}

func (s *lazyShrinkable[T]) borrow(yield func(shrink.Shrinkable[T]) bool) bool {
	distance := s.Distance()
	borrowed := cloneSet(s.borrowed)
	if s.poolIndex >= 0 {
		borrowed[s.poolIndex] = true
	}
	for _, p := range s.owner.snapshot() {
		if p == s || borrowed[p.poolIndex] || !p.Distance().LessOrEqual(distance) {
			continue
		}
		borrowed[p.poolIndex] = true
		telemetry.LazyShrinks.WithLabelValues("borrowed").Inc()
		candidate := &lazyShrinkable[T]{
			owner:     s.owner,
			genSize:   s.genSize,
			inner:     p.inner,
			seed:      p.seed,
			index:     p.index,
			used:      cloneSet(p.used),
			borrowed:  cloneSet(borrowed),
			poolIndex: p.poolIndex,
		}
		if !yield(candidate) {
			return false
		}
	}
	return true
}

func (s *lazyShrinkable[T]) intrinsic(yield func(shrink.Shrinkable[T]) bool) bool {
	for c := range s.inner.Shrink() {
		telemetry.LazyShrinks.WithLabelValues("intrinsic").Inc()
		if !yield(s.derive(c, s.index, s.used, s.borrowed)) {
			return false
		}
	}
	return true
}

func (s *lazyShrinkable[T]) alternative(yield func(shrink.Shrinkable[T]) bool) {
	gens, err := s.owner.branches(s.genSize)
	if err != nil {
		return
	}
	distance := s.Distance()
	for i, gen := range gens {
		if s.used[i] {
			continue
		}
		c, err := gen(random.Replay(s.seed))
		if err != nil || !c.Distance().LessOrEqual(distance) {
			continue
		}
		used := cloneSet(s.used)
		used[i] = true
		telemetry.LazyShrinks.WithLabelValues("alternative").Inc()
		yield(s.derive(c, i, used, s.borrowed))
		return
	}
}

func cloneSet(m map[int]bool) map[int]bool {
	out := make(map[int]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
