package propcheck

import (
	"reflect"
	"sync"
)

// Registry maps types to the arbitraries used for them when a caller asks for
// a type instead of describing a domain. Nothing is discovered implicitly:
// every provider is registered by the caller.
type Registry struct {
	mu        sync.RWMutex
	providers map[reflect.Type][]any
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[reflect.Type][]any)}
}

// Register adds a as a provider of T.
func Register[T any](reg *Registry, a Arbitrary[T]) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	typ := reflect.TypeFor[T]()
	reg.providers[typ] = append(reg.providers[typ], a)
}

// RegisterConstructor adds a provider of T that calls f with values of a.
// Values for which f fails are unusable samples and are skipped.
//
// f must be deterministic, it is called again when the value shrinks.
func RegisterConstructor[A, T any](reg *Registry, f func(A) (T, error), a Arbitrary[A]) {
	Register(reg, TryMap(a, f))
}

// RegisterConstructor2 is RegisterConstructor for two parameters.
func RegisterConstructor2[A, B, T any](reg *Registry, f func(A, B) (T, error), a Arbitrary[A], b Arbitrary[B]) {
	Register(reg, TryMap(Tuple2(a, b), func(p Pair[A, B]) (T, error) {
		return f(p.First, p.Second)
	}))
}

// ForType picks one of the providers registered for T with equal
// probability. Without providers every derivation fails with
// ErrConfiguration.
func ForType[T any](reg *Registry) Arbitrary[T] {
	typ := reflect.TypeFor[T]()
	reg.mu.RLock()
	registered := append([]any(nil), reg.providers[typ]...)
	reg.mu.RUnlock()

	choices := make([]Arbitrary[T], 0, len(registered))
	for _, p := range registered {
		choices = append(choices, p.(Arbitrary[T]))
	}
	if len(choices) == 0 {
		return ofArbitrary[T]{err: configErrorf("no usable constructors for %v", typ)}
	}
	if len(choices) == 1 {
		return choices[0]
	}
	return OneOf(choices...)
}
