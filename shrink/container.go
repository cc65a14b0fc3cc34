package shrink

import "iter"

type container[E any] struct {
	elements []Shrinkable[E]
	minSize  int
	unique   []FeatureExtractor[E]
}

// Container creates a shrinkable collection of elements.
//
// Shrinking first removes elements, largest cuts first, never going below
// minSize. It then shrinks the remaining elements one position at a time.
// Candidates that would break uniqueness under the extractors are skipped.
func Container[E any](elements []Shrinkable[E], minSize int, unique []FeatureExtractor[E]) Shrinkable[[]E] {
	return &container[E]{
		elements: elements,
		minSize:  minSize,
		unique:   unique,
	}
}

func (c *container[E]) Value() []E {
	out := make([]E, len(c.elements))
	for i, e := range c.elements {
		out[i] = e.Value()
	}
	return out
}

func (c *container[E]) Distance() Distance {
	distances := make([]Distance, len(c.elements))
	for i, e := range c.elements {
		distances[i] = e.Distance()
	}
	return ForCollection(len(c.elements), distances)
}

func (c *container[E]) Shrink() iter.Seq[Shrinkable[[]E]] {
	return Bounded(c.Distance(), func(yield func(Shrinkable[[]E]) bool) {
		if !c.shrinkSize(yield) {
			return
		}
		c.shrinkElements(yield)
	})
}

func (c *container[E]) shrinkSize(yield func(Shrinkable[[]E]) bool) bool {
	n := len(c.elements)
	for cut := n - c.minSize; cut > 0; cut /= 2 {
		for start := 0; start+cut <= n; start += cut {
			rest := make([]Shrinkable[E], 0, n-cut)
			rest = append(rest, c.elements[:start]...)
			rest = append(rest, c.elements[start+cut:]...)
			if !yield(Container(rest, c.minSize, c.unique)) {
				return false
			}
		}
	}
	return true
}

func (c *container[E]) shrinkElements(yield func(Shrinkable[[]E]) bool) bool {
	var values []E
	if len(c.unique) > 0 {
		values = c.Value()
	}
	for i, element := range c.elements {
		for candidate := range element.Shrink() {
			if len(c.unique) > 0 && Collides(values, i, candidate.Value(), c.unique) {
				continue
			}
			replaced := make([]Shrinkable[E], len(c.elements))
			copy(replaced, c.elements)
			replaced[i] = candidate
			if !yield(Container(replaced, c.minSize, c.unique)) {
				return false
			}
		}
	}
	return true
}
