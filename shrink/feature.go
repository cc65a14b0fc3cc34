package shrink

// FeatureExtractor projects an element onto the key used to test uniqueness.
// Extracted keys must be comparable.
type FeatureExtractor[E any] func(E) any

// Identity uses the element itself as its feature.
func Identity[E any]() FeatureExtractor[E] {
	return func(e E) any { return e }
}

// AreUnique reports whether no two values share a feature under any of the
// extractors.
func AreUnique[E any](values []E, extractors []FeatureExtractor[E]) bool {
	for _, extract := range extractors {
		seen := make(map[any]struct{}, len(values))
		for _, v := range values {
			key := extract(v)
			if _, ok := seen[key]; ok {
				return false
			}
			seen[key] = struct{}{}
		}
	}
	return true
}

// Collides reports whether candidate shares a feature with any of the
// accepted values, ignoring the value at position skip.
func Collides[E any](accepted []E, skip int, candidate E, extractors []FeatureExtractor[E]) bool {
	for _, extract := range extractors {
		key := extract(candidate)
		for i, v := range accepted {
			if i == skip {
				continue
			}
			if extract(v) == key {
				return true
			}
		}
	}
	return false
}
