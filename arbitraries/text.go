package arbitraries

import (
	"unicode"
	"unicode/utf8"

	"propcheck"
	"propcheck/edgecase"
	"propcheck/exhaustive"
	"propcheck/random"
)

// Booleans generates false and true. Samples shrink towards false.
func Booleans() propcheck.Arbitrary[bool] {
	return propcheck.Of(false, true)
}

// Runes generates valid unicode code points, shrinking towards 'a'.
func Runes() propcheck.Arbitrary[rune] {
	return RunesBetween(0, unicode.MaxRune)
}

// RunesBetween generates the valid code points in [min, max]. Samples shrink
// towards 'a' when it is in the range and towards min otherwise.
func RunesBetween(min, max rune) propcheck.Arbitrary[rune] {
	runes := Integers[rune]().Between(min, max)
	if min <= 'a' && 'a' <= max {
		runes = runes.ShrinkTowards('a')
	}
	return propcheck.Filter[rune](runes, utf8.ValidRune)
}

// StringArbitrary generates strings from a rune domain.
type StringArbitrary struct {
	chars propcheck.Arbitrary[rune]
	list  func(propcheck.Arbitrary[rune]) ListArbitrary[rune]
}

// Strings generates strings of printable ASCII characters.
func Strings() StringArbitrary {
	return StringArbitrary{
		chars: RunesBetween(' ', '~'),
		list:  Lists[rune],
	}
}

// WithChars replaces the characters strings are built from.
func (s StringArbitrary) WithChars(chars propcheck.Arbitrary[rune]) StringArbitrary {
	s.chars = chars
	return s
}

func (s StringArbitrary) resize(f func(ListArbitrary[rune]) ListArbitrary[rune]) StringArbitrary {
	list := s.list
	s.list = func(chars propcheck.Arbitrary[rune]) ListArbitrary[rune] { return f(list(chars)) }
	return s
}

// OfMinLength sets the minimum number of runes.
func (s StringArbitrary) OfMinLength(n int) StringArbitrary {
	return s.resize(func(l ListArbitrary[rune]) ListArbitrary[rune] { return l.OfMinSize(n) })
}

// OfMaxLength sets the maximum number of runes.
func (s StringArbitrary) OfMaxLength(n int) StringArbitrary {
	return s.resize(func(l ListArbitrary[rune]) ListArbitrary[rune] { return l.OfMaxSize(n) })
}

func (s StringArbitrary) OfLength(n int) StringArbitrary {
	return s.OfMinLength(n).OfMaxLength(n)
}

// UniqueChars makes the runes of a string distinct.
func (s StringArbitrary) UniqueChars() StringArbitrary {
	return s.resize(func(l ListArbitrary[rune]) ListArbitrary[rune] { return l.UniqueElements() })
}

func (s StringArbitrary) arbitrary() propcheck.Arbitrary[string] {
	return propcheck.Map[[]rune](s.list(s.chars), func(rs []rune) string { return string(rs) })
}

func (s StringArbitrary) Validate() error {
	return s.list(s.chars).Validate()
}

func (s StringArbitrary) Generator(genSize int) (random.Generator[string], error) {
	return s.arbitrary().Generator(genSize)
}

func (s StringArbitrary) GeneratorWithEmbeddedEdgeCases(genSize int) (random.Generator[string], error) {
	return s.arbitrary().GeneratorWithEmbeddedEdgeCases(genSize)
}

func (s StringArbitrary) Exhaustive(maxNumberOfSamples int64) (exhaustive.Generator[string], error) {
	return s.arbitrary().Exhaustive(maxNumberOfSamples)
}

func (s StringArbitrary) EdgeCases(maxEdgeCases int) (edgecase.EdgeCases[string], error) {
	return s.arbitrary().EdgeCases(maxEdgeCases)
}

func (s StringArbitrary) Memoizable() bool { return false }
