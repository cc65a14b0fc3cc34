package arbitraries

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringsArePrintable(t *testing.T) {
	printable := func(s string) bool {
		for _, r := range s {
			if r < ' ' || r > '~' {
				return false
			}
		}
		return true
	}
	for _, s := range draw(t, Strings().OfMaxLength(20), 11, 50) {
		assert.True(t, printable(s.Value()), "%q", s.Value())
		assert.LessOrEqual(t, utf8.RuneCountInString(s.Value()), 20)
		checkShrinks(t, s, 10, printable)
	}
}

func TestStringsUniqueChars(t *testing.T) {
	for _, s := range draw(t, Strings().UniqueChars().OfMaxLength(30), 12, 50) {
		seen := map[rune]bool{}
		for _, r := range s.Value() {
			assert.False(t, seen[r], "%q repeats %q", s.Value(), r)
			seen[r] = true
		}
	}
}

func TestStringEdgeCases(t *testing.T) {
	edges, err := Strings().EdgeCases(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"", " ", "~", "a", "`", "b"}, edges.Values())

	fixed, err := Strings().OfLength(2).EdgeCases(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"  ", "~~"}, fixed.Values())
}

func TestStringsShrinkTowardsA(t *testing.T) {
	for _, s := range draw(t, Strings().OfMinLength(1).OfMaxLength(5), 13, 20) {
		assert.Equal(t, "a", minimize(s))
	}
}

func TestRunesAreValid(t *testing.T) {
	for _, s := range draw(t, Runes(), 14, 200) {
		assert.True(t, utf8.ValidRune(s.Value()), "%U", s.Value())
	}
	edges, err := RunesBetween('x', 'z').EdgeCases(10)
	require.NoError(t, err)
	assert.Equal(t, []rune{'x', 'z'}, edges.Values())
}

func TestBooleans(t *testing.T) {
	all, err := Booleans().Exhaustive(10)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, all.Values())
	for _, s := range draw(t, Booleans(), 15, 20) {
		assert.False(t, minimize(s))
	}
}
