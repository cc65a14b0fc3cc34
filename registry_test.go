package propcheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ x, y int }

func TestForTypeWithoutProviders(t *testing.T) {
	_, err := ForType[point](NewRegistry()).Generator(10)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRegisterConstructor(t *testing.T) {
	reg := NewRegistry()
	RegisterConstructor2(reg, func(x, y int) (point, error) {
		if x == y {
			return point{}, errors.New("on the diagonal")
		}
		return point{x, y}, nil
	}, digits, digits)

	for _, s := range draw(t, ForType[point](reg), 1, 100) {
		assert.NotEqual(t, s.Value().x, s.Value().y)
		checkShrinks(t, s, 10, func(p point) bool { return p.x != p.y })
	}

	Register(reg, Just(point{100, 100}))
	RegisterConstructor(reg, func(v int) (point, error) { return point{v, -v}, nil }, Of(1))
	seen := map[point]bool{}
	for _, s := range draw(t, ForType[point](reg), 2, 200) {
		seen[s.Value()] = true
	}
	assert.True(t, seen[point{100, 100}])
	assert.True(t, seen[point{1, -1}])

	_, err := ForType[string](reg).Generator(10)
	require.Error(t, err)
}
