package memo

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propcheck/telemetry"
)

func TestLookupCachesValues(t *testing.T) {
	c := New(0)
	hits := testutil.ToFloat64(telemetry.CacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(telemetry.CacheLookups.WithLabelValues("miss"))

	derived := 0
	derive := func() (string, error) {
		derived++
		return "value", nil
	}
	for i := 0; i < 3; i++ {
		v, err := Lookup(c, "key", derive)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, derived)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, hits+2, testutil.ToFloat64(telemetry.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(telemetry.CacheLookups.WithLabelValues("miss")))

	c.Flush()
	assert.Zero(t, c.Len())
	_, err := Lookup(c, "key", derive)
	require.NoError(t, err)
	assert.Equal(t, 2, derived)
}

func TestLookupDoesNotCacheErrors(t *testing.T) {
	c := New(0)
	failure := errors.New("derivation failed")
	_, err := Lookup(c, "key", func() (int, error) { return 0, failure })
	assert.ErrorIs(t, err, failure)
	assert.Zero(t, c.Len())

	v, err := Lookup(c, "key", func() (int, error) { return 4, nil })
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestLookupWithoutCache(t *testing.T) {
	derived := 0
	for i := 0; i < 2; i++ {
		_, err := Lookup(nil, "key", func() (int, error) {
			derived++
			return derived, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, derived)
}

func TestConcurrentLookupsShareResult(t *testing.T) {
	c := New(0)
	var derived atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Lookup(c, "shared", func() (int, error) {
				derived.Add(1)
				return 7, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
	assert.LessOrEqual(t, derived.Load(), int32(16))
}
