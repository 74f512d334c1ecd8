// Package indextest provides a conformance suite for the shared index
// contract. Every index variant's package tests run the suite against a
// fresh instance factory.
package indextest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonaldWhyte/mdsearch/core"
	"github.com/DonaldWhyte/mdsearch/dataset"
	"github.com/DonaldWhyte/mdsearch/index"
)

// Factory creates a fresh, empty index for a suite run.
type Factory func() index.Index[float32]

// RunContract exercises the operation contract shared by all index
// variants: empty queries, insert/query round-trips, duplicate inserts,
// removals of present and absent points and a bulk round-trip over a
// reproducible random point set.
func RunContract(t *testing.T, dims int, newIndex Factory) {
	t.Run("EmptyQuery", func(t *testing.T) {
		s := newIndex()
		for _, p := range distinctPoints(t, dims, 10) {
			assert.False(t, s.Query(p))
		}
	})

	t.Run("InsertThenQuery", func(t *testing.T) {
		s := newIndex()
		p := core.NewPoint[float32](dims, 0.5)
		require.True(t, s.Insert(p))
		assert.True(t, s.Query(p))
	})

	t.Run("InsertIdempotence", func(t *testing.T) {
		s := newIndex()
		p := core.NewPoint[float32](dims, 0.5)
		require.True(t, s.Insert(p))
		assert.False(t, s.Insert(p))
		assert.True(t, s.Query(p))
	})

	t.Run("RemoveAfterInsert", func(t *testing.T) {
		s := newIndex()
		p := core.NewPoint[float32](dims, 0.5)
		require.True(t, s.Insert(p))
		assert.True(t, s.Remove(p))
		assert.False(t, s.Query(p))
	})

	t.Run("RemoveWithoutInsert", func(t *testing.T) {
		s := newIndex()
		p := core.NewPoint[float32](dims, 0.5)
		assert.False(t, s.Remove(p))

		other := core.NewPoint[float32](dims, 0.25)
		require.True(t, s.Insert(other))
		assert.False(t, s.Remove(p))
		assert.True(t, s.Query(other))
	})

	t.Run("BulkRoundTrip", func(t *testing.T) {
		s := newIndex()
		points := distinctPoints(t, dims, 200)

		for i, p := range points {
			require.True(t, s.Insert(p), "insert of point %d: %v", i, p)
		}
		for i, p := range points {
			require.True(t, s.Query(p), "query of point %d: %v", i, p)
		}
		for i, p := range points {
			require.True(t, s.Remove(p), "remove of point %d: %v", i, p)
		}
		for i, p := range points {
			require.False(t, s.Query(p), "query of removed point %d: %v", i, p)
		}
		assert.False(t, s.Remove(points[0]))
	})

	t.Run("ReinsertAfterRemove", func(t *testing.T) {
		s := newIndex()
		points := distinctPoints(t, dims, 50)
		for _, p := range points {
			require.True(t, s.Insert(p))
		}
		for _, p := range points[:25] {
			require.True(t, s.Remove(p))
		}
		for _, p := range points[:25] {
			require.True(t, s.Insert(p))
		}
		for _, p := range points {
			assert.True(t, s.Query(p))
		}
	})
}

// distinctPoints generates a reproducible random point set with no two
// points equal under the tolerant comparison.
func distinctPoints(t *testing.T, dims, num int) []core.Point[float32] {
	t.Helper()

	rng := dataset.NewRNG(42)
	candidates := dataset.RandomPoints[float32](rng, num*2, dims, 0, 1)

	points := make([]core.Point[float32], 0, num)
	for _, c := range candidates {
		if len(points) == num {
			break
		}
		duplicate := false
		for _, p := range points {
			if p.Equal(c) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			points = append(points, c)
		}
	}
	require.Len(t, points, num)
	return points
}
