// Package hashstruct provides the hash-map core shared by the
// hash-based index structures. Points are hashed to a one-dimensional
// key and stored in buckets of parallel point/sum slices; the hashing
// strategy is supplied by the owning index.
package hashstruct

import (
	"github.com/DonaldWhyte/mdsearch/core"
)

// HashFunc maps a point to its one-dimensional hash key.
type HashFunc[T core.Number] func(p core.Point[T]) core.HashKey

// bucket stores all points sharing a hash key. The sums slice mirrors
// points entry for entry; the coordinate sum is a cheap prefilter for
// the tolerant equality test.
type bucket[T core.Number] struct {
	points []core.Point[T]
	sums   []T
}

// indexOf returns the position of p in the bucket, or -1. The sum
// prefilter compares raw values; only candidates that pass it are
// checked with tolerant point equality.
func (b *bucket[T]) indexOf(p core.Point[T]) int {
	pSum := p.Sum()
	for i := range b.points {
		if pSum == b.sums[i] && p.Equal(b.points[i]) {
			return i
		}
	}
	return -1
}

// removeAt deletes the entry at index i by swapping it with the last
// entry of both slices. Bucket order is not preserved.
func (b *bucket[T]) removeAt(i int) {
	last := len(b.points) - 1
	b.points[i] = b.points[last]
	b.points[last] = nil
	b.points = b.points[:last]
	b.sums[i] = b.sums[last]
	b.sums = b.sums[:last]
}

// Store is a hash map from one-dimensional keys to buckets of points.
type Store[T core.Number] struct {
	hash    HashFunc[T]
	buckets map[core.HashKey]*bucket[T]
}

// New creates an empty store that hashes points with the given strategy.
func New[T core.Number](hash HashFunc[T]) *Store[T] {
	return &Store[T]{
		hash:    hash,
		buckets: make(map[core.HashKey]*bucket[T]),
	}
}

// Clear removes all points from the store.
func (s *Store[T]) Clear() {
	s.buckets = make(map[core.HashKey]*bucket[T])
}

// Insert adds a point to the store. It returns false if an equal point
// is already stored.
func (s *Store[T]) Insert(p core.Point[T]) bool {
	key := s.hash(p)
	b, ok := s.buckets[key]
	if !ok {
		s.buckets[key] = &bucket[T]{
			points: []core.Point[T]{p.Clone()},
			sums:   []T{p.Sum()},
		}
		return true
	}
	if b.indexOf(p) != -1 {
		return false
	}
	b.points = append(b.points, p.Clone())
	b.sums = append(b.sums, p.Sum())
	return true
}

// Remove deletes a point from the store. It returns false if no equal
// point is stored.
func (s *Store[T]) Remove(p core.Point[T]) bool {
	b, ok := s.buckets[s.hash(p)]
	if !ok {
		return false
	}
	i := b.indexOf(p)
	if i == -1 {
		return false
	}
	b.removeAt(i)
	return true
}

// Query reports whether an equal point is stored.
func (s *Store[T]) Query(p core.Point[T]) bool {
	b, ok := s.buckets[s.hash(p)]
	return ok && b.indexOf(p) != -1
}

// NumPointsStored returns the total number of points in the store.
func (s *Store[T]) NumPointsStored() int {
	total := 0
	for _, b := range s.buckets {
		total += len(b.points)
	}
	return total
}

// NumBuckets returns the number of buckets currently allocated.
func (s *Store[T]) NumBuckets() int {
	return len(s.buckets)
}

// AvgPointsPerBucket returns the mean number of points per bucket, or 0
// when the store is empty.
func (s *Store[T]) AvgPointsPerBucket() float64 {
	if len(s.buckets) == 0 {
		return 0
	}
	return float64(s.NumPointsStored()) / float64(len(s.buckets))
}

// MinPointsPerBucket returns the smallest bucket's point count, or 0
// when the store is empty.
func (s *Store[T]) MinPointsPerBucket() int {
	minCount := 0
	first := true
	for _, b := range s.buckets {
		if first || len(b.points) < minCount {
			minCount = len(b.points)
			first = false
		}
	}
	return minCount
}

// MaxPointsPerBucket returns the largest bucket's point count.
func (s *Store[T]) MaxPointsPerBucket() int {
	maxCount := 0
	for _, b := range s.buckets {
		if len(b.points) > maxCount {
			maxCount = len(b.points)
		}
	}
	return maxCount
}
