// Package pyramid provides a hash-based index using the original
// Pyramid-technique: each point maps to a one-dimensional pyramid value
// which keys a bucket in a hash map.
package pyramid

import (
	"math"

	"github.com/DonaldWhyte/mdsearch/core"
	"github.com/DonaldWhyte/mdsearch/index"
	"github.com/DonaldWhyte/mdsearch/internal/hashstruct"
)

// MaxBucketNumber bounds the one-dimensional key space. It exceeds the
// exact-integer range of a 32-bit float, so the bucket interval is
// computed and held in 64-bit precision.
const MaxBucketNumber = 30000000000

// Compile-time checks to ensure PyramidTree satisfies the index
// contract.
var (
	_ index.Index[float32] = (*PyramidTree[float32])(nil)
	_ index.BucketStats    = (*PyramidTree[float32])(nil)
)

// PyramidTree is a Pyramid-technique index over the region described by
// its boundary. Points outside the boundary are still accepted; their
// normalised coordinates simply fall outside [0,1].
type PyramidTree[T core.Number] struct {
	*hashstruct.Store[T]

	boundary       core.Boundary[T]
	bucketInterval float64
}

// New creates an empty pyramid tree covering the given boundary.
func New[T core.Number](boundary core.Boundary[T]) *PyramidTree[T] {
	t := &PyramidTree[T]{
		boundary:       boundary.Clone(),
		bucketInterval: math.Floor(MaxBucketNumber / float64(2*boundary.Dims())),
	}
	t.Store = hashstruct.New(t.hashPoint)
	return t
}

// Clear removes all points and replaces the boundary. The index is
// meaningless without a boundary, so one must always be supplied.
func (t *PyramidTree[T]) Clear(newBoundary core.Boundary[T]) {
	t.Store.Clear()
	t.boundary = newBoundary.Clone()
}

func normaliseCoord[T core.Number](coord T, iv core.Interval[T]) float64 {
	return float64(coord-iv.Min) / float64(iv.Max-iv.Min)
}

// pyramidHeight is the distance of a coordinate from the centre of its
// dimension, in normalised space.
func pyramidHeight[T core.Number](coord T, iv core.Interval[T]) float64 {
	return math.Abs(0.5 - normaliseCoord(coord, iv))
}

// hashPoint computes the pyramid value of p. The dimension with the
// greatest height wins, except that dimensions sitting exactly on a
// boundary extreme (height tolerantly equal to 0.5) are skipped as
// max-candidates so that corner points do not all collapse into the
// same pyramid.
func (t *PyramidTree[T]) hashPoint(p core.Point[T]) core.HashKey {
	dMax := -1
	var dMaxHeight float64
	for d := range p {
		h := pyramidHeight(p[d], t.boundary[d])
		if core.Compare(h, 0.5) == 0 {
			continue
		}
		if dMax == -1 || h > dMaxHeight {
			dMax = d
			dMaxHeight = h
		}
	}
	if dMax == -1 {
		// Every dimension sits on an extreme; fall back to the first.
		dMax = 0
		dMaxHeight = pyramidHeight(p[0], t.boundary[0])
	}

	pyramidIndex := dMax
	if normaliseCoord(p[dMax], t.boundary[dMax]) >= 0.5 {
		pyramidIndex = dMax + p.Dims()
	}
	return core.HashKey((float64(pyramidIndex) + dMaxHeight) * t.bucketInterval)
}
