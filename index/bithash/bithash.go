// Package bithash provides a hash-based index that keys buckets by
// combining the bit patterns of a point's coordinates. Unlike the
// pyramid tree it needs no boundary, at the cost of hash keys with no
// spatial meaning.
package bithash

import (
	"math"

	"github.com/DonaldWhyte/mdsearch/core"
	"github.com/DonaldWhyte/mdsearch/index"
	"github.com/DonaldWhyte/mdsearch/internal/hashstruct"
)

// Compile-time checks to ensure BitHash satisfies the index contract.
var (
	_ index.Index[float32] = (*BitHash[float32])(nil)
	_ index.BucketStats    = (*BitHash[float32])(nil)
)

// BitHash is a boundary-free hash index over points.
type BitHash[T core.Number] struct {
	*hashstruct.Store[T]
}

// New creates an empty bit-pattern hash index.
func New[T core.Number]() *BitHash[T] {
	b := &BitHash[T]{}
	b.Store = hashstruct.New(hashPoint[T])
	return b
}

// hashPoint folds the coordinates' bit patterns into a single key with
// the golden-ratio combine recurrence.
func hashPoint[T core.Number](p core.Point[T]) core.HashKey {
	var seed uint64
	for d := range p {
		bits := math.Float64bits(float64(p[d]))
		seed ^= bits + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2)
	}
	return core.HashKey(seed)
}
