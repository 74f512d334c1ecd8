// Package index defines the contract shared by all point index
// structures.
package index

import (
	"github.com/DonaldWhyte/mdsearch/core"
)

// Index is the capability set every index variant exposes. All three
// operations decide presence by tolerant point equality and signal their
// outcome through the returned bool; none of them performs I/O.
type Index[T core.Number] interface {
	// Insert adds a point to the index. It returns false if an equal
	// point is already stored, in which case the index is unchanged.
	Insert(p core.Point[T]) bool

	// Remove deletes a point from the index. It returns false if no
	// equal point is stored.
	Remove(p core.Point[T]) bool

	// Query reports whether an equal point is currently stored.
	Query(p core.Point[T]) bool
}

// BucketStats describes the bucket occupancy of a hash-based index.
type BucketStats interface {
	// NumPointsStored returns the total number of points in the index.
	NumPointsStored() int

	// NumBuckets returns the number of buckets currently allocated.
	NumBuckets() int

	// AvgPointsPerBucket returns the mean number of points per bucket.
	AvgPointsPerBucket() float64

	// MinPointsPerBucket returns the smallest bucket's point count.
	MinPointsPerBucket() int

	// MaxPointsPerBucket returns the largest bucket's point count.
	MaxPointsPerBucket() int
}
