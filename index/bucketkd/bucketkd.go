// Package bucketkd provides a bucket kd-tree index. Unlike the point
// kd-tree, points live only in the leaves, many per leaf. A full leaf
// splits along the dimension with the widest spread; a subtree that
// shrinks below MergeThreshold collapses back into a single leaf.
package bucketkd

import (
	"github.com/DonaldWhyte/mdsearch/core"
	"github.com/DonaldWhyte/mdsearch/index"
)

const (
	// BucketMax is the maximum number of points allowed in a leaf.
	BucketMax = 8
	// MergeThreshold is the subtree point count below which an internal
	// node merges its children back into a single leaf.
	MergeThreshold = BucketMax / 2
)

// Compile-time check to ensure BucketKDTree satisfies the index
// contract.
var _ index.Index[float32] = (*BucketKDTree[float32])(nil)

// BucketKDTree is a bucket kd-tree. The root starts out as an empty
// leaf; the number of dimensions is fixed by the first inserted point.
type BucketKDTree[T core.Number] struct {
	root *node[T]
}

// New creates an empty bucket kd-tree.
func New[T core.Number]() *BucketKDTree[T] {
	return &BucketKDTree[T]{root: newLeaf[T](nil, nil)}
}

// Clear removes all points from the tree.
func (t *BucketKDTree[T]) Clear() {
	t.root = newLeaf[T](nil, nil)
}

// TotalPoints returns the number of points currently stored.
func (t *BucketKDTree[T]) TotalPoints() int {
	return t.root.totalPoints
}

// Insert adds a point to the tree. It returns false if an equal point is
// already stored.
func (t *BucketKDTree[T]) Insert(p core.Point[T]) bool {
	return t.findLeafFor(p).addPoint(p)
}

// Query reports whether an equal point is stored in the tree.
func (t *BucketKDTree[T]) Query(p core.Point[T]) bool {
	return t.findLeafFor(p).contains(p)
}

// Remove deletes a point from the tree. It returns false if no equal
// point is stored.
func (t *BucketKDTree[T]) Remove(p core.Point[T]) bool {
	return t.findLeafFor(p).removePoint(p)
}

// findLeafFor descends the cutting planes to the leaf whose region
// contains p.
func (t *BucketKDTree[T]) findLeafFor(p core.Point[T]) *node[T] {
	current := t.root
	for !current.isLeaf {
		if p[current.cuttingDim] < current.cuttingValue {
			current = current.left
		} else {
			current = current.right
		}
	}
	return current
}
