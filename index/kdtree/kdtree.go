// Package kdtree provides a point kd-tree index, after Bentley's
// "Multidimensional binary search trees used for associative searching"
// (1975). Each node stores a single point and the cutting dimension
// cycles with tree depth.
package kdtree

import (
	"github.com/DonaldWhyte/mdsearch/core"
	"github.com/DonaldWhyte/mdsearch/index"
)

// Compile-time check to ensure KDTree satisfies the index contract.
var _ index.Index[float32] = (*KDTree[float32])(nil)

type node[T core.Number] struct {
	point core.Point[T]
	left  *node[T]
	right *node[T]
}

// KDTree is a point kd-tree. The number of dimensions is fixed by the
// first inserted point.
type KDTree[T core.Number] struct {
	root *node[T]
	size int
}

// New creates an empty point kd-tree.
func New[T core.Number]() *KDTree[T] {
	return &KDTree[T]{}
}

// Clear removes all points from the tree.
func (t *KDTree[T]) Clear() {
	t.root = nil
	t.size = 0
}

// Len returns the number of points currently stored.
func (t *KDTree[T]) Len() int {
	return t.size
}

// Insert adds a point to the tree. It returns false if an equal point is
// already stored.
func (t *KDTree[T]) Insert(p core.Point[T]) bool {
	var (
		previous   *node[T]
		leftOfPrev bool
	)
	current := t.root
	cuttingDim := 0

	for {
		switch {
		case current == nil:
			current = &node[T]{point: p.Clone()}
			if previous != nil {
				if leftOfPrev {
					previous.left = current
				} else {
					previous.right = current
				}
			} else {
				t.root = current
			}
			t.size++
			return true

		case p.Equal(current.point):
			// Duplicate point, cannot insert.
			return false

		case p[cuttingDim] < current.point[cuttingDim]:
			previous = current
			current = current.left
			leftOfPrev = true

		default:
			previous = current
			current = current.right
			leftOfPrev = false
		}
		cuttingDim = nextCuttingDimension(cuttingDim, len(p))
	}
}

// Query reports whether an equal point is stored in the tree.
func (t *KDTree[T]) Query(p core.Point[T]) bool {
	current := t.root
	cuttingDim := 0
	for current != nil {
		if p.Equal(current.point) {
			return true
		}
		if p[cuttingDim] < current.point[cuttingDim] {
			current = current.left
		} else {
			current = current.right
		}
		cuttingDim = nextCuttingDimension(cuttingDim, len(p))
	}
	return false
}

// Remove deletes a point from the tree. It returns false if no equal
// point is stored.
func (t *KDTree[T]) Remove(p core.Point[T]) bool {
	var removed bool
	t.root = t.recursiveRemove(t.root, p, 0, &removed)
	if removed {
		t.size--
	}
	return removed
}

func nextCuttingDimension(cuttingDim, dims int) int {
	return (cuttingDim + 1) % dims
}

func (t *KDTree[T]) recursiveRemove(n *node[T], p core.Point[T], cuttingDim int, removed *bool) *node[T] {
	if n == nil {
		return nil
	}

	dims := len(p)
	switch {
	case p[cuttingDim] < n.point[cuttingDim]:
		n.left = t.recursiveRemove(n.left, p, nextCuttingDimension(cuttingDim, dims), removed)
	case p[cuttingDim] > n.point[cuttingDim]:
		n.right = t.recursiveRemove(n.right, p, nextCuttingDimension(cuttingDim, dims), removed)
	default:
		if !p.Equal(n.point) {
			// Tied on the cutting coordinate but a different point;
			// Insert routes such ties to the right.
			n.right = t.recursiveRemove(n.right, p, nextCuttingDimension(cuttingDim, dims), removed)
			return n
		}
		if n.left == nil && n.right == nil {
			*removed = true
			return nil
		}
		// Replace the node's point with the minimum along the cutting
		// dimension and remove that minimum from the subtree it came
		// from.
		if n.right != nil {
			n.point = findMinimum(n.right, cuttingDim, nextCuttingDimension(cuttingDim, dims)).Clone()
			n.right = t.recursiveRemove(n.right, n.point, nextCuttingDimension(cuttingDim, dims), removed)
		} else {
			n.point = findMinimum(n.left, cuttingDim, nextCuttingDimension(cuttingDim, dims)).Clone()
			n.left = t.recursiveRemove(n.left, n.point, nextCuttingDimension(cuttingDim, dims), removed)
			n.right = n.left
			n.left = nil
		}
	}
	return n
}

// findMinimum returns the point with the lowest value in the given
// dimension within the subtree rooted at n. When the node's cutting
// dimension is the dimension searched for, only the left child can hold
// a smaller value; otherwise both children are searched.
func findMinimum[T core.Number](n *node[T], dimension, cuttingDim int) core.Point[T] {
	if n == nil {
		return nil
	}

	dims := len(n.point)
	if dimension == cuttingDim {
		if n.left == nil {
			return n.point
		}
		return findMinimum(n.left, dimension, nextCuttingDimension(cuttingDim, dims))
	}

	a := findMinimum(n.left, dimension, nextCuttingDimension(cuttingDim, dims))
	b := findMinimum(n.right, dimension, nextCuttingDimension(cuttingDim, dims))

	minimum := n.point
	if a != nil && a[dimension] < minimum[dimension] {
		minimum = a
	}
	if b != nil && b[dimension] < minimum[dimension] {
		minimum = b
	}
	return minimum
}
