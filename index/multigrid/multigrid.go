// Package multigrid provides a dimension-recursive hash-partition
// index. The first level hashes dimension 0, the next dimension 1, and
// so on; leaves hold indices into a single shared point slice.
package multigrid

import (
	"github.com/DonaldWhyte/mdsearch/core"
	"github.com/DonaldWhyte/mdsearch/index"
)

// Compile-time checks to ensure Multigrid satisfies the index contract.
var (
	_ index.Index[float32] = (*Multigrid[float32])(nil)
	_ index.BucketStats    = (*Multigrid[float32])(nil)
)

// Options contains configuration options for the multigrid.
type Options struct {
	// IntervalsPerDimension is the number of grid cells a dimension's
	// normalised range is divided into.
	IntervalsPerDimension float64

	// BucketSize is the number of points a leaf holds before it is
	// split on the next dimension. Leaves at the maximum depth grow
	// past this size since no further dimension can discriminate.
	BucketSize int
}

// DefaultOptions contains the default configuration options for the
// multigrid.
var DefaultOptions = Options{
	IntervalsPerDimension: 1000000000,
	BucketSize:            8,
}

// node is either a leaf carrying indices into the grid's point slice or
// an internal node dispatching to children by per-dimension hash.
type node struct {
	isLeaf       bool
	pointIndices []int
	children     map[core.HashKey]*node
}

func newLeaf(pointIndex int) *node {
	return &node{isLeaf: true, pointIndices: []int{pointIndex}}
}

// removeAt deletes the index at position i by swapping it with the last
// entry. Leaf order is not preserved.
func (n *node) removeAt(i int) {
	last := len(n.pointIndices) - 1
	n.pointIndices[i] = n.pointIndices[last]
	n.pointIndices = n.pointIndices[:last]
}

// Multigrid is a tree of hash maps over the region described by its
// boundary. Stored points live in one shared slice; removed slots are
// recycled through a LIFO free-index stack so the slice does not grow
// needlessly.
type Multigrid[T core.Number] struct {
	opts     Options
	boundary core.Boundary[T]

	roots       map[core.HashKey]*node
	points      []core.Point[T]
	freeIndices []int
}

// New creates an empty multigrid covering the given boundary.
func New[T core.Number](boundary core.Boundary[T], optFns ...func(o *Options)) *Multigrid[T] {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Multigrid[T]{
		opts:     opts,
		boundary: boundary.Clone(),
		roots:    make(map[core.HashKey]*node),
	}
}

// Clear removes all points and replaces the boundary. The index is
// meaningless without a boundary, so one must always be supplied.
func (m *Multigrid[T]) Clear(newBoundary core.Boundary[T]) {
	m.boundary = newBoundary.Clone()
	m.roots = make(map[core.HashKey]*node)
	m.points = nil
	m.freeIndices = nil
}

// Insert adds a point to the grid. It returns false if an equal point
// is already stored.
func (m *Multigrid[T]) Insert(p core.Point[T]) bool {
	key := m.hashPoint(p, 0)
	n, ok := m.roots[key]
	if !ok {
		m.roots[key] = newLeaf(m.allocPoint(p))
		return true
	}
	return m.insertIntoBucket(p, 1, n)
}

// Query reports whether an equal point is stored in the grid.
func (m *Multigrid[T]) Query(p core.Point[T]) bool {
	current := m.roots[m.hashPoint(p, 0)]
	level := 1
	for current != nil {
		if current.isLeaf {
			return m.indexInLeaf(current, p) != -1
		}
		current = current.children[m.hashPoint(p, level)]
		level++
	}
	return false
}

// Remove deletes a point from the grid. It returns false if no equal
// point is stored. The vacated slot in the point slice is pushed onto
// the free-index stack for reuse.
func (m *Multigrid[T]) Remove(p core.Point[T]) bool {
	current := m.roots[m.hashPoint(p, 0)]
	level := 1
	for current != nil {
		if current.isLeaf {
			i := m.indexInLeaf(current, p)
			if i == -1 {
				return false
			}
			pointIndex := current.pointIndices[i]
			current.removeAt(i)
			m.points[pointIndex] = nil
			m.freeIndices = append(m.freeIndices, pointIndex)
			return true
		}
		current = current.children[m.hashPoint(p, level)]
		level++
	}
	return false
}

// NumPointsStored returns the number of live points in the grid.
func (m *Multigrid[T]) NumPointsStored() int {
	return len(m.points) - len(m.freeIndices)
}

// NumBuckets returns the number of leaves in the grid.
func (m *Multigrid[T]) NumBuckets() int {
	total := 0
	for _, n := range m.roots {
		total += countLeaves(n)
	}
	return total
}

// AvgPointsPerBucket returns the mean number of points per leaf, or 0
// when the grid has no leaves.
func (m *Multigrid[T]) AvgPointsPerBucket() float64 {
	buckets := m.NumBuckets()
	if buckets == 0 {
		return 0
	}
	return float64(m.NumPointsStored()) / float64(buckets)
}

// MinPointsPerBucket returns the smallest leaf's point count, or 0 when
// the grid has no leaves.
func (m *Multigrid[T]) MinPointsPerBucket() int {
	minCount := 0
	first := true
	m.walkLeaves(func(n *node) {
		if first || len(n.pointIndices) < minCount {
			minCount = len(n.pointIndices)
			first = false
		}
	})
	return minCount
}

// MaxPointsPerBucket returns the largest leaf's point count.
func (m *Multigrid[T]) MaxPointsPerBucket() int {
	maxCount := 0
	m.walkLeaves(func(n *node) {
		if len(n.pointIndices) > maxCount {
			maxCount = len(n.pointIndices)
		}
	})
	return maxCount
}

func countLeaves(n *node) int {
	if n.isLeaf {
		return 1
	}
	total := 0
	for _, child := range n.children {
		total += countLeaves(child)
	}
	return total
}

func (m *Multigrid[T]) walkLeaves(fn func(n *node)) {
	var walk func(n *node)
	walk = func(n *node) {
		if n.isLeaf {
			fn(n)
			return
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	for _, n := range m.roots {
		walk(n)
	}
}

// insertIntoBucket stores p somewhere below n, which was reached at the
// given level (its children are keyed by the hash of that level's
// dimension).
func (m *Multigrid[T]) insertIntoBucket(p core.Point[T], level int, n *node) bool {
	if n.isLeaf {
		if m.indexInLeaf(n, p) != -1 {
			return false
		}
		// Append while there is room, or unconditionally once every
		// dimension has been hashed and no further split can
		// discriminate.
		if len(n.pointIndices) < m.opts.BucketSize || level >= p.Dims() {
			n.pointIndices = append(n.pointIndices, m.allocPoint(p))
			return true
		}
		// Split: convert the leaf into an internal node and
		// redistribute its indices one level down. Indices move,
		// points do not.
		n.children = make(map[core.HashKey]*node)
		n.isLeaf = false
		for _, idx := range n.pointIndices {
			m.placeIndex(idx, level, n)
		}
		n.pointIndices = nil
		return m.insertIntoBucket(p, level, n)
	}

	key := m.hashPoint(p, level)
	child, ok := n.children[key]
	if !ok {
		n.children[key] = newLeaf(m.allocPoint(p))
		return true
	}
	return m.insertIntoBucket(p, level+1, child)
}

// placeIndex reattaches an already-stored point index below the
// internal node n during a split. Capacity is not checked: a leaf that
// ends up overfull splits on the next insert that reaches it.
func (m *Multigrid[T]) placeIndex(pointIndex, level int, n *node) {
	key := m.hashPoint(m.points[pointIndex], level)
	child, ok := n.children[key]
	if !ok {
		n.children[key] = newLeaf(pointIndex)
		return
	}
	if child.isLeaf {
		child.pointIndices = append(child.pointIndices, pointIndex)
		return
	}
	m.placeIndex(pointIndex, level+1, child)
}

func (m *Multigrid[T]) indexInLeaf(n *node, p core.Point[T]) int {
	for i, idx := range n.pointIndices {
		if p.Equal(m.points[idx]) {
			return i
		}
	}
	return -1
}

// allocPoint stores a copy of p in the point slice, reusing the most
// recently vacated slot when one exists.
func (m *Multigrid[T]) allocPoint(p core.Point[T]) int {
	if n := len(m.freeIndices); n > 0 {
		idx := m.freeIndices[n-1]
		m.freeIndices = m.freeIndices[:n-1]
		m.points[idx] = p.Clone()
		return idx
	}
	m.points = append(m.points, p.Clone())
	return len(m.points) - 1
}

func normaliseCoord[T core.Number](coord T, iv core.Interval[T]) float64 {
	return float64(coord-iv.Min) / float64(iv.Max-iv.Min)
}

// hashPoint maps the dth coordinate of p to its grid cell.
func (m *Multigrid[T]) hashPoint(p core.Point[T], d int) core.HashKey {
	return core.HashKey(normaliseCoord(p[d], m.boundary[d]) * m.opts.IntervalsPerDimension)
}
