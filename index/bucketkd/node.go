package bucketkd

import (
	"github.com/DonaldWhyte/mdsearch/core"
)

// node is a single node in the bucket kd-tree. A leaf carries up to
// BucketMax points; an internal node carries a cutting plane and exactly
// two children. The parent reference is non-owning and only used for
// merge propagation and totalPoints maintenance.
type node[T core.Number] struct {
	parent      *node[T]
	totalPoints int

	isLeaf bool
	points []core.Point[T]

	left         *node[T]
	right        *node[T]
	cuttingDim   int
	cuttingValue T
}

func newLeaf[T core.Number](parent *node[T], points []core.Point[T]) *node[T] {
	return &node[T]{
		parent:      parent,
		totalPoints: len(points),
		isLeaf:      true,
		points:      points,
	}
}

func (n *node[T]) incrementTotalPoints() {
	n.totalPoints++
	if n.parent != nil {
		n.parent.incrementTotalPoints()
	}
}

func (n *node[T]) decrementTotalPoints() {
	n.totalPoints--
	if n.parent != nil {
		n.parent.decrementTotalPoints()
	}
}

func (n *node[T]) contains(p core.Point[T]) bool {
	return n.indexOf(p) != -1
}

func (n *node[T]) indexOf(p core.Point[T]) int {
	for i := range n.points {
		if p.Equal(n.points[i]) {
			return i
		}
	}
	return -1
}

// addPoint stores p in the leaf, splitting it when full. It must only be
// called on a leaf.
func (n *node[T]) addPoint(p core.Point[T]) bool {
	if n.contains(p) {
		return false
	}
	if len(n.points) >= BucketMax {
		n.splitAndInsert(p)
	} else {
		n.points = append(n.points, p.Clone())
		n.incrementTotalPoints()
	}
	return true
}

// removePoint deletes p from the leaf, asking the parent to merge
// afterwards. It must only be called on a leaf.
func (n *node[T]) removePoint(p core.Point[T]) bool {
	i := n.indexOf(p)
	if i == -1 {
		return false
	}
	last := len(n.points) - 1
	n.points[i] = n.points[last]
	n.points[last] = nil
	n.points = n.points[:last]
	n.decrementTotalPoints()

	if n.parent != nil {
		n.parent.attemptMerge()
	}
	return true
}

// splitAndInsert turns the leaf into an internal node whose children
// partition the leaf's points, then inserts p into the matching side.
//
// The cutting dimension is the one with the highest range of values over
// the leaf's points (ties go to the lowest index) and the cutting value
// is the mean of that dimension's values.
func (n *node[T]) splitAndInsert(p core.Point[T]) {
	cuttingDim := dimensionWithHighestRange(n.points)
	cuttingValue := averageOfDimension(cuttingDim, n.points)

	// Stable partition: points below the cutting plane keep their
	// relative order on the left, the rest on the right.
	var left, right []core.Point[T]
	for _, q := range n.points {
		if q[cuttingDim] < cuttingValue {
			left = append(left, q)
		} else {
			right = append(right, q)
		}
	}

	n.left = newLeaf(n, left)
	n.right = newLeaf(n, right)
	n.isLeaf = false
	n.points = nil
	n.cuttingDim = cuttingDim
	n.cuttingValue = cuttingValue

	if p[cuttingDim] < cuttingValue {
		n.left.addPoint(p)
	} else {
		n.right.addPoint(p)
	}
}

// attemptMerge collapses the node back into a leaf when its subtree has
// shrunk below MergeThreshold. The threshold arithmetic guarantees both
// children are leaves by then. Merging can cascade towards the root.
func (n *node[T]) attemptMerge() {
	if n.isLeaf || n.totalPoints >= MergeThreshold {
		return
	}
	if !n.left.isLeaf || !n.right.isLeaf {
		return
	}

	n.points = append(n.points, n.left.points...)
	n.points = append(n.points, n.right.points...)
	n.isLeaf = true
	n.left = nil
	n.right = nil

	if n.parent != nil {
		n.parent.attemptMerge()
	}
}

func rangeOfDimension[T core.Number](d int, points []core.Point[T]) T {
	if len(points) == 0 {
		return 0
	}
	minVal := points[0][d]
	maxVal := minVal
	for _, p := range points {
		v := p[d]
		if v < minVal {
			minVal = v
		} else if v > maxVal {
			maxVal = v
		}
	}
	return maxVal - minVal
}

func dimensionWithHighestRange[T core.Number](points []core.Point[T]) int {
	if len(points) == 0 {
		return 0
	}
	chosenDim := 0
	maxRange := rangeOfDimension(0, points)
	for d := 1; d < len(points[0]); d++ {
		r := rangeOfDimension(d, points)
		if r > maxRange {
			chosenDim = d
			maxRange = r
		}
	}
	return chosenDim
}

func averageOfDimension[T core.Number](d int, points []core.Point[T]) T {
	var sum T
	for _, p := range points {
		sum += p[d]
	}
	return sum / T(len(points))
}
