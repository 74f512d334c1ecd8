package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonaldWhyte/mdsearch/core"
	"github.com/DonaldWhyte/mdsearch/dataset"
	"github.com/DonaldWhyte/mdsearch/index"
	"github.com/DonaldWhyte/mdsearch/indextest"
)

func TestKDTree_Contract(t *testing.T) {
	indextest.RunContract(t, 3, func() index.Index[float32] {
		return New[float32]()
	})
}

func TestKDTree_InsertRemoveQuery(t *testing.T) {
	tree := New[float32]()

	assert.True(t, tree.Insert(core.Point[float32]{0.5, 0.5}))
	assert.True(t, tree.Insert(core.Point[float32]{0.25, 0.75}))
	assert.False(t, tree.Insert(core.Point[float32]{0.25, 0.75}))
	assert.True(t, tree.Query(core.Point[float32]{0.25, 0.75}))
	assert.True(t, tree.Remove(core.Point[float32]{0.5, 0.5}))
	assert.False(t, tree.Query(core.Point[float32]{0.5, 0.5}))
	assert.True(t, tree.Query(core.Point[float32]{0.25, 0.75}))
	assert.Equal(t, 1, tree.Len())
}

func TestKDTree_TolerantEquality(t *testing.T) {
	tree := New[float32]()
	require.True(t, tree.Insert(core.Point[float32]{0.25, 0.25}))

	// Differing by less than the tolerance on one coordinate.
	assert.True(t, tree.Query(core.Point[float32]{0.25 + 4e-8, 0.25}))
	assert.False(t, tree.Insert(core.Point[float32]{0.25 + 4e-8, 0.25}))

	// Differing by more than the tolerance.
	assert.False(t, tree.Query(core.Point[float32]{0.2502, 0.25}))
}

// Removing an internal node with a right subtree must replace its point
// with the cutting-dimension minimum of that subtree.
func TestKDTree_RemoveInternalNode(t *testing.T) {
	tree := New[float32]()

	root := core.Point[float32]{0.5, 0.5, 0.5}
	points := []core.Point[float32]{
		root,
		{0.3, 0.2, 0.1},
		{0.7, 0.6, 0.5},
		{0.6, 0.8, 0.2},
		{0.9, 0.1, 0.3},
	}
	for _, p := range points {
		require.True(t, tree.Insert(p))
	}

	require.True(t, tree.Remove(root))
	assert.False(t, tree.Query(root))

	// Minimum along dimension 0 in the right subtree.
	assert.True(t, tree.root.point.Equal(core.Point[float32]{0.6, 0.8, 0.2}))

	for _, p := range points[1:] {
		assert.True(t, tree.Query(p), "point %v lost after root removal", p)
	}
	assert.Equal(t, 4, tree.Len())
	auditSubtree(t, tree.root, 0)
}

func TestKDTree_RemoveLeafOnlyChild(t *testing.T) {
	tree := New[float32]()
	require.True(t, tree.Insert(core.Point[float32]{0.5, 0.5}))
	require.True(t, tree.Insert(core.Point[float32]{0.25, 0.75}))

	// The root has only a left child; its replacement comes from there.
	require.True(t, tree.Remove(core.Point[float32]{0.5, 0.5}))
	assert.True(t, tree.Query(core.Point[float32]{0.25, 0.75}))
	auditSubtree(t, tree.root, 0)
}

func TestKDTree_Clear(t *testing.T) {
	tree := New[float32]()
	require.True(t, tree.Insert(core.Point[float32]{0.5, 0.5}))
	tree.Clear()
	assert.Equal(t, 0, tree.Len())
	assert.False(t, tree.Query(core.Point[float32]{0.5, 0.5}))
	assert.True(t, tree.Insert(core.Point[float32]{0.5, 0.5}))
}

func TestKDTree_InvariantAfterRandomOps(t *testing.T) {
	tree := New[float32]()
	rng := dataset.NewRNG(7)
	points := dataset.RandomPoints[float32](rng, 300, 3, 0, 1)

	for _, p := range points {
		tree.Insert(p)
	}
	auditSubtree(t, tree.root, 0)

	for _, p := range points[:150] {
		tree.Remove(p)
	}
	auditSubtree(t, tree.root, 0)

	for _, p := range points[150:] {
		assert.True(t, tree.Query(p))
	}
}

// auditSubtree checks the depth-indexed ordering invariant: every point
// in the left subtree is strictly below the node's cutting coordinate,
// every point in the right subtree at or above it.
func auditSubtree[T core.Number](t *testing.T, n *node[T], cuttingDim int) {
	t.Helper()
	if n == nil {
		return
	}
	dims := len(n.point)
	for _, p := range collectPoints(n.left, nil) {
		require.Less(t, p[cuttingDim], n.point[cuttingDim],
			"left descendant %v violates cutting plane of %v at dim %d", p, n.point, cuttingDim)
	}
	for _, p := range collectPoints(n.right, nil) {
		require.GreaterOrEqual(t, p[cuttingDim], n.point[cuttingDim],
			"right descendant %v violates cutting plane of %v at dim %d", p, n.point, cuttingDim)
	}
	auditSubtree(t, n.left, (cuttingDim+1)%dims)
	auditSubtree(t, n.right, (cuttingDim+1)%dims)
}

func collectPoints[T core.Number](n *node[T], acc []core.Point[T]) []core.Point[T] {
	if n == nil {
		return acc
	}
	acc = append(acc, n.point)
	acc = collectPoints(n.left, acc)
	return collectPoints(n.right, acc)
}
