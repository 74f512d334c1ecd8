// Package mdsearch is a lightweight library of exact-match
// multi-dimensional point index structures.
//
// Four in-memory indexes expose the same insert/remove/query contract
// but differ sharply in internal representation:
//
//   - index/kdtree: a point kd-tree, one point per node, cycling
//     cutting dimensions.
//   - index/bucketkd: a bucket kd-tree, many points per leaf, adaptive
//     cutting planes and merge on underflow.
//   - index/pyramid: the original Pyramid-technique, hashing points to
//     one-dimensional pyramid values over a boundary.
//   - index/multigrid: a tree of hash maps partitioning one dimension
//     per level.
//
// A fifth variant, index/bithash, hashes raw coordinate bit patterns
// and needs no boundary.
//
// # Quick Start
//
//	tree := kdtree.New[float32]()
//	tree.Insert(core.Point[float32]{0.5, 0.5})
//	found := tree.Query(core.Point[float32]{0.5, 0.5})
//	tree.Remove(core.Point[float32]{0.5, 0.5})
//
// All indexes decide presence by tolerant point equality (coordinates
// within core.Epsilon are equal) while tree traversal uses strict
// comparisons; the asymmetry keeps routing deterministic while the
// equality predicate accepts floating-point drift.
//
// The indexes are exact-match only: proximity, nearest-neighbour and
// range queries are out of scope. Instances are not safe for
// concurrent use; callers must serialise externally.
package mdsearch
