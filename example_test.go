package mdsearch_test

import (
	"fmt"

	"github.com/DonaldWhyte/mdsearch/core"
	"github.com/DonaldWhyte/mdsearch/index"
	"github.com/DonaldWhyte/mdsearch/index/bucketkd"
	"github.com/DonaldWhyte/mdsearch/index/kdtree"
	"github.com/DonaldWhyte/mdsearch/index/multigrid"
	"github.com/DonaldWhyte/mdsearch/index/pyramid"
)

// Every index variant implements the same capability set, so callers
// can treat them interchangeably.
func Example() {
	boundary := core.NewBoundary(2, core.Interval[float32]{Min: 0, Max: 1})

	indexes := []index.Index[float32]{
		kdtree.New[float32](),
		bucketkd.New[float32](),
		pyramid.New(boundary),
		multigrid.New(boundary),
	}

	p := core.Point[float32]{0.25, 0.75}
	for _, s := range indexes {
		fmt.Println(s.Insert(p), s.Query(p), s.Remove(p), s.Query(p))
	}
	// Output:
	// true true true false
	// true true true false
	// true true true false
	// true true true false
}

func Example_duplicateInsert() {
	tree := kdtree.New[float32]()

	fmt.Println(tree.Insert(core.Point[float32]{0.5, 0.5}))
	fmt.Println(tree.Insert(core.Point[float32]{0.5, 0.5}))
	// Output:
	// true
	// false
}
