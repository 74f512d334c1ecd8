// Package dataset provides point collections for feeding the index
// structures: loading from text files, random generation and bounding
// boundary computation.
package dataset

import (
	"github.com/DonaldWhyte/mdsearch/core"
)

// Dataset is a collection of points sharing one dimensionality.
type Dataset[T core.Number] struct {
	dims   int
	points []core.Point[T]
}

// New creates an empty dataset of the given dimensionality.
func New[T core.Number](dims int) *Dataset[T] {
	return &Dataset[T]{dims: dims}
}

// Dims returns the dimensionality of the dataset's points.
func (d *Dataset[T]) Dims() int {
	return d.dims
}

// Load appends the given points to the dataset.
func (d *Dataset[T]) Load(points []core.Point[T]) {
	d.points = append(d.points, points...)
}

// Points returns all points stored in the dataset. The returned slice
// is the dataset's backing storage and must not be modified.
func (d *Dataset[T]) Points() []core.Point[T] {
	return d.points
}

// Len returns the number of points in the dataset.
func (d *Dataset[T]) Len() int {
	return len(d.points)
}

// ComputeBoundary returns the minimum bounding hyper-rectangle that
// contains every point in the dataset. For an empty dataset every
// interval is [0,0].
func (d *Dataset[T]) ComputeBoundary() core.Boundary[T] {
	boundary := core.NewBoundary(d.dims, core.Interval[T]{})
	if len(d.points) == 0 {
		return boundary
	}

	first := d.points[0]
	for dim := 0; dim < d.dims; dim++ {
		boundary[dim] = core.Interval[T]{Min: first[dim], Max: first[dim]}
	}
	for _, p := range d.points[1:] {
		for dim := 0; dim < d.dims; dim++ {
			if p[dim] < boundary[dim].Min {
				boundary[dim].Min = p[dim]
			} else if p[dim] > boundary[dim].Max {
				boundary[dim].Max = p[dim]
			}
		}
	}
	return boundary
}
