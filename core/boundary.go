package core

import (
	"fmt"
	"strings"
)

// Interval is a closed interval of values. Producers are responsible for
// keeping Min <= Max; consumers do not enforce it.
type Interval[T Number] struct {
	Min T
	Max T
}

// String renders the interval as "[min:max]".
func (i Interval[T]) String() string {
	return fmt.Sprintf("[%v:%v]", i.Min, i.Max)
}

// Boundary is the spatial extent an index covers, one interval per
// dimension. Hash-based indexes use it to normalise coordinates.
type Boundary[T Number] []Interval[T]

// NewBoundary creates a boundary with the given number of dimensions,
// every interval initialised to interval.
func NewBoundary[T Number](dims int, interval Interval[T]) Boundary[T] {
	b := make(Boundary[T], dims)
	for d := range b {
		b[d] = interval
	}
	return b
}

// Dims returns the number of dimensions of the boundary.
func (b Boundary[T]) Dims() int {
	return len(b)
}

// Clone returns a copy of the boundary that shares no memory with b.
func (b Boundary[T]) Clone() Boundary[T] {
	c := make(Boundary[T], len(b))
	copy(c, b)
	return c
}

// String renders the boundary as "([min:max],...)".
func (b Boundary[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for d := range b {
		if d > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(b[d].String())
	}
	sb.WriteByte(')')
	return sb.String()
}
