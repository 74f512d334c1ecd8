// Package core provides the primitive types shared by every index
// structure: numeric elements, tolerant comparison, points, intervals
// and boundaries.
package core
