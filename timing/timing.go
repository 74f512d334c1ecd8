// Package timing provides the wall-clock timer used by the benchmark
// harnesses.
package timing

import "time"

// Now returns the current wall-clock time in seconds. Monotonicity is
// not guaranteed.
func Now() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
