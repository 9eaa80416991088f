// Package coverage selects the AFK point that maximizes the number of
// guardian-spawnable blocks covered across a group of ocean monuments.
package coverage

import "math"

// isqrtFloor returns floor(sqrt(x)) for x >= 0, computed without relying on
// math.Sqrt's float64 rounding near perfect squares: it takes the float
// estimate as a starting point, then walks it to the exact integer answer.
func isqrtFloor(x int64) int64 {
	if x <= 0 {
		return 0
	}
	r := int64(math.Sqrt(float64(x)))
	for (r+1)*(r+1) <= x {
		r++
	}
	for r*r > x {
		r--
	}
	return r
}
