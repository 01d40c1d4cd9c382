//go:build !fastmath

package likelihood

import "math"

// mathLog computes ln(x) using the standard library.
func mathLog(x float64) float64 {
	return math.Log(x)
}
