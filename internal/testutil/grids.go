package testutil

// UniformGrid returns n contiguous bin edges spanning [lo, hi].
func UniformGrid(lo, hi float64, n int) (binLo, binHi []float64) {
	binLo = make([]float64, n)
	binHi = make([]float64, n)
	step := (hi - lo) / float64(n)
	for i := 0; i < n; i++ {
		binLo[i] = lo + float64(i)*step
		binHi[i] = lo + float64(i+1)*step
	}
	// Close the last edge exactly.
	binHi[n-1] = hi
	return binLo, binHi
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// Flat returns a slice of length n filled with value.
func Flat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
