package response

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by redistribution matrix constructors and operations.
var (
	ErrNoChannels     = errors.New("response: channel count must be positive")
	ErrNegativeWeight = errors.New("response: redistribution weights must be non-negative")
	ErrRowSum         = errors.New("response: redistribution row sum exceeds 1")
	ErrRowBounds      = errors.New("response: redistribution row extends past the channel range")
	ErrGridMismatch   = errors.New("response: grids are inconsistent")
)

// rowSumTol is the numerical-noise allowance on redistribution row sums.
// Sums in (1, 1+rowSumTol] are clamped to 1; larger sums are rejected.
const rowSumTol = 1e-6

// Redistributor maps incident counts on the true-energy grid to expected
// counts on the detector channel grid.
type Redistributor interface {
	// NumEnergies returns the number of true-energy input bins.
	NumEnergies() int
	// NumChannels returns the number of detector output channels.
	NumChannels() int
	// ApplyTo adds nothing: it overwrites dst (length NumChannels) with the
	// redistributed image of incident (length NumEnergies).
	ApplyTo(dst, incident []float64) error
}

// Matrix is a sparse energy redistribution matrix (RMF).
//
// Each true-energy bin maps to a contiguous run of detector channels with
// non-negative weights. A row sum below 1 represents detection efficiency
// loss; a sum above 1 (beyond numerical noise) is invalid.
type Matrix struct {
	nchan   int
	first   []int       // first channel per row
	weights [][]float64 // contiguous weights per row
	clamped int         // rows whose sum was clamped to 1
}

// NewMatrix validates sparse rows and builds a Matrix.
//
// first[i] is the detector channel the weights of row i start at. Rows with
// sums in (1, 1+1e-6] are rescaled to sum exactly 1, and the number of such
// rows is reported by [Matrix.ClampedRows]; rows further above 1 are
// rejected with [ErrRowSum].
func NewMatrix(nchan int, first []int, weights [][]float64) (*Matrix, error) {
	if nchan <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoChannels, nchan)
	}
	if len(first) != len(weights) {
		return nil, fmt.Errorf("%w: first=%d weights=%d", ErrLengthMismatch, len(first), len(weights))
	}
	if len(first) == 0 {
		return nil, ErrEmpty
	}

	m := &Matrix{
		nchan:   nchan,
		first:   append([]int(nil), first...),
		weights: make([][]float64, len(weights)),
	}
	for i, row := range weights {
		if first[i] < 0 || first[i]+len(row) > nchan {
			return nil, fmt.Errorf("%w: row %d spans [%d, %d) of %d channels",
				ErrRowBounds, i, first[i], first[i]+len(row), nchan)
		}
		w := append([]float64(nil), row...)
		sum := 0.0
		for j, v := range w {
			if v < 0 || math.IsNaN(v) {
				return nil, fmt.Errorf("%w: row %d weight %d is %v", ErrNegativeWeight, i, j, v)
			}
			sum += v
		}
		switch {
		case sum > 1+rowSumTol:
			return nil, fmt.Errorf("%w: row %d sums to %v", ErrRowSum, i, sum)
		case sum > 1:
			vecmath.ScaleBlockInPlace(w, 1/sum)
			m.clamped++
		}
		m.weights[i] = w
	}
	return m, nil
}

// NewIdentity returns the n-by-n identity redistribution: every true-energy
// bin maps entirely to the channel of the same index.
func NewIdentity(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoChannels, n)
	}
	first := make([]int, n)
	weights := make([][]float64, n)
	for i := range weights {
		first[i] = i
		weights[i] = []float64{1}
	}
	return NewMatrix(n, first, weights)
}

// NumEnergies returns the number of true-energy rows.
func (m *Matrix) NumEnergies() int { return len(m.weights) }

// NumChannels returns the number of detector channels.
func (m *Matrix) NumChannels() int { return m.nchan }

// ClampedRows returns how many rows had their sum clamped to 1 at
// construction due to numerical noise in the input.
func (m *Matrix) ClampedRows() int { return m.clamped }

// RowSum returns the weight sum of row i.
func (m *Matrix) RowSum(i int) float64 { return vecmath.Sum(m.weights[i]) }

// Apply redistributes incident counts, returning a new channel vector.
func (m *Matrix) Apply(incident []float64) ([]float64, error) {
	dst := make([]float64, m.nchan)
	if err := m.ApplyTo(dst, incident); err != nil {
		return nil, err
	}
	return dst, nil
}

// ApplyTo computes dst[j] = sum_i incident[i] * R[i][j].
//
// dst must have length NumChannels and incident length NumEnergies. dst is
// overwritten.
func (m *Matrix) ApplyTo(dst, incident []float64) error {
	if len(incident) != len(m.weights) {
		return fmt.Errorf("%w: incident=%d rows=%d", ErrGridMismatch, len(incident), len(m.weights))
	}
	if len(dst) != m.nchan {
		return fmt.Errorf("%w: dst=%d channels=%d", ErrGridMismatch, len(dst), m.nchan)
	}
	for i := range dst {
		dst[i] = 0
	}
	scratch := make([]float64, 0, 64)
	for i, w := range m.weights {
		c := incident[i]
		if c == 0 || len(w) == 0 {
			continue
		}
		if cap(scratch) < len(w) {
			scratch = make([]float64, len(w))
		}
		scratch = scratch[:len(w)]
		vecmath.ScaleBlock(scratch, w, c)
		vecmath.AddBlockInPlace(dst[m.first[i]:m.first[i]+len(w)], scratch)
	}
	return nil
}
