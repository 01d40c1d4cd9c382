package response

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by effective-area constructors and operations.
var (
	ErrLengthMismatch = errors.New("response: slices must have equal length")
	ErrEmpty          = errors.New("response: at least one bin is required")
	ErrEdgeOrder      = errors.New("response: energy edges must be strictly increasing and non-overlapping")
	ErrNegativeArea   = errors.New("response: effective area must be non-negative")
)

// EffectiveArea is an instrument effective-area curve (ARF): the telescope
// collecting area in cm^2 as a function of true photon energy, binned
// independently of any spectrum's channel grid.
type EffectiveArea struct {
	energLo []float64 // keV, ascending
	energHi []float64
	area    []float64 // cm^2
}

// NewEffectiveArea validates raw ARF arrays and builds an EffectiveArea.
func NewEffectiveArea(energLo, energHi, area []float64) (*EffectiveArea, error) {
	if len(energLo) != len(energHi) || len(energLo) != len(area) {
		return nil, fmt.Errorf("%w: lo=%d hi=%d area=%d",
			ErrLengthMismatch, len(energLo), len(energHi), len(area))
	}
	if len(energLo) == 0 {
		return nil, ErrEmpty
	}
	for i := range energLo {
		if !(energLo[i] < energHi[i]) {
			return nil, fmt.Errorf("%w: bin %d has lo=%v hi=%v", ErrEdgeOrder, i, energLo[i], energHi[i])
		}
		if i > 0 && !(energHi[i-1] <= energLo[i]) {
			return nil, fmt.Errorf("%w: bins %d and %d overlap", ErrEdgeOrder, i-1, i)
		}
		if area[i] < 0 || math.IsNaN(area[i]) {
			return nil, fmt.Errorf("%w: bin %d has %v", ErrNegativeArea, i, area[i])
		}
	}
	return &EffectiveArea{
		energLo: append([]float64(nil), energLo...),
		energHi: append([]float64(nil), energHi...),
		area:    append([]float64(nil), area...),
	}, nil
}

// NumBins returns the number of true-energy bins.
func (a *EffectiveArea) NumBins() int { return len(a.area) }

// EnergLo returns a copy of the low energy edges in keV.
func (a *EffectiveArea) EnergLo() []float64 { return append([]float64(nil), a.energLo...) }

// EnergHi returns a copy of the high energy edges in keV.
func (a *EffectiveArea) EnergHi() []float64 { return append([]float64(nil), a.energHi...) }

// Area returns a copy of the effective area values in cm^2.
func (a *EffectiveArea) Area() []float64 { return append([]float64(nil), a.area...) }

// Widths returns the energy bin widths in keV.
func (a *EffectiveArea) Widths() []float64 {
	out := make([]float64, len(a.area))
	for i := range out {
		out[i] = a.energHi[i] - a.energLo[i]
	}
	return out
}

// Resample maps the effective area onto a foreign energy grid.
//
// The area is treated as piecewise constant over its own bins and averaged
// into each target bin weighted by energy overlap. Target bins outside the
// curve's defined range receive zero area; uncovered reports how many
// target bins had no overlap at all, so callers can distinguish a true zero
// from missing calibration coverage.
func (a *EffectiveArea) Resample(lo, hi []float64) (area []float64, uncovered int, err error) {
	if len(lo) != len(hi) {
		return nil, 0, fmt.Errorf("%w: lo=%d hi=%d", ErrLengthMismatch, len(lo), len(hi))
	}
	if len(lo) == 0 {
		return nil, 0, ErrEmpty
	}
	for i := range lo {
		if !(lo[i] < hi[i]) {
			return nil, 0, fmt.Errorf("%w: target bin %d has lo=%v hi=%v", ErrEdgeOrder, i, lo[i], hi[i])
		}
		if i > 0 && !(hi[i-1] <= lo[i]) {
			return nil, 0, fmt.Errorf("%w: target bins %d and %d overlap", ErrEdgeOrder, i-1, i)
		}
	}

	area = make([]float64, len(lo))
	j := 0
	for i := range lo {
		// Advance to the first source bin that can overlap the target.
		for j < len(a.energLo) && a.energHi[j] <= lo[i] {
			j++
		}
		sum := 0.0
		covered := false
		for k := j; k < len(a.energLo) && a.energLo[k] < hi[i]; k++ {
			overlap := math.Min(a.energHi[k], hi[i]) - math.Max(a.energLo[k], lo[i])
			if overlap > 0 {
				sum += a.area[k] * overlap
				covered = true
			}
		}
		if !covered {
			uncovered++
			continue
		}
		area[i] = sum / (hi[i] - lo[i])
	}
	return area, uncovered, nil
}
