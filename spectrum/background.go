package spectrum

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by background operations.
var (
	ErrBackgroundGrid = errors.New("spectrum: background grid must match the source grid")
	ErrNoBackground   = errors.New("spectrum: no background attached")
	ErrBackscal       = errors.New("spectrum: backscal must be positive")
)

// Background is a background observation sharing the source channel grid.
//
// Backscal is the ratio of the source extraction area to the background
// extraction area; background counts are multiplied by it before
// subtraction.
type Background struct {
	binLo    []float64
	binHi    []float64
	counts   []float64
	backscal float64
}

// NewBackground validates raw background arrays and builds a Background.
// Wavelength input is converted to keV exactly as in [New].
func NewBackground(binLo, binHi, counts []float64, backscal float64, unit Unit) (*Background, error) {
	if len(binLo) != len(binHi) || len(binLo) != len(counts) {
		return nil, fmt.Errorf("%w: lo=%d hi=%d counts=%d",
			ErrLengthMismatch, len(binLo), len(binHi), len(counts))
	}
	if len(binLo) == 0 {
		return nil, ErrEmpty
	}
	if backscal <= 0 || math.IsNaN(backscal) {
		return nil, fmt.Errorf("%w: %v", ErrBackscal, backscal)
	}

	lo, hi, cts := binLo, binHi, counts
	if unit == Angstrom {
		lo, hi = anglesToEnergy(binLo, binHi)
		cts = reverse(counts)
	} else {
		lo = append([]float64(nil), binLo...)
		hi = append([]float64(nil), binHi...)
		cts = append([]float64(nil), counts...)
	}
	if err := validateEdges(lo, hi); err != nil {
		return nil, err
	}
	for i, c := range cts {
		if c < 0 || math.IsNaN(c) {
			return nil, fmt.Errorf("%w: bin %d has %v", ErrNegativeCounts, i, c)
		}
	}

	return &Background{binLo: lo, binHi: hi, counts: cts, backscal: backscal}, nil
}

// Backscal returns the source-to-background area ratio.
func (b *Background) Backscal() float64 { return b.backscal }

// Counts returns a copy of the background counts per channel.
func (b *Background) Counts() []float64 { return append([]float64(nil), b.counts...) }

// SetBackground attaches a background observation.
//
// The background must share the source's channel grid bin for bin.
func (s *Spectrum) SetBackground(b *Background) error {
	if b == nil {
		s.bkg = nil
		return nil
	}
	if len(b.counts) != len(s.counts) {
		return fmt.Errorf("%w: %d channels vs %d", ErrBackgroundGrid, len(b.counts), len(s.counts))
	}
	for i := range s.binLo {
		if s.binLo[i] != b.binLo[i] || s.binHi[i] != b.binHi[i] {
			return fmt.Errorf("%w: edges differ at channel %d", ErrBackgroundGrid, i)
		}
	}
	s.bkg = b
	return nil
}

// BackgroundSpectrum returns the attached background, or nil.
func (s *Spectrum) BackgroundSpectrum() *Background { return s.bkg }

// BinnedSubtracted returns the noticed, grouped histogram with the scaled
// background subtracted.
//
// Background counts follow the same notice mask and grouping as the source
// and, when useBackscal is set, are scaled by the backscal area ratio.
// Errors combine source and background counting errors in quadrature.
// Subtracted counts may be negative.
func (s *Spectrum) BinnedSubtracted(useBackscal bool) (lo, hi, counts, errs []float64, err error) {
	if s.bkg == nil {
		return nil, nil, nil, nil, ErrNoBackground
	}

	lo, hi, counts, srcErrs := s.Binned()

	var bcounts []float64
	if s.grouping == nil {
		for i := range s.bkg.counts {
			if s.notice[i] {
				bcounts = append(bcounts, s.bkg.counts[i])
			}
		}
	} else {
		_, _, bcounts = groupArrays(s.binLo, s.binHi, s.bkg.counts, s.grouping, s.notice)
	}

	scale := 1.0
	if useBackscal {
		scale = s.bkg.backscal
	}

	errs = make([]float64, len(counts))
	for i := range counts {
		berr := math.Sqrt(math.Max(bcounts[i], 1)) * scale
		counts[i] -= bcounts[i] * scale
		errs[i] = math.Hypot(srcErrs[i], berr)
	}
	return lo, hi, counts, errs, nil
}
