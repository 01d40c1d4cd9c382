package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-xspec/response"
)

// Errors returned by spectrum constructors and accessors.
var (
	ErrLengthMismatch = errors.New("spectrum: bin edge and count slices must have equal length")
	ErrEmpty          = errors.New("spectrum: at least one bin is required")
	ErrBinOrder       = errors.New("spectrum: bin edges must be strictly increasing and non-overlapping")
	ErrExposure       = errors.New("spectrum: exposure must be positive")
	ErrNegativeCounts = errors.New("spectrum: counts must be non-negative")
	ErrNoticeRange    = errors.New("spectrum: notice range is empty or inverted")
	ErrNoResponse     = errors.New("spectrum: no response attached")
)

// Spectrum is one binned photon-counting observation.
//
// Bin edges are stored in ascending keV internally regardless of the unit
// the raw arrays were supplied in. Counts, edges, and exposure are fixed at
// construction; the notice mask, grouping, background, and response
// reference are mutable analysis state.
type Spectrum struct {
	binLo    []float64 // keV, ascending
	binHi    []float64 // keV, ascending
	counts   []float64
	exposure float64
	native   Unit

	notice   []bool
	grouping []int // group index per channel; nil when ungrouped

	resp *response.Response
	bkg  *Background
}

// New validates raw arrays from a data loader and builds a Spectrum.
//
// binLo and binHi are the per-bin low and high edges in the given unit;
// wavelength (Angstrom) input is converted to keV, reversing bin order so
// the energy axis ascends. Counts must be non-negative; they may be floats
// when the loader has already rate-normalized them.
func New(binLo, binHi, counts []float64, exposure float64, unit Unit) (*Spectrum, error) {
	if len(binLo) != len(binHi) || len(binLo) != len(counts) {
		return nil, fmt.Errorf("%w: lo=%d hi=%d counts=%d",
			ErrLengthMismatch, len(binLo), len(binHi), len(counts))
	}
	if len(binLo) == 0 {
		return nil, ErrEmpty
	}
	if exposure <= 0 || math.IsNaN(exposure) {
		return nil, fmt.Errorf("%w: %v", ErrExposure, exposure)
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

	s := &Spectrum{
		binLo:    lo,
		binHi:    hi,
		counts:   cts,
		exposure: exposure,
		native:   unit,
		notice:   make([]bool, len(lo)),
	}
	for i := range s.notice {
		s.notice[i] = true
	}
	return s, nil
}

// validateEdges checks lo[i] < hi[i] <= lo[i+1] for every bin.
func validateEdges(lo, hi []float64) error {
	for i := range lo {
		if !(lo[i] < hi[i]) {
			return fmt.Errorf("%w: bin %d has lo=%v hi=%v", ErrBinOrder, i, lo[i], hi[i])
		}
		if i > 0 && !(hi[i-1] <= lo[i]) {
			return fmt.Errorf("%w: bins %d and %d overlap", ErrBinOrder, i-1, i)
		}
	}
	return nil
}

// NumBins returns the number of channels.
func (s *Spectrum) NumBins() int { return len(s.counts) }

// Exposure returns the exposure time in seconds.
func (s *Spectrum) Exposure() float64 { return s.exposure }

// NativeUnit returns the unit the raw arrays were supplied in.
func (s *Spectrum) NativeUnit() Unit { return s.native }

// BinLo returns a copy of the low bin edges in keV.
func (s *Spectrum) BinLo() []float64 { return append([]float64(nil), s.binLo...) }

// BinHi returns a copy of the high bin edges in keV.
func (s *Spectrum) BinHi() []float64 { return append([]float64(nil), s.binHi...) }

// Counts returns a copy of the observed counts per channel.
func (s *Spectrum) Counts() []float64 { return append([]float64(nil), s.counts...) }

// BinMid returns the bin midpoints 0.5*(lo+hi) in keV.
func (s *Spectrum) BinMid() []float64 {
	out := make([]float64, len(s.binLo))
	for i := range out {
		out[i] = 0.5 * (s.binLo[i] + s.binHi[i])
	}
	return out
}

// CountErrors returns the Poisson counting error per channel.
//
// The error is sqrt(max(counts, 1)). The floor of one count avoids
// zero-error bins, which would otherwise make chi-like residuals blow up in
// empty channels; it slightly overstates the error in those channels.
func (s *Spectrum) CountErrors() []float64 {
	out := make([]float64, len(s.counts))
	for i, c := range s.counts {
		out[i] = math.Sqrt(math.Max(c, 1))
	}
	return out
}

// NoticeRange restricts analysis to channels fully inside [lo, hi] keV.
//
// The range replaces any previous notice mask; it does not accumulate.
// On error the existing mask is left unchanged.
func (s *Spectrum) NoticeRange(lo, hi float64) error {
	if !(lo < hi) {
		return fmt.Errorf("%w: [%v, %v]", ErrNoticeRange, lo, hi)
	}
	mask := make([]bool, len(s.notice))
	any := false
	for i := range mask {
		mask[i] = s.binLo[i] >= lo && s.binHi[i] <= hi
		any = any || mask[i]
	}
	if !any {
		return fmt.Errorf("%w: [%v, %v] covers no channel", ErrNoticeRange, lo, hi)
	}
	s.notice = mask
	return nil
}

// NoticeAll resets the notice mask to the full channel range.
func (s *Spectrum) NoticeAll() {
	for i := range s.notice {
		s.notice[i] = true
	}
}

// Noticed returns a copy of the notice mask.
func (s *Spectrum) Noticed() []bool { return append([]bool(nil), s.notice...) }

// SetResponse attaches an instrument response.
//
// The response is shared, read-only state: many spectra taken with the same
// instrument configuration may reference one Response. The channel count
// must match this spectrum's binning.
func (s *Spectrum) SetResponse(r *response.Response) error {
	if r != nil && r.NumChannels() != len(s.counts) {
		return fmt.Errorf("spectrum: response has %d channels, spectrum has %d: %w",
			r.NumChannels(), len(s.counts), response.ErrGridMismatch)
	}
	s.resp = r
	return nil
}

// Response returns the attached instrument response, or nil.
func (s *Spectrum) Response() *response.Response { return s.resp }

// Unfold divides observed counts by the folded flat-model exposure,
// estimating the incident flux per channel independent of any source model.
//
// Channels where the folded exposure is zero or non-finite (outside the
// instrument's sensitive range) get zero flux and error rather than Inf.
func (s *Spectrum) Unfold() (flux, fluxErr []float64, err error) {
	if s.resp == nil {
		return nil, nil, ErrNoResponse
	}
	eff, err := s.resp.FoldOnes(s.exposure)
	if err != nil {
		return nil, nil, err
	}
	flux = make([]float64, len(s.counts))
	fluxErr = make([]float64, len(s.counts))
	errs := s.CountErrors()
	for i := range s.counts {
		e := eff[i]
		if e == 0 || math.IsNaN(e) || math.IsInf(e, 0) {
			continue
		}
		flux[i] = s.counts[i] / e
		fluxErr[i] = errs[i] / e
	}
	return flux, fluxErr, nil
}
