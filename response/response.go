package response

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-xspec/model"
)

// Response binds an effective-area curve and an energy redistributor on a
// common true-energy grid.
//
// A Response is immutable and safe to share read-only across spectra and
// across parallel fold evaluations, except that [Kernel] redistributors
// hold FFT scratch state and must not be folded concurrently.
type Response struct {
	area   *EffectiveArea
	redist Redistributor
	widths []float64 // precomputed energy bin widths
}

// New binds an effective area and an optional redistributor.
//
// redist may be nil, in which case folding applies effective area only with
// an identity channel mapping. This is an explicit degraded mode for
// responses without redistribution calibration, not a silent default: the
// channel grid is then the ARF energy grid itself.
func New(area *EffectiveArea, redist Redistributor) (*Response, error) {
	if area == nil {
		return nil, fmt.Errorf("%w: effective area is required", ErrEmpty)
	}
	if redist != nil && redist.NumEnergies() != area.NumBins() {
		return nil, fmt.Errorf("%w: redistributor has %d energy rows, ARF has %d bins",
			ErrGridMismatch, redist.NumEnergies(), area.NumBins())
	}
	return &Response{area: area, redist: redist, widths: area.Widths()}, nil
}

// EffectiveArea returns the bound effective-area curve.
func (r *Response) EffectiveArea() *EffectiveArea { return r.area }

// Redistributor returns the bound redistributor, or nil in the
// area-only degraded mode.
func (r *Response) Redistributor() Redistributor { return r.redist }

// NumEnergies returns the number of true-energy grid bins.
func (r *Response) NumEnergies() int { return r.area.NumBins() }

// NumChannels returns the number of detector output channels.
func (r *Response) NumChannels() int {
	if r.redist == nil {
		return r.area.NumBins()
	}
	return r.redist.NumChannels()
}

// EnergLo returns a copy of the true-energy low edges in keV.
func (r *Response) EnergLo() []float64 { return r.area.EnergLo() }

// EnergHi returns a copy of the true-energy high edges in keV.
func (r *Response) EnergHi() []float64 { return r.area.EnergHi() }

// Fold forward-folds a flux model into expected counts per channel.
//
// The model's flux density is evaluated on the true-energy grid, multiplied
// by bin width, effective area, and exposure to form incident counts, and
// redistributed onto the channel grid:
//
//	predicted[j] = sum_i flux(E_i) * dE_i * area_i * exposure * R[i][j]
func (r *Response) Fold(m model.FluxModel, exposure float64) ([]float64, error) {
	if exposure <= 0 {
		return nil, fmt.Errorf("response: exposure must be positive: %v", exposure)
	}
	flux := m.Evaluate(r.area.energLo, r.area.energHi)
	if len(flux) != r.area.NumBins() {
		return nil, fmt.Errorf("%w: model returned %d bins, grid has %d",
			ErrGridMismatch, len(flux), r.area.NumBins())
	}
	incident := make([]float64, len(flux))
	vecmath.MulBlock(incident, flux, r.widths)
	return r.foldIncident(incident, exposure)
}

// FoldBinned forward-folds already-integrated per-bin flux
// (photons/cm^2/s per bin) without the bin-width factor.
func (r *Response) FoldBinned(binned []float64, exposure float64) ([]float64, error) {
	if exposure <= 0 {
		return nil, fmt.Errorf("response: exposure must be positive: %v", exposure)
	}
	if len(binned) != r.area.NumBins() {
		return nil, fmt.Errorf("%w: flux has %d bins, grid has %d",
			ErrGridMismatch, len(binned), r.area.NumBins())
	}
	incident := append([]float64(nil), binned...)
	return r.foldIncident(incident, exposure)
}

// FoldOnes folds a flat unit per-bin flux. The result is the effective
// exposure per channel (cm^2 s weighted by redistribution), used to unfold
// observed counts into flux.
func (r *Response) FoldOnes(exposure float64) ([]float64, error) {
	ones := make([]float64, r.area.NumBins())
	for i := range ones {
		ones[i] = 1
	}
	return r.FoldBinned(ones, exposure)
}

// foldIncident applies area, exposure, and redistribution to per-bin
// incident flux. incident is clobbered.
func (r *Response) foldIncident(incident []float64, exposure float64) ([]float64, error) {
	vecmath.MulBlockInPlace(incident, r.area.area)
	vecmath.ScaleBlockInPlace(incident, exposure)

	if r.redist == nil {
		return incident, nil
	}
	predicted := make([]float64, r.redist.NumChannels())
	if err := r.redist.ApplyTo(predicted, incident); err != nil {
		return nil, err
	}
	return predicted, nil
}
