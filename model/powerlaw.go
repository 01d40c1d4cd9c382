package model

import (
	"fmt"
	"math"
)

// PowerLaw is the photon power law flux(E) = Norm * (E/Ref)^(-PhotonIndex)
// in photons/cm^2/s/keV.
//
// Ref is the reference energy the normalization is quoted at; it is fixed,
// not a fit parameter. Norm is optimized in log10 space.
type PowerLaw struct {
	Norm        float64 // photons/cm^2/s/keV at E = Ref
	PhotonIndex float64
	Ref         float64 // keV
}

// NewPowerLaw validates and builds a power-law model.
func NewPowerLaw(norm, photonIndex, ref float64) (*PowerLaw, error) {
	if norm <= 0 || math.IsNaN(norm) {
		return nil, fmt.Errorf("%w: norm must be positive, got %v", ErrParamValue, norm)
	}
	if ref <= 0 || math.IsNaN(ref) {
		return nil, fmt.Errorf("%w: reference energy must be positive, got %v", ErrParamValue, ref)
	}
	return &PowerLaw{Norm: norm, PhotonIndex: photonIndex, Ref: ref}, nil
}

// Name returns "powerlaw".
func (p *PowerLaw) Name() string { return "powerlaw" }

// Evaluate returns the flux density at each bin midpoint.
//
// Midpoint evaluation approximates the bin-average density. The relative
// error grows with bin width; for index 2 it stays below 0.1% up to bins
// spanning ~7% of their center energy, which comfortably covers realistic
// channel grids. Integrate gives the exact bin integral for comparison.
func (p *PowerLaw) Evaluate(binLo, binHi []float64) []float64 {
	out := make([]float64, len(binLo))
	for i := range out {
		mid := 0.5 * (binLo[i] + binHi[i])
		out[i] = p.Norm * math.Pow(mid/p.Ref, -p.PhotonIndex)
	}
	return out
}

// Integrate returns the analytic integral of the flux density over [lo, hi]
// in photons/cm^2/s.
func (p *PowerLaw) Integrate(lo, hi float64) float64 {
	if p.PhotonIndex == 1 {
		return p.Norm * p.Ref * math.Log(hi/lo)
	}
	g := 1 - p.PhotonIndex
	scale := p.Norm * math.Pow(p.Ref, p.PhotonIndex)
	return scale * (math.Pow(hi, g) - math.Pow(lo, g)) / g
}

// Params returns the free parameters: the log-scaled normalization and the
// photon index.
func (p *PowerLaw) Params() []Param {
	return []Param{
		{Name: "norm", Value: p.Norm, Min: 0, Log: true},
		{Name: "index", Value: p.PhotonIndex},
	}
}

// SetParams updates (norm, index) from a vector in model space.
func (p *PowerLaw) SetParams(values []float64) error {
	if len(values) != 2 {
		return fmt.Errorf("%w: want 2, got %d", ErrParamCount, len(values))
	}
	if values[0] <= 0 || math.IsNaN(values[0]) {
		return fmt.Errorf("%w: norm must be positive, got %v", ErrParamValue, values[0])
	}
	p.Norm = values[0]
	p.PhotonIndex = values[1]
	return nil
}
