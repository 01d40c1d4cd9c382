package fit

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/algo-xspec/model"
	"github.com/cwbudde/algo-xspec/spectrum"
)

// Simulate draws a synthetic observation of the model on the given energy
// grid: per-bin expected counts are flux density times bin width times
// exposure, and observed counts are Poisson samples around them.
//
// The same seed always produces the same spectrum.
func Simulate(m model.FluxModel, binLo, binHi []float64, exposure float64, seed uint64) (*spectrum.Spectrum, error) {
	if len(binLo) != len(binHi) {
		return nil, fmt.Errorf("fit: edge slices must have equal length: %d vs %d", len(binLo), len(binHi))
	}

	flux := m.Evaluate(binLo, binHi)
	if len(flux) != len(binLo) {
		return nil, fmt.Errorf("fit: model returned %d bins, grid has %d", len(flux), len(binLo))
	}

	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	counts := make([]float64, len(flux))
	for i, f := range flux {
		mean := f * (binHi[i] - binLo[i]) * exposure
		if mean <= 0 {
			continue
		}
		counts[i] = distuv.Poisson{Lambda: mean, Src: src}.Rand()
	}

	return spectrum.New(binLo, binHi, counts, exposure, spectrum.KeV)
}
