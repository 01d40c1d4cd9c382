package spectrum

import (
	"fmt"
	"strings"
)

// HC is the product of Planck's constant and the speed of light in keV*Angstrom.
// It converts between photon energy and wavelength: E[keV] = HC / lambda[Angstrom].
const HC = 12.398419843320026

// Unit identifies the axis unit of raw bin edges.
type Unit int

const (
	// KeV marks bin edges given in kilo-electronvolt photon energies.
	KeV Unit = iota
	// Angstrom marks bin edges given as photon wavelengths.
	Angstrom
)

// String returns the canonical spelling of the unit.
func (u Unit) String() string {
	switch u {
	case KeV:
		return "keV"
	case Angstrom:
		return "Angstrom"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// ParseUnit resolves a unit string from a data file into a canonical [Unit].
//
// Recognized spellings (case-insensitive): "kev", "angs", "angstrom",
// "angstroms". Parsing happens once at load time; downstream code only ever
// sees the canonical enum.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kev":
		return KeV, nil
	case "angs", "angstrom", "angstroms":
		return Angstrom, nil
	default:
		return 0, fmt.Errorf("spectrum: unrecognized unit %q", s)
	}
}

// anglesToEnergy converts wavelength edges to energy edges, returning new
// slices in ascending keV order. The wavelength axis is descending in
// energy, so bin order reverses and low/high edges swap.
func anglesToEnergy(binLo, binHi []float64) (keVLo, keVHi []float64) {
	n := len(binLo)
	keVLo = make([]float64, n)
	keVHi = make([]float64, n)
	for i := 0; i < n; i++ {
		j := n - 1 - i
		keVLo[i] = HC / binHi[j]
		keVHi[i] = HC / binLo[j]
	}
	return keVLo, keVHi
}

// reverse returns a reversed copy of x.
func reverse(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}
