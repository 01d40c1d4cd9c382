// Package spectrum provides containers for binned photon-counting spectra.
//
// A [Spectrum] holds one observation: bin edges, observed counts, and the
// exposure time. Bins may be supplied in energy (keV) or wavelength
// (Angstrom) units; wavelength input is converted to keV at construction so
// that all downstream computation works on a single canonical unit. The
// package also supports noticing sub-ranges, channel grouping, and
// background association with area scaling.
//
// Spectra are immutable after construction except for the analysis state
// attached to them: the notice mask, the channel grouping, the background,
// and the instrument response reference.
package spectrum
