package model

import "errors"

// Errors returned by model parameter operations.
var (
	ErrParamCount = errors.New("model: parameter vector length mismatch")
	ErrParamValue = errors.New("model: parameter value out of range")
)

// Param describes one free model parameter.
//
// Min and Max of zero mean unbounded. Log marks amplitude-like parameters
// the fit driver should optimize in log10 space, which keeps scale-free
// steps well conditioned across many decades.
type Param struct {
	Name     string
	Value    float64
	Min, Max float64
	Log      bool
}

// FluxModel is the capability set every spectral model implements.
//
// Evaluate is a pure function of the current parameter values and the bin
// edges; SetParams mutates the parameter values in place between
// evaluations during fitting.
type FluxModel interface {
	// Name identifies the model family, e.g. "powerlaw".
	Name() string
	// Evaluate returns the photon flux density in photons/cm^2/s/keV for
	// each bin defined by the keV edge slices binLo and binHi.
	Evaluate(binLo, binHi []float64) []float64
	// Params returns the free parameters in their fixed order.
	Params() []Param
	// SetParams updates all free parameters from a vector in the same
	// order as Params.
	SetParams(values []float64) error
}
