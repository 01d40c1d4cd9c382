// Package model defines parametric flux models for spectral fitting.
//
// A [FluxModel] evaluates photon flux density over energy bins and exposes
// its free parameters as an ordered vector, so the fitting engine can drive
// any model through the same capability set. New model types implement the
// interface without touching the fitting code.
package model
