package model

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-xspec/internal/testutil"
)

func TestNewPowerLawValidation(t *testing.T) {
	if _, err := NewPowerLaw(0, 2, 1); !errors.Is(err, ErrParamValue) {
		t.Fatalf("expected ErrParamValue for zero norm, got %v", err)
	}
	if _, err := NewPowerLaw(1, 2, 0); !errors.Is(err, ErrParamValue) {
		t.Fatalf("expected ErrParamValue for zero ref, got %v", err)
	}
}

func TestPowerLawEvaluateMidpoint(t *testing.T) {
	p, err := NewPowerLaw(2, 2, 1)
	if err != nil {
		t.Fatalf("NewPowerLaw error: %v", err)
	}

	// Midpoints 1 and 3: flux = 2 * mid^-2.
	flux := p.Evaluate([]float64{0.5, 2.5}, []float64{1.5, 3.5})
	testutil.RequireSliceNearlyEqual(t, flux, []float64{2, 2.0 / 9}, 1e-12)
}

func TestPowerLawMidpointApproximationError(t *testing.T) {
	p, err := NewPowerLaw(1, 2, 1)
	if err != nil {
		t.Fatalf("NewPowerLaw error: %v", err)
	}

	// On a bin spanning 5% of its center energy the midpoint rule stays
	// within 0.1% of the analytic integral; on a very coarse bin (full
	// octave) the error grows but stays bounded.
	fine := struct{ lo, hi float64 }{1.95, 2.05}
	coarse := struct{ lo, hi float64 }{1, 2}

	mid := p.Evaluate([]float64{fine.lo}, []float64{fine.hi})[0] * (fine.hi - fine.lo)
	exact := p.Integrate(fine.lo, fine.hi)
	if rel := math.Abs(mid-exact) / exact; rel > 1e-3 {
		t.Fatalf("fine-bin midpoint error %v, want < 1e-3", rel)
	}

	mid = p.Evaluate([]float64{coarse.lo}, []float64{coarse.hi})[0] * (coarse.hi - coarse.lo)
	exact = p.Integrate(coarse.lo, coarse.hi)
	if rel := math.Abs(mid-exact) / exact; rel > 0.15 {
		t.Fatalf("coarse-bin midpoint error %v, want < 0.15", rel)
	}
}

func TestPowerLawIntegrate(t *testing.T) {
	// Index 2, norm 1, ref 1: integral of E^-2 over [1, 2] is 1/2.
	p, err := NewPowerLaw(1, 2, 1)
	if err != nil {
		t.Fatalf("NewPowerLaw error: %v", err)
	}
	testutil.RequireNearlyEqual(t, p.Integrate(1, 2), 0.5, 1e-12)

	// Index 1 uses the logarithmic branch.
	p1, err := NewPowerLaw(1, 1, 1)
	if err != nil {
		t.Fatalf("NewPowerLaw error: %v", err)
	}
	testutil.RequireNearlyEqual(t, p1.Integrate(1, math.E), 1, 1e-12)
}

func TestPowerLawParamsRoundTrip(t *testing.T) {
	p, err := NewPowerLaw(3e-3, 2, 1000)
	if err != nil {
		t.Fatalf("NewPowerLaw error: %v", err)
	}

	params := p.Params()
	if len(params) != 2 || params[0].Name != "norm" || params[1].Name != "index" {
		t.Fatalf("unexpected params: %+v", params)
	}
	if !params[0].Log {
		t.Fatalf("norm should be log-scaled")
	}

	if err := p.SetParams([]float64{1e-2, 1.5}); err != nil {
		t.Fatalf("SetParams error: %v", err)
	}
	if p.Norm != 1e-2 || p.PhotonIndex != 1.5 {
		t.Fatalf("SetParams did not update: %+v", p)
	}

	if err := p.SetParams([]float64{1}); !errors.Is(err, ErrParamCount) {
		t.Fatalf("expected ErrParamCount, got %v", err)
	}
	if err := p.SetParams([]float64{-1, 2}); !errors.Is(err, ErrParamValue) {
		t.Fatalf("expected ErrParamValue, got %v", err)
	}
}
