package response

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-xspec/internal/testutil"
)

func mustARF(t *testing.T, lo, hi, area []float64) *EffectiveArea {
	t.Helper()
	a, err := NewEffectiveArea(lo, hi, area)
	if err != nil {
		t.Fatalf("NewEffectiveArea error: %v", err)
	}
	return a
}

func TestNewEffectiveAreaValidation(t *testing.T) {
	if _, err := NewEffectiveArea([]float64{1}, []float64{2}, []float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	if _, err := NewEffectiveArea(nil, nil, nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}

	if _, err := NewEffectiveArea([]float64{2}, []float64{1}, []float64{1}); !errors.Is(err, ErrEdgeOrder) {
		t.Fatalf("expected ErrEdgeOrder, got %v", err)
	}

	if _, err := NewEffectiveArea([]float64{1, 1.5}, []float64{2, 3}, []float64{1, 1}); !errors.Is(err, ErrEdgeOrder) {
		t.Fatalf("expected ErrEdgeOrder for overlap, got %v", err)
	}

	if _, err := NewEffectiveArea([]float64{1}, []float64{2}, []float64{-1}); !errors.Is(err, ErrNegativeArea) {
		t.Fatalf("expected ErrNegativeArea, got %v", err)
	}
}

func TestResampleIdentity(t *testing.T) {
	lo, hi := testutil.UniformGrid(1, 5, 4)
	a := mustARF(t, lo, hi, []float64{10, 20, 30, 40})

	area, uncovered, err := a.Resample(lo, hi)
	if err != nil {
		t.Fatalf("Resample error: %v", err)
	}
	if uncovered != 0 {
		t.Fatalf("uncovered = %d, want 0", uncovered)
	}
	testutil.RequireSliceNearlyEqual(t, area, []float64{10, 20, 30, 40}, 1e-12)
}

func TestResampleOverlapAveraging(t *testing.T) {
	a := mustARF(t, []float64{0, 1}, []float64{1, 2}, []float64{10, 30})

	// One target bin straddling both source bins equally.
	area, uncovered, err := a.Resample([]float64{0.5}, []float64{1.5})
	if err != nil {
		t.Fatalf("Resample error: %v", err)
	}
	if uncovered != 0 {
		t.Fatalf("uncovered = %d, want 0", uncovered)
	}
	testutil.RequireSliceNearlyEqual(t, area, []float64{20}, 1e-12)
}

func TestResampleOutsideRange(t *testing.T) {
	a := mustARF(t, []float64{1, 2}, []float64{2, 3}, []float64{5, 5})

	area, uncovered, err := a.Resample([]float64{10, 20}, []float64{11, 21})
	if err != nil {
		t.Fatalf("Resample error: %v", err)
	}
	if uncovered != 2 {
		t.Fatalf("uncovered = %d, want 2", uncovered)
	}
	testutil.RequireSliceNearlyEqual(t, area, []float64{0, 0}, 1e-12)
}

func TestResamplePartialCoverage(t *testing.T) {
	a := mustARF(t, []float64{1}, []float64{2}, []float64{8})

	// Target bin [1.5, 3.5) overlaps the source by 0.5 of its 2.0 width.
	area, uncovered, err := a.Resample([]float64{1.5}, []float64{3.5})
	if err != nil {
		t.Fatalf("Resample error: %v", err)
	}
	if uncovered != 0 {
		t.Fatalf("uncovered = %d, want 0", uncovered)
	}
	testutil.RequireSliceNearlyEqual(t, area, []float64{8 * 0.5 / 2.0}, 1e-12)
}

func TestResampleTargetValidation(t *testing.T) {
	a := mustARF(t, []float64{1}, []float64{2}, []float64{1})
	if _, _, err := a.Resample([]float64{2}, []float64{1}); !errors.Is(err, ErrEdgeOrder) {
		t.Fatalf("expected ErrEdgeOrder, got %v", err)
	}
	if _, _, err := a.Resample([]float64{1, 2}, []float64{2}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestWidths(t *testing.T) {
	a := mustARF(t, []float64{1, 2, 4}, []float64{2, 4, 8}, []float64{1, 1, 1})
	testutil.RequireSliceNearlyEqual(t, a.Widths(), []float64{1, 2, 4}, 1e-12)
}
