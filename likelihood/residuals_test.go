package likelihood

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-xspec/internal/testutil"
)

func TestResidualsFixture(t *testing.T) {
	// Observed [0,4,9] with sqrt-floored errors [1,2,3] and predicted
	// [1,4,6] gives residuals [1, 0, -1].
	res, degenerate, err := Residuals([]float64{1, 4, 6}, []float64{0, 4, 9}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("Residuals error: %v", err)
	}
	if degenerate != 0 {
		t.Fatalf("degenerate = %d, want 0", degenerate)
	}
	testutil.RequireSliceNearlyEqual(t, res, []float64{1, 0, -1}, 1e-12)
}

func TestResidualsDegenerateErrors(t *testing.T) {
	res, degenerate, err := Residuals([]float64{5, 5}, []float64{3, 3}, []float64{0, 2})
	if err != nil {
		t.Fatalf("Residuals error: %v", err)
	}
	if degenerate != 1 {
		t.Fatalf("degenerate = %d, want 1", degenerate)
	}
	testutil.RequireSliceNearlyEqual(t, res, []float64{0, 1}, 1e-12)
}

func TestResidualsStructuralErrors(t *testing.T) {
	if _, _, err := Residuals([]float64{1}, []float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if _, _, err := Residuals(nil, nil, nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestSumSquares(t *testing.T) {
	testutil.RequireNearlyEqual(t, SumSquares([]float64{1, 0, -1}), 2, 1e-12)
	testutil.RequireNearlyEqual(t, SumSquares(nil), 0, 1e-12)
}
