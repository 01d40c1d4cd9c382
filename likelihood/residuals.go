package likelihood

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Residuals returns the error-scaled residuals (predicted - observed) / err
// per bin.
//
// Bins with a non-positive error are degenerate: they get a zero residual
// instead of dividing by zero, and degenerate reports how many there were
// so callers can flag them in diagnostics.
func Residuals(predicted, observed, errs []float64) (res []float64, degenerate int, err error) {
	if len(predicted) != len(observed) || len(predicted) != len(errs) {
		return nil, 0, fmt.Errorf("%w: predicted=%d observed=%d errs=%d",
			ErrLengthMismatch, len(predicted), len(observed), len(errs))
	}
	if len(predicted) == 0 {
		return nil, 0, ErrEmpty
	}
	res = make([]float64, len(predicted))
	for i := range predicted {
		if errs[i] <= 0 {
			degenerate++
			continue
		}
		res[i] = (predicted[i] - observed[i]) / errs[i]
	}
	return res, degenerate, nil
}

// SumSquares returns the sum of squared residuals, a chi-square-like
// goodness figure for diagnostics.
func SumSquares(res []float64) float64 {
	if len(res) == 0 {
		return 0
	}
	return vecmath.DotProduct(res, res)
}
