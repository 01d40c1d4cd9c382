package fit

import (
	"encoding/json"
	"fmt"
	"io"
)

// Result is the immutable outcome of one successful fit.
type Result struct {
	// Model is the fitted model family name.
	Model string `json:"model"`
	// Names lists the parameter names in vector order.
	Names []string `json:"names"`
	// Params is the best-fit parameter vector in model space.
	Params []float64 `json:"params"`
	// Stat is the Cash statistic at the optimum.
	Stat float64 `json:"stat"`
	// InitialStat is the Cash statistic at the starting point.
	InitialStat float64 `json:"initial_stat"`
	// Evaluations counts objective evaluations spent by the optimizer.
	Evaluations int `json:"evaluations"`
	// Converged is true for every Result; failed fits surface a
	// ConvergenceError instead. It is kept explicit for serialized records.
	Converged bool `json:"converged"`
	// Residuals holds (predicted-observed)/error at the optimum over the
	// noticed channels.
	Residuals []float64 `json:"residuals,omitempty"`
	// SumSquares is the sum of squared residuals.
	SumSquares float64 `json:"sum_squares"`
}

// WriteJSON serializes the result for downstream reporting.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("fit: encoding result: %w", err)
	}
	return nil
}

// ReadResult deserializes a result written by WriteJSON.
func ReadResult(r io.Reader) (*Result, error) {
	var out Result
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("fit: decoding result: %w", err)
	}
	return &out, nil
}
