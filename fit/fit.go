package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/optimize"

	"github.com/cwbudde/algo-xspec/likelihood"
	"github.com/cwbudde/algo-xspec/model"
	"github.com/cwbudde/algo-xspec/spectrum"
)

// Errors returned by the fit driver.
var (
	ErrNoParams     = errors.New("fit: model has no free parameters")
	ErrNotConverged = errors.New("fit: optimizer did not converge")
	ErrBadStart     = errors.New("fit: objective is not finite at the starting point")
)

// ConvergenceError reports a failed fit with the last evaluated state for
// diagnostics.
type ConvergenceError struct {
	// Params is the last evaluated parameter vector, in model space.
	Params []float64
	// Stat is the statistic at Params.
	Stat float64
	// Reason is the underlying cause.
	Reason error
}

// Error describes the failure with the diagnostic state.
func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v (last params %v, stat %v)", e.Reason, e.Params, e.Stat)
}

// Unwrap exposes the underlying cause for errors.Is.
func (e *ConvergenceError) Unwrap() error { return e.Reason }

// Run fits the model to the spectrum by minimizing the Cash statistic and
// leaves the model set to the best-fit parameters.
//
// If the spectrum has a response attached, each objective evaluation
// forward-folds the model through it; otherwise predicted counts are the
// model flux integrated over the spectrum's own bins times exposure. Only
// noticed channels enter the statistic. Channel grouping is display state
// and does not affect fitting.
func Run(m model.FluxModel, sp *spectrum.Spectrum, opts ...Option) (*Result, error) {
	o := applyOptions(opts)

	params := m.Params()
	if len(params) == 0 {
		return nil, ErrNoParams
	}

	predict := newPredictor(m, sp)

	// Noticed-channel view of the data.
	noticed := sp.Noticed()
	var idx []int
	for i, on := range noticed {
		if on {
			idx = append(idx, i)
		}
	}
	counts := sp.Counts()
	errsAll := sp.CountErrors()
	obs := make([]float64, len(idx))
	errs := make([]float64, len(idx))
	for k, i := range idx {
		obs[k] = counts[i]
		errs[k] = errsAll[i]
	}

	masked := make([]float64, len(idx))
	statOpt := likelihood.WithZeroModelPolicy(o.Policy)

	objective := func(x []float64) float64 {
		vals := decode(params, x)
		if err := m.SetParams(vals); err != nil {
			return math.Inf(1)
		}
		pred, err := predict()
		if err != nil {
			return math.Inf(1)
		}
		for k, i := range idx {
			masked[k] = pred[i]
		}
		c, err := likelihood.Cash(masked, obs, statOpt)
		if err != nil {
			return math.Inf(1)
		}
		return c
	}

	x0 := encode(params)
	initial := objective(x0)
	if math.IsNaN(initial) || math.IsInf(initial, 0) {
		return nil, &ConvergenceError{Params: decode(params, x0), Stat: initial, Reason: ErrBadStart}
	}

	problem := optimize.Problem{Func: objective}
	settings := &optimize.Settings{
		FuncEvaluations: o.MaxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   o.Tolerance,
			Iterations: 25,
		},
	}

	res, err := optimize.Minimize(problem, x0, settings, o.method())
	if err != nil {
		ce := &ConvergenceError{Reason: fmt.Errorf("%w: %v", ErrNotConverged, err)}
		if res != nil {
			ce.Params = decode(params, res.X)
			ce.Stat = res.F
		}
		return nil, ce
	}
	if !statusConverged(res.Status) {
		return nil, &ConvergenceError{
			Params: decode(params, res.X),
			Stat:   res.F,
			Reason: fmt.Errorf("%w: %v", ErrNotConverged, res.Status),
		}
	}

	// Evaluate once more at the optimum for the packaged result.
	best := decode(params, res.X)
	if err := m.SetParams(best); err != nil {
		return nil, fmt.Errorf("fit: best-fit parameters rejected by model: %w", err)
	}
	pred, err := predict()
	if err != nil {
		return nil, fmt.Errorf("fit: prediction at optimum failed: %w", err)
	}
	for k, i := range idx {
		masked[k] = pred[i]
	}
	resid, _, err := likelihood.Residuals(masked, obs, errs)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return &Result{
		Model:       m.Name(),
		Names:       names,
		Params:      best,
		Stat:        res.F,
		InitialStat: initial,
		Evaluations: res.Stats.FuncEvaluations,
		Converged:   true,
		Residuals:   resid,
		SumSquares:  likelihood.SumSquares(resid),
	}, nil
}

// newPredictor returns a closure producing predicted counts on the
// spectrum's channel grid for the model's current parameters.
func newPredictor(m model.FluxModel, sp *spectrum.Spectrum) func() ([]float64, error) {
	if resp := sp.Response(); resp != nil {
		exposure := sp.Exposure()
		return func() ([]float64, error) {
			return resp.Fold(m, exposure)
		}
	}

	// No response: predicted counts are flux density integrated over the
	// spectrum's own bins times exposure.
	binLo := sp.BinLo()
	binHi := sp.BinHi()
	widths := make([]float64, len(binLo))
	for i := range widths {
		widths[i] = binHi[i] - binLo[i]
	}
	exposure := sp.Exposure()
	return func() ([]float64, error) {
		flux := m.Evaluate(binLo, binHi)
		if len(flux) != len(widths) {
			return nil, fmt.Errorf("fit: model returned %d bins, spectrum has %d", len(flux), len(widths))
		}
		pred := make([]float64, len(flux))
		vecmath.MulBlock(pred, flux, widths)
		vecmath.ScaleBlockInPlace(pred, exposure)
		return pred, nil
	}
}

// encode maps parameter values into optimizer space (log10 for Log params).
func encode(params []model.Param) []float64 {
	x := make([]float64, len(params))
	for i, p := range params {
		if p.Log {
			x[i] = math.Log10(p.Value)
		} else {
			x[i] = p.Value
		}
	}
	return x
}

// decode maps an optimizer-space vector back into model space.
func decode(params []model.Param, x []float64) []float64 {
	vals := make([]float64, len(x))
	for i := range x {
		if params[i].Log {
			vals[i] = math.Pow(10, x[i])
		} else {
			vals[i] = x[i]
		}
	}
	return vals
}

// statusConverged reports whether the optimizer status indicates
// convergence rather than a hit limit or failure.
func statusConverged(s optimize.Status) bool {
	switch s {
	case optimize.Success,
		optimize.FunctionThreshold,
		optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	default:
		return false
	}
}
