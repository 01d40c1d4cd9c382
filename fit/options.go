package fit

import (
	"gonum.org/v1/gonum/optimize"

	"github.com/cwbudde/algo-xspec/likelihood"
)

// Method names accepted by WithMethod.
const (
	MethodNelderMead      = "nelder-mead"
	MethodLBFGS           = "lbfgs"
	MethodGradientDescent = "gradient"
)

// Options configures a fit.
type Options struct {
	Method    string
	MaxEvals  int
	Tolerance float64
	Policy    likelihood.ZeroModelPolicy
}

// Option mutates fit Options.
type Option func(*Options)

// DefaultOptions returns the default fit configuration: Nelder-Mead with an
// absolute function-convergence tolerance of 1e-8 and at most 10000
// objective evaluations.
func DefaultOptions() Options {
	return Options{
		Method:    MethodNelderMead,
		MaxEvals:  10000,
		Tolerance: 1e-8,
		Policy:    likelihood.ZeroModelIgnore,
	}
}

// WithMethod selects the optimization method by name. Unknown names fall
// back to Nelder-Mead, which needs no gradient information.
func WithMethod(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Method = name
		}
	}
}

// WithMaxEvals caps the number of objective evaluations.
func WithMaxEvals(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxEvals = n
		}
	}
}

// WithTolerance sets the absolute function-convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithZeroModelPolicy sets the zero-model-bin likelihood policy.
func WithZeroModelPolicy(p likelihood.ZeroModelPolicy) Option {
	return func(o *Options) { o.Policy = p }
}

// applyOptions folds options over the defaults.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// method maps the configured name onto a gonum optimizer. Gradient-based
// methods rely on gonum's finite-difference gradient when, as here, the
// problem supplies only a function value.
func (o Options) method() optimize.Method {
	switch o.Method {
	case MethodLBFGS:
		return &optimize.LBFGS{}
	case MethodGradientDescent:
		return &optimize.GradientDescent{}
	default:
		return &optimize.NelderMead{}
	}
}
