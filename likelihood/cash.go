package likelihood

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by likelihood functions.
var (
	ErrLengthMismatch = errors.New("likelihood: predicted and observed must have equal length")
	ErrEmpty          = errors.New("likelihood: at least one bin is required")
)

// ZeroModelPolicy selects how bins with non-positive predicted counts enter
// the log-likelihood.
type ZeroModelPolicy int

const (
	// ZeroModelIgnore makes zero-model bins contribute nothing to the sum.
	// This is the default: channels outside an instrument's sensitive range
	// legitimately predict zero, and dropping them keeps the statistic
	// finite there. It does mean observed counts in such bins go unpunished.
	ZeroModelIgnore ZeroModelPolicy = iota
	// ZeroModelInvalid treats observed counts in a zero-model bin as
	// evidence the parameter point is unusable: the log-likelihood becomes
	// -Inf so the optimizer steps away from it.
	ZeroModelInvalid
)

type config struct {
	policy ZeroModelPolicy
}

// Option adjusts likelihood evaluation.
type Option func(*config)

// WithZeroModelPolicy selects the zero-model-bin policy.
func WithZeroModelPolicy(p ZeroModelPolicy) Option {
	return func(c *config) { c.policy = p }
}

// LogLikelihood returns the Poisson log-likelihood of observed counts given
// predicted model counts.
//
// Malformed numeric input (NaN anywhere, or a total that is not finite)
// yields -Inf rather than an error, signaling an unusable parameter point
// the optimizer can back away from. Structural problems (length mismatch,
// empty input) are errors.
func LogLikelihood(predicted, observed []float64, opts ...Option) (float64, error) {
	if len(predicted) != len(observed) {
		return 0, fmt.Errorf("%w: predicted=%d observed=%d",
			ErrLengthMismatch, len(predicted), len(observed))
	}
	if len(predicted) == 0 {
		return 0, ErrEmpty
	}
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	// sum_i m_i over m_i > 0, starting from the full vector sum and
	// removing non-positive entries in the policy pass below.
	sumModel := vecmath.Sum(predicted)

	logTerm := 0.0
	for i, m := range predicted {
		if m > 0 {
			if observed[i] != 0 {
				logTerm += observed[i] * mathLog(m)
			}
			continue
		}
		sumModel -= m
		if cfg.policy == ZeroModelInvalid && observed[i] > 0 {
			return math.Inf(-1), nil
		}
	}

	ll := logTerm - sumModel
	if math.IsNaN(ll) || math.IsInf(ll, 1) {
		return math.Inf(-1), nil
	}
	return ll, nil
}

// Cash returns the Cash statistic C = -2 * LogLikelihood, the quantity a
// fit minimizes.
func Cash(predicted, observed []float64, opts ...Option) (float64, error) {
	ll, err := LogLikelihood(predicted, observed, opts...)
	if err != nil {
		return 0, err
	}
	return -2 * ll, nil
}
