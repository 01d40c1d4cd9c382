// Package likelihood computes Poisson fit statistics for binned counts.
//
// The core quantity is the Poisson log-likelihood between predicted model
// counts m and observed counts x,
//
//	logL = sum_i [ x_i*ln(m_i) - m_i ],
//
// and the Cash statistic C = -2*logL, which is minimized to fit count data
// without a Gaussian approximation. Bins where the model predicts zero
// counts are handled by an explicit, configurable policy rather than
// producing -Inf by accident; see [ZeroModelPolicy].
//
// All sums accumulate in float64 regardless of how the inputs were stored,
// so cancellation stays controlled over many thousands of bins.
//
// Building with the fastmath tag replaces math.Log with a fast polynomial
// approximation, trading ~1e-7 relative accuracy for throughput in the
// optimizer's inner loop.
package likelihood
