// Package fit drives maximum-likelihood fits of flux models to spectra.
//
// The driver binds a model, a spectrum, and its instrument response into a
// pure scalar objective (the Cash statistic as a function of the parameter
// vector) and hands it to a gonum optimizer. No fitting state lives
// outside the optimizer's own loop: every objective evaluation sets the
// parameter vector, forward-folds, and scores, so the objective is
// deterministic and safely reentrant.
//
// Parameters marked Log are optimized in log10 space and reported back in
// model space. A fit that cannot converge, or whose objective is already
// non-finite at the starting point, surfaces a [ConvergenceError] with the
// last evaluated state instead of a misleading result.
package fit
