// Package response models instrument responses and forward folding.
//
// An instrument response combines an effective-area curve (ARF) with an
// energy redistribution matrix (RMF). Forward folding maps a physical flux
// model evaluated on the response's true-energy grid into expected counts
// per detector channel:
//
//	incident[i]  = flux(E_i) * dE_i * area_i * exposure
//	predicted[j] = sum_i incident[i] * R[i][j]
//
// Redistribution is polymorphic over the [Redistributor] interface. The
// general [Matrix] form holds one sparse row per true-energy bin. For
// instruments with translation-invariant resolution a [Kernel] applies a
// single shared line-spread kernel by FFT convolution instead, which is
// much faster for wide kernels on fine grids.
//
// A [Response] without a redistributor folds through effective area only,
// an explicit degraded mode for diagnostics and unfolding.
package response
