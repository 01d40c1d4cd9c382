package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by kernel redistributors.
var (
	ErrEmptyKernel  = errors.New("response: kernel must not be empty")
	ErrKernelCenter = errors.New("response: kernel center must lie inside the kernel")
	ErrKernelSum    = errors.New("response: kernel must be non-negative and sum to at most 1")
	ErrKernelWidth  = errors.New("response: kernel sigma must be positive")
)

// fftThreshold is the kernel length above which FFT convolution beats the
// direct sum on typical grids.
const fftThreshold = 64

// Kernel is a translation-invariant redistributor: every true-energy bin
// spreads into neighboring channels through one shared line-spread kernel.
//
// This models instruments whose resolution is constant in channel space.
// The energy and channel grids coincide (NumEnergies == NumChannels), and
// counts redistributed past either grid edge are lost, so effective row
// sums near the edges fall below 1, consistent with [Matrix] semantics.
//
// Wide kernels are applied by FFT convolution; short kernels use the direct
// sum, which is faster below the plan setup cost.
type Kernel struct {
	n      int
	kernel []float64
	center int

	// FFT path state, nil for short kernels.
	plan      *algofft.Plan[complex128]
	fftSize   int
	kernelFFT []complex128
	scratch   []complex128
}

// NewKernel builds a shared-kernel redistributor for an n-bin grid.
//
// kernel holds the spread weights; center is the index within the kernel
// that maps a bin onto itself. Weights must be non-negative and sum to at
// most 1 (1 + numerical noise is clamped, as in [NewMatrix]).
func NewKernel(n int, kernel []float64, center int) (*Kernel, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoChannels, n)
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if center < 0 || center >= len(kernel) {
		return nil, fmt.Errorf("%w: center=%d len=%d", ErrKernelCenter, center, len(kernel))
	}

	w := append([]float64(nil), kernel...)
	sum := 0.0
	for i, v := range w {
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrKernelSum, i, v)
		}
		sum += v
	}
	switch {
	case sum > 1+rowSumTol:
		return nil, fmt.Errorf("%w: sum is %v", ErrKernelSum, sum)
	case sum > 1:
		for i := range w {
			w[i] /= sum
		}
	}

	k := &Kernel{n: n, kernel: w, center: center}
	if len(w) < fftThreshold {
		return k, nil
	}

	fftSize := nextPowerOf2(n + len(w) - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	kernelPadded := make([]complex128, fftSize)
	for i, v := range w {
		kernelPadded[i] = complex(v, 0)
	}
	kernelFFT := make([]complex128, fftSize)
	if err := plan.Forward(kernelFFT, kernelPadded); err != nil {
		return nil, fmt.Errorf("response: failed to compute kernel FFT: %w", err)
	}

	k.plan = plan
	k.fftSize = fftSize
	k.kernelFFT = kernelFFT
	k.scratch = make([]complex128, fftSize)
	return k, nil
}

// NumEnergies returns the grid size.
func (k *Kernel) NumEnergies() int { return k.n }

// NumChannels returns the grid size.
func (k *Kernel) NumChannels() int { return k.n }

// ApplyTo convolves incident counts with the shared kernel.
//
// dst and incident must both have length NumChannels; dst is overwritten.
func (k *Kernel) ApplyTo(dst, incident []float64) error {
	if len(incident) != k.n {
		return fmt.Errorf("%w: incident=%d grid=%d", ErrGridMismatch, len(incident), k.n)
	}
	if len(dst) != k.n {
		return fmt.Errorf("%w: dst=%d grid=%d", ErrGridMismatch, len(dst), k.n)
	}
	if k.plan == nil {
		k.applyDirect(dst, incident)
		return nil
	}
	return k.applyFFT(dst, incident)
}

// applyDirect computes the convolution sum channel by channel.
func (k *Kernel) applyDirect(dst, incident []float64) {
	for j := range dst {
		dst[j] = 0
	}
	for i, c := range incident {
		if c == 0 {
			continue
		}
		for j, w := range k.kernel {
			ch := i + j - k.center
			if ch < 0 || ch >= k.n {
				continue
			}
			dst[ch] += c * w
		}
	}
}

// applyFFT computes the linear convolution in the frequency domain and
// extracts the centered window.
func (k *Kernel) applyFFT(dst, incident []float64) error {
	for i := range k.scratch {
		k.scratch[i] = 0
	}
	for i, v := range incident {
		k.scratch[i] = complex(v, 0)
	}
	if err := k.plan.Forward(k.scratch, k.scratch); err != nil {
		return fmt.Errorf("response: forward FFT failed: %w", err)
	}
	for i := range k.scratch {
		k.scratch[i] *= k.kernelFFT[i]
	}
	if err := k.plan.Inverse(k.scratch, k.scratch); err != nil {
		return fmt.Errorf("response: inverse FFT failed: %w", err)
	}
	// Full linear convolution index of channel j is j + center.
	for j := range dst {
		dst[j] = real(k.scratch[j+k.center])
	}
	return nil
}

// GaussianKernel returns a discrete Gaussian line-spread kernel with the
// given standard deviation in bins, truncated at +/- halfWidth bins and
// normalized to sum to 1. The center index is halfWidth.
func GaussianKernel(sigmaBins float64, halfWidth int) ([]float64, int, error) {
	if sigmaBins <= 0 || math.IsNaN(sigmaBins) {
		return nil, 0, fmt.Errorf("%w: %v", ErrKernelWidth, sigmaBins)
	}
	if halfWidth < 0 {
		return nil, 0, fmt.Errorf("%w: half width %d", ErrKernelWidth, halfWidth)
	}
	w := make([]float64, 2*halfWidth+1)
	sum := 0.0
	for i := range w {
		x := float64(i-halfWidth) / sigmaBins
		w[i] = math.Exp(-0.5 * x * x)
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w, halfWidth, nil
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
