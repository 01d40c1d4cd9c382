package spectrum

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by grouping operations.
var (
	ErrGroupFactor = errors.New("spectrum: grouping factor must be larger than 1")
	ErrMinCounts   = errors.New("spectrum: minimum counts must be positive")
)

// GroupChannels groups channels by a constant factor n.
//
// The last group absorbs the remainder when the channel count is not a
// multiple of n. Grouping replaces any previous grouping.
func (s *Spectrum) GroupChannels(n int) error {
	if n <= 1 {
		return fmt.Errorf("%w: %d", ErrGroupFactor, n)
	}
	g := make([]int, len(s.counts))
	for i := range g {
		g[i] = i / n
	}
	s.grouping = g
	return nil
}

// GroupMinCounts groups channels so every group holds at least min counts.
//
// Channels are accumulated left to right; a group closes once its running
// sum reaches min. If the trailing group falls short it is merged into the
// previous one, so the final group also meets the threshold.
func (s *Spectrum) GroupMinCounts(min float64) error {
	if min <= 0 {
		return fmt.Errorf("%w: %v", ErrMinCounts, min)
	}
	g := make([]int, len(s.counts))
	group, acc := 0, 0.0
	for i, c := range s.counts {
		g[i] = group
		acc += c
		if acc >= min {
			group++
			acc = 0
		}
	}

	// Merge a short trailing group into its predecessor.
	last := g[len(g)-1]
	if last > 0 {
		sum := 0.0
		for i, c := range s.counts {
			if g[i] == last {
				sum += c
			}
		}
		if sum < min {
			for i := range g {
				if g[i] == last {
					g[i] = last - 1
				}
			}
		}
	}

	s.grouping = g
	return nil
}

// ResetGrouping removes any channel grouping.
func (s *Spectrum) ResetGrouping() { s.grouping = nil }

// Grouped reports whether a channel grouping is active.
func (s *Spectrum) Grouped() bool { return s.grouping != nil }

// Binned returns the noticed histogram with the active grouping applied.
//
// Without grouping this is the noticed subset of raw channels. With
// grouping, counts inside each group are summed (conserving total counts
// over the noticed range) and the group edges span from the first to the
// last member channel. Errors are sqrt(max(counts, 1)) on the output bins.
func (s *Spectrum) Binned() (lo, hi, counts, errs []float64) {
	if s.grouping == nil {
		for i := range s.counts {
			if !s.notice[i] {
				continue
			}
			lo = append(lo, s.binLo[i])
			hi = append(hi, s.binHi[i])
			counts = append(counts, s.counts[i])
		}
	} else {
		lo, hi, counts = groupArrays(s.binLo, s.binHi, s.counts, s.grouping, s.notice)
	}

	errs = make([]float64, len(counts))
	for i, c := range counts {
		errs[i] = math.Sqrt(math.Max(c, 1))
	}
	return lo, hi, counts, errs
}

// groupArrays sums values over contiguous group indices, restricted to
// noticed channels. Groups with no noticed member are skipped.
func groupArrays(binLo, binHi, values []float64, grouping []int, notice []bool) (lo, hi, sums []float64) {
	current := -1
	for i := range values {
		if !notice[i] {
			continue
		}
		if grouping[i] != current {
			current = grouping[i]
			lo = append(lo, binLo[i])
			hi = append(hi, binHi[i])
			sums = append(sums, 0)
		}
		hi[len(hi)-1] = binHi[i]
		sums[len(sums)-1] += values[i]
	}
	return lo, hi, sums
}
