package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-xspec/internal/testutil"
)

func mustSpectrum(t *testing.T, binLo, binHi, counts []float64, exposure float64, unit Unit) *Spectrum {
	t.Helper()
	s, err := New(binLo, binHi, counts, exposure, unit)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func TestNewValidation(t *testing.T) {
	lo := []float64{1, 2, 3}
	hi := []float64{2, 3, 4}
	cts := []float64{1, 2, 3}

	if _, err := New(lo, hi, []float64{1, 2}, 1, KeV); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	if _, err := New(nil, nil, nil, 1, KeV); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}

	if _, err := New(lo, hi, cts, 0, KeV); !errors.Is(err, ErrExposure) {
		t.Fatalf("expected ErrExposure, got %v", err)
	}

	if _, err := New([]float64{1, 2, 1.5}, []float64{2, 3, 4}, cts, 1, KeV); !errors.Is(err, ErrBinOrder) {
		t.Fatalf("expected ErrBinOrder for overlapping bins, got %v", err)
	}

	if _, err := New([]float64{2, 1, 3}, []float64{1, 2, 4}, cts, 1, KeV); !errors.Is(err, ErrBinOrder) {
		t.Fatalf("expected ErrBinOrder for inverted bin, got %v", err)
	}

	if _, err := New(lo, hi, []float64{1, -2, 3}, 1, KeV); !errors.Is(err, ErrNegativeCounts) {
		t.Fatalf("expected ErrNegativeCounts, got %v", err)
	}
}

func TestBinMidInsideEdges(t *testing.T) {
	binLo, binHi := testutil.UniformGrid(0.2, 10, 500)
	s := mustSpectrum(t, binLo, binHi, make([]float64, 500), 100, KeV)

	mid := s.BinMid()
	for i := range mid {
		if !(mid[i] > binLo[i] && mid[i] < binHi[i]) {
			t.Fatalf("midpoint %d = %v not inside (%v, %v)", i, mid[i], binLo[i], binHi[i])
		}
	}
}

func TestCountErrorsFloor(t *testing.T) {
	s := mustSpectrum(t, []float64{1, 2, 3}, []float64{2, 3, 4}, []float64{0, 4, 9}, 1, KeV)

	testutil.RequireSliceNearlyEqual(t, s.CountErrors(), []float64{1, 2, 3}, 1e-12)
}

func TestAngstromConversionMatchesKeV(t *testing.T) {
	// Wavelength bins descending in energy: construct in Angstrom and
	// compare against the equivalent keV construction.
	wlLo := []float64{2, 4, 8}
	wlHi := []float64{4, 8, 16}
	cts := []float64{10, 20, 30}

	s := mustSpectrum(t, wlLo, wlHi, cts, 50, Angstrom)
	if s.NativeUnit() != Angstrom {
		t.Fatalf("native unit = %v, want Angstrom", s.NativeUnit())
	}

	wantLo := []float64{HC / 16, HC / 8, HC / 4}
	wantHi := []float64{HC / 8, HC / 4, HC / 2}
	testutil.RequireSliceNearlyEqual(t, s.BinLo(), wantLo, 1e-12)
	testutil.RequireSliceNearlyEqual(t, s.BinHi(), wantHi, 1e-12)
	testutil.RequireSliceNearlyEqual(t, s.Counts(), []float64{30, 20, 10}, 1e-12)
}

func TestNoticeRange(t *testing.T) {
	binLo, binHi := testutil.UniformGrid(0, 10, 10)
	s := mustSpectrum(t, binLo, binHi, testutil.Ones(10), 1, KeV)

	if err := s.NoticeRange(2, 5); err != nil {
		t.Fatalf("NoticeRange error: %v", err)
	}
	mask := s.Noticed()
	for i := range mask {
		want := binLo[i] >= 2 && binHi[i] <= 5
		if mask[i] != want {
			t.Fatalf("mask[%d] = %v, want %v", i, mask[i], want)
		}
	}

	s.NoticeAll()
	for i, on := range s.Noticed() {
		if !on {
			t.Fatalf("NoticeAll left channel %d masked", i)
		}
	}

	if err := s.NoticeRange(5, 2); !errors.Is(err, ErrNoticeRange) {
		t.Fatalf("expected ErrNoticeRange for inverted range, got %v", err)
	}

	if err := s.NoticeRange(100, 200); !errors.Is(err, ErrNoticeRange) {
		t.Fatalf("expected ErrNoticeRange for empty coverage, got %v", err)
	}
	for i, on := range s.Noticed() {
		if !on {
			t.Fatalf("failed notice left channel %d masked", i)
		}
	}
}

func TestNoticeRangeErrorKeepsMask(t *testing.T) {
	binLo, binHi := testutil.UniformGrid(0, 10, 10)
	s := mustSpectrum(t, binLo, binHi, testutil.Ones(10), 1, KeV)

	if err := s.NoticeRange(2, 5); err != nil {
		t.Fatalf("NoticeRange error: %v", err)
	}
	before := s.Noticed()

	if err := s.NoticeRange(100, 200); !errors.Is(err, ErrNoticeRange) {
		t.Fatalf("expected ErrNoticeRange, got %v", err)
	}
	if err := s.NoticeRange(5, 2); !errors.Is(err, ErrNoticeRange) {
		t.Fatalf("expected ErrNoticeRange, got %v", err)
	}

	after := s.Noticed()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("mask[%d] changed from %v to %v after failed notice", i, before[i], after[i])
		}
	}
}

func TestParseUnit(t *testing.T) {
	cases := map[string]Unit{
		"keV":       KeV,
		"kev":       KeV,
		"Angstroms": Angstrom,
		"angstrom":  Angstrom,
		"angs":      Angstrom,
	}
	for in, want := range cases {
		got, err := ParseUnit(in)
		if err != nil {
			t.Fatalf("ParseUnit(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseUnit(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseUnit("parsec"); err == nil {
		t.Fatalf("expected error for unknown unit")
	}
}

func TestAccessorsCopy(t *testing.T) {
	s := mustSpectrum(t, []float64{1, 2}, []float64{2, 3}, []float64{5, 6}, 1, KeV)

	c := s.Counts()
	c[0] = math.NaN()
	if s.Counts()[0] != 5 {
		t.Fatalf("Counts must return a copy")
	}
}
