package brewing

import (
	"errors"
	"math"
	"testing"
)

func TestParseRatio_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1:16", 16},
		{"1:16.5", 16.5},
		{" 1:15 ", 15},
		{"2:30", 15},
		{"1:2.25", 2.25},
	}
	for _, tc := range cases {
		got, err := ParseRatio(tc.in)
		if err != nil {
			t.Fatalf("ParseRatio(%q) unexpected error: %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("ParseRatio(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseRatio_Invalid(t *testing.T) {
	for _, in := range []string{"", "16.5", "1-16", "1:", ":16", "1:0", "0:16", "1:-2", "a:b", "1:16:5"} {
		if _, err := ParseRatio(in); !errors.Is(err, ErrInvalidRatioFormat) {
			t.Fatalf("ParseRatio(%q): expected ErrInvalidRatioFormat, got %v", in, err)
		}
	}
}

func TestWaterForDose_ExactProduct(t *testing.T) {
	// water = dose x N for "1:N", within rounding to 2 decimals
	for _, tc := range []struct {
		dose  float64
		ratio string
		want  float64
	}{
		{18, "1:16", 288},
		{15, "1:16.5", 247.5},
		{20.5, "1:15", 307.5},
	} {
		factor, err := ParseRatio(tc.ratio)
		if err != nil {
			t.Fatalf("ParseRatio(%q): %v", tc.ratio, err)
		}
		got := WaterForDose(tc.dose, factor)
		if math.Abs(got-tc.want) > 0.005 {
			t.Fatalf("WaterForDose(%v, %q) = %v, want %v", tc.dose, tc.ratio, got, tc.want)
		}
	}
}

func TestFormatRatio_OneDecimal(t *testing.T) {
	cases := []struct {
		factor float64
		want   string
	}{
		{16, "1:16"},
		{16.5, "1:16.5"},
		{16.54, "1:16.5"},
		{16.55, "1:16.6"},
		{15.04, "1:15"},
	}
	for _, tc := range cases {
		if got := FormatRatio(tc.factor); got != tc.want {
			t.Fatalf("FormatRatio(%v) = %q, want %q", tc.factor, got, tc.want)
		}
	}
}

func TestRatioFromWater(t *testing.T) {
	got, err := RatioFromWater(18, 288)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-16) > 1e-9 {
		t.Fatalf("RatioFromWater(18, 288) = %v, want 16", got)
	}

	if _, err := RatioFromWater(0, 288); err == nil {
		t.Fatalf("expected error for zero dose")
	}
}
