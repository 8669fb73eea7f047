package brewing

import (
	"errors"
	"math"
	"testing"
)

func TestExtractionYield_KnownValue(t *testing.T) {
	// EY(TDS=1.35, yield=250, dose=18) = (1.35*250)/18 = 18.75
	got, err := ExtractionYield(1.35, 250, 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-18.75) > 1e-9 {
		t.Fatalf("ExtractionYield = %v, want 18.75", got)
	}
}

func TestExtractionYield_NotComputable(t *testing.T) {
	cases := []struct {
		name             string
		tds, yield, dose float64
	}{
		{"zero dose", 1.35, 250, 0},
		{"zero dose with other inputs present", 2.0, 100, 0},
		{"absent tds", 0, 250, 18},
		{"absent yield", 1.35, 0, 18},
		{"negative dose", 1.35, 250, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ExtractionYield(tc.tds, tc.yield, tc.dose); !errors.Is(err, ErrNotComputable) {
				t.Fatalf("expected ErrNotComputable, got %v", err)
			}
		})
	}
}
