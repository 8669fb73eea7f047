// Package brewing holds the brew session derivation engine: ratio and
// extraction arithmetic plus the draft reconciler. Everything here is
// pure computation over values; persistence belongs to the repository
// layer.
package brewing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRatioFormat is returned when a ratio string does not match
// the "part:part" positive-number pattern.
var ErrInvalidRatioFormat = errors.New(`invalid ratio: expected "1:N" with N > 0`)

// ParseRatio converts a "part:part" ratio string into a water-per-dose
// factor. "1:16" yields 16, "2:30" yields 15. Anything that is not two
// colon-separated positive numbers fails with ErrInvalidRatioFormat.
func ParseRatio(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, ErrInvalidRatioFormat
	}
	dose, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || dose <= 0 {
		return 0, ErrInvalidRatioFormat
	}
	water, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || water <= 0 {
		return 0, ErrInvalidRatioFormat
	}
	return water / dose, nil
}

// FormatRatio renders a factor back into "1:N" form with N rounded to
// one decimal place ("1:16" rather than "1:16.0" for whole factors).
func FormatRatio(factor float64) string {
	s := strconv.FormatFloat(factor, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return "1:" + s
}

// WaterForDose applies water = dose x factor.
func WaterForDose(doseG, factor float64) float64 {
	return doseG * factor
}

// RatioFromWater re-derives the factor after a direct water edit.
// Dose must be positive for the ratio to be defined.
func RatioFromWater(doseG, waterG float64) (float64, error) {
	if doseG <= 0 {
		return 0, fmt.Errorf("ratio from water: dose must be > 0, got %g", doseG)
	}
	return waterG / doseG, nil
}
