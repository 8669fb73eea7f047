package brewing

import "errors"

// ErrNotComputable signals that extraction yield is undefined for the
// given inputs. Callers must surface "not computable" rather than a
// misleading 0%.
var ErrNotComputable = errors.New("extraction yield not computable: requires TDS, yield and a non-zero dose")

// ExtractionYield derives the extraction yield percentage from a
// measured TDS%, the beverage weight and the dry dose:
//
//	EY = (TDS x yield) / dose
//
// TDS is always a direct measurement, never derived. A zero or missing
// input makes the metric undefined.
func ExtractionYield(tdsPercent, yieldG, doseG float64) (float64, error) {
	if doseG <= 0 || tdsPercent <= 0 || yieldG <= 0 {
		return 0, ErrNotComputable
	}
	return (tdsPercent * yieldG) / doseG, nil
}
