// Package quality drops trips outside plausible physical and economic
// bounds. It runs after feature derivation (the duration bound needs the
// derived column) and before sampling, so the sample only ever contains
// plausible rows.
package quality

import "taxi-trip-lab/internal/domain"

// Bounds kept in sync with the dataset's cleaning conventions.
const (
	MaxFare        = 200.0
	MaxDistance    = 50.0
	MinDurationMin = 1.0
	MaxDurationMin = 180.0
)

// Plausible reports whether a single row satisfies all three bounds:
// 0 < fare < 200, 0 < distance < 50, 1 < duration_min < 180.
// The bounds are stated positively so NaN values, which fail every
// comparison, never pass.
func Plausible(fare, distance, durationMin float64) bool {
	return fare > 0 && fare < MaxFare &&
		distance > 0 && distance < MaxDistance &&
		durationMin > MinDurationMin && durationMin < MaxDurationMin
}

// Filter returns a new table with only the rows that satisfy all bounds.
// A row either passes every bound or is dropped; there is no partial
// application. Requires derived columns.
func Filter(t *domain.TripTable) *domain.TripTable {
	keep := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if Plausible(t.FareAmount[i], t.TripDistance[i], t.DurationMin[i]) {
			keep = append(keep, i)
		}
	}
	return t.Select(keep)
}
