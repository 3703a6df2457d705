// Package normalization computes the derived trip columns from the raw
// ones in a single column-wise pass.
package normalization

import (
	"time"

	"taxi-trip-lab/internal/domain"
)

// DeriveFeatures fills the derived columns of a raw table and returns the
// same table. It is a pure transformation of the raw columns.
//
// Formulas:
//   - pickup_hour     = hour of pickup timestamp (0-23)
//   - pickup_weekday  = ISO weekday of pickup (1=Monday .. 7=Sunday)
//   - duration_min    = (dropoff - pickup) in minutes
//   - tip_pct         = tip/fare * 100, defined as 0 when fare <= 0 so
//     degenerate fares never push infinities into aggregates
func DeriveFeatures(t *domain.TripTable) *domain.TripTable {
	n := t.Len()
	t.PickupHour = make([]int, n)
	t.PickupWeekday = make([]int, n)
	t.DurationMin = make([]float64, n)
	t.TipPct = make([]float64, n)

	for i, pickup := range t.PickupTime {
		t.PickupHour[i] = pickup.Hour()
		t.PickupWeekday[i] = isoWeekday(pickup)
	}
	for i, dropoff := range t.DropoffTime {
		t.DurationMin[i] = dropoff.Sub(t.PickupTime[i]).Minutes()
	}
	for i, fare := range t.FareAmount {
		if fare > 0 {
			t.TipPct[i] = t.TipAmount[i] / fare * 100
		}
	}
	return t
}

// isoWeekday maps time.Weekday (Sunday=0) to ISO ordinals (Monday=1).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
