// Package view applies the user-selected interactive filter to the sampled
// table and computes the scalar metric row over the result. Both are pure:
// every predicate change recomputes from the full table.
package view

import "taxi-trip-lab/internal/domain"

// Filter returns the subset of t matching the predicate. The three
// conditions are conjunctive; an empty payment set yields an empty view
// regardless of the ranges. Requires derived columns.
func Filter(t *domain.TripTable, pred domain.FilterPredicate) *domain.TripTable {
	payments := pred.PaymentSet()
	if len(payments) == 0 {
		return t.Select(nil)
	}

	keep := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if pred.Matches(t.PickupTime[i], t.PickupHour[i], t.PaymentType[i], payments) {
			keep = append(keep, i)
		}
	}
	return t.Select(keep)
}
