// Package sampling reduces the quality-filtered table to a bounded working
// set using seeded deterministic selection.
//
// Semantics: fixed-count. The sample always has exactly min(cap, n) rows.
// Each row is ranked by its rowhash key and the lowest-ranked cap rows are
// kept, output ordered by rank. Selection therefore depends only on row
// content and the seed, never on the order rows appear in the source file,
// and repeated runs produce byte-identical samples.
package sampling

import (
	"sort"

	"taxi-trip-lab/internal/domain"
	"taxi-trip-lab/internal/rowhash"
)

// Defaults for the session pipeline.
const (
	DefaultCap  = 100000
	DefaultSeed = 42
)

// Sample returns a deterministic sample of at most cap rows. Tables at or
// under the cap are returned unchanged.
func Sample(t *domain.TripTable, capRows int, seed uint64) *domain.TripTable {
	if t.Len() <= capRows {
		return t
	}

	type rankedRow struct {
		key uint64
		idx int
	}

	ranked := make([]rankedRow, t.Len())
	for i := 0; i < t.Len(); i++ {
		ranked[i] = rankedRow{
			key: rowhash.Key(seed,
				t.PickupTime[i].UnixNano(),
				t.DropoffTime[i].UnixNano(),
				t.PULocationID[i],
				t.FareAmount[i],
				t.TripDistance[i]),
			idx: i,
		}
	}

	// Key collisions are broken by row content, not position, so the
	// outcome stays independent of source order.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].key != ranked[j].key {
			return ranked[i].key < ranked[j].key
		}
		return lessByContent(t, ranked[i].idx, ranked[j].idx)
	})

	keep := make([]int, capRows)
	for i := 0; i < capRows; i++ {
		keep[i] = ranked[i].idx
	}
	return t.Select(keep)
}

func lessByContent(t *domain.TripTable, i, j int) bool {
	if !t.PickupTime[i].Equal(t.PickupTime[j]) {
		return t.PickupTime[i].Before(t.PickupTime[j])
	}
	if !t.DropoffTime[i].Equal(t.DropoffTime[j]) {
		return t.DropoffTime[i].Before(t.DropoffTime[j])
	}
	if t.PULocationID[i] != t.PULocationID[j] {
		return t.PULocationID[i] < t.PULocationID[j]
	}
	if t.FareAmount[i] != t.FareAmount[j] {
		return t.FareAmount[i] < t.FareAmount[j]
	}
	return t.TripDistance[i] < t.TripDistance[j]
}
