// Package aggregate computes the five read-only views over the sampled
// trip table. Each function is pure and stateless: safe to call in any
// order or concurrently, and an empty input degrades to an empty result.
package aggregate

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"taxi-trip-lab/internal/domain"
)

// TopZoneCount is the row limit of the top pickup zones view.
const TopZoneCount = 10

// DistanceBins is the fixed bin count of the distance histogram.
const DistanceBins = 40

// TopPickupZones groups trips by pickup location, keeps the TopZoneCount
// busiest locations and attaches zone names from the lookup. Sorted by
// count descending; ties broken by location ID ascending. Locations absent
// from the lookup are dropped after the top-N cut, matching an inner join.
func TopPickupZones(t *domain.TripTable, zones domain.ZoneLookup) []domain.ZoneCount {
	counts := make(map[int64]int)
	for _, loc := range t.PULocationID {
		counts[loc]++
	}

	ranked := make([]domain.ZoneCount, 0, len(counts))
	for loc, n := range counts {
		ranked = append(ranked, domain.ZoneCount{LocationID: loc, TripCount: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TripCount != ranked[j].TripCount {
			return ranked[i].TripCount > ranked[j].TripCount
		}
		return ranked[i].LocationID < ranked[j].LocationID
	})

	if len(ranked) > TopZoneCount {
		ranked = ranked[:TopZoneCount]
	}

	result := make([]domain.ZoneCount, 0, len(ranked))
	for _, zc := range ranked {
		name, ok := zones.Name(zc.LocationID)
		if !ok {
			continue
		}
		zc.Zone = name
		result = append(result, zc)
	}
	return result
}

// AvgFareByHour groups trips by pickup hour and computes the mean fare per
// group, sorted ascending by hour. Hours with no trips are absent.
func AvgFareByHour(t *domain.TripTable) []domain.HourFare {
	fares := make(map[int][]float64)
	for i, hour := range t.PickupHour {
		fares[hour] = append(fares[hour], t.FareAmount[i])
	}

	result := make([]domain.HourFare, 0, len(fares))
	for hour, group := range fares {
		result = append(result, domain.HourFare{
			Hour:    hour,
			AvgFare: stat.Mean(group, nil),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Hour < result[j].Hour
	})
	return result
}

// DistanceHistogram bins trip distances into DistanceBins equal-width bins
// spanning the observed value range. Values on a bin edge count toward the
// higher bin, except the maximum which lands in the last bin.
func DistanceHistogram(t *domain.TripTable) domain.Histogram {
	return histogram(t.TripDistance, DistanceBins)
}

func histogram(values []float64, bins int) domain.Histogram {
	if len(values) == 0 {
		return domain.Histogram{}
	}

	min := floats.Min(values)
	max := floats.Max(values)

	edges := make([]float64, bins+1)
	floats.Span(edges, min, max)

	counts := make([]int, bins)
	if max == min {
		// Degenerate single-value range: everything in the first bin.
		counts[0] = len(values)
		return domain.Histogram{Edges: edges, Counts: counts}
	}

	width := (max - min) / float64(bins)
	for _, v := range values {
		bin := int((v - min) / width)
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin]++
	}
	return domain.Histogram{Edges: edges, Counts: counts}
}

// PaymentBreakdown counts trips per payment type, sorted ascending by code.
func PaymentBreakdown(t *domain.TripTable) []domain.PaymentCount {
	counts := make(map[int64]int)
	for _, code := range t.PaymentType {
		counts[code]++
	}

	result := make([]domain.PaymentCount, 0, len(counts))
	for code, n := range counts {
		result = append(result, domain.PaymentCount{PaymentType: code, TripCount: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PaymentType < result[j].PaymentType
	})
	return result
}

// DemandByDayHour pivots trip counts into the dense 7x24 weekday-by-hour
// matrix. Every cell is populated; cells with no trips stay 0, so the
// matrix total always equals the input row count. Requires derived columns.
func DemandByDayHour(t *domain.TripTable) domain.DemandMatrix {
	var m domain.DemandMatrix
	for i, weekday := range t.PickupWeekday {
		m[weekday-1][t.PickupHour[i]]++
	}
	return m
}
