package view

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"taxi-trip-lab/internal/domain"
)

// ComputeMetrics calculates the scalar summary row over a filtered view.
// An empty view yields all zeros so the caller can render a "no data"
// state instead of failing on NaN means.
func ComputeMetrics(t *domain.TripTable) domain.Metrics {
	if t.Len() == 0 {
		return domain.Metrics{}
	}

	return domain.Metrics{
		TotalTrips:   t.Len(),
		AvgFare:      stat.Mean(t.FareAmount, nil),
		TotalRevenue: floats.Sum(t.TotalAmount),
		AvgDistance:  stat.Mean(t.TripDistance, nil),
		AvgDuration:  stat.Mean(t.DurationMin, nil),
	}
}
