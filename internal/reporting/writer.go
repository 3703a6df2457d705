package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"taxi-trip-lab/internal/aggregate"
	"taxi-trip-lab/internal/domain"
	"taxi-trip-lab/internal/view"
)

// Views bundles one computed set of aggregate outputs for writing.
type Views struct {
	TopZones  []domain.ZoneCount
	FareHours []domain.HourFare
	Distances domain.Histogram
	Payments  []domain.PaymentCount
	Demand    domain.DemandMatrix
	Metrics   domain.Metrics
}

// ComputeViews runs all five aggregates over the prepared table and the
// scalar metrics over the filtered view.
func ComputeViews(table, filtered *domain.TripTable, zones domain.ZoneLookup) Views {
	return Views{
		TopZones:  aggregate.TopPickupZones(table, zones),
		FareHours: aggregate.AvgFareByHour(table),
		Distances: aggregate.DistanceHistogram(table),
		Payments:  aggregate.PaymentBreakdown(table),
		Demand:    aggregate.DemandByDayHour(table),
		Metrics:   view.ComputeMetrics(filtered),
	}
}

// WriteAll writes each view as a CSV file under dir, creating it if needed.
func WriteAll(dir string, v Views) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	files := map[string]string{
		"top_pickup_zones.csv":   RenderTopZonesCSV(v.TopZones),
		"avg_fare_by_hour.csv":   RenderFareByHourCSV(v.FareHours),
		"distance_histogram.csv": RenderHistogramCSV(v.Distances),
		"payment_breakdown.csv":  RenderPaymentsCSV(v.Payments),
		"demand_by_day_hour.csv": RenderDemandCSV(v.Demand),
		"metrics.csv":            RenderMetricsCSV(v.Metrics),
	}

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
