// Package reporting renders aggregate views as CSV for batch outputs.
package reporting

import (
	"fmt"
	"strings"

	"taxi-trip-lab/internal/domain"
)

// RenderTopZonesCSV renders the top pickup zones view.
func RenderTopZonesCSV(zones []domain.ZoneCount) string {
	var sb strings.Builder
	sb.WriteString("location_id,zone,trip_count\n")
	for _, z := range zones {
		sb.WriteString(fmt.Sprintf("%d,%s,%d\n", z.LocationID, csvEscape(z.Zone), z.TripCount))
	}
	return sb.String()
}

// RenderFareByHourCSV renders the average fare by hour view.
func RenderFareByHourCSV(rows []domain.HourFare) string {
	var sb strings.Builder
	sb.WriteString("hour,avg_fare\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%d,%.6f\n", r.Hour, r.AvgFare))
	}
	return sb.String()
}

// RenderHistogramCSV renders a histogram as one row per bin.
func RenderHistogramCSV(h domain.Histogram) string {
	var sb strings.Builder
	sb.WriteString("bin_low,bin_high,count\n")
	for i, count := range h.Counts {
		sb.WriteString(fmt.Sprintf("%.6f,%.6f,%d\n", h.Edges[i], h.Edges[i+1], count))
	}
	return sb.String()
}

// RenderPaymentsCSV renders the payment-type breakdown view.
func RenderPaymentsCSV(rows []domain.PaymentCount) string {
	var sb strings.Builder
	sb.WriteString("payment_type,trip_count\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%d,%d\n", r.PaymentType, r.TripCount))
	}
	return sb.String()
}

// weekday labels in matrix row order.
var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderDemandCSV renders the weekday-by-hour demand matrix, one row per
// weekday with 24 hour columns.
func RenderDemandCSV(m domain.DemandMatrix) string {
	var sb strings.Builder
	sb.WriteString("weekday")
	for h := 0; h < 24; h++ {
		sb.WriteString(fmt.Sprintf(",h%02d", h))
	}
	sb.WriteString("\n")

	for d, label := range weekdays {
		sb.WriteString(label)
		for h := 0; h < 24; h++ {
			sb.WriteString(fmt.Sprintf(",%d", m[d][h]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderMetricsCSV renders the scalar metric row.
func RenderMetricsCSV(m domain.Metrics) string {
	var sb strings.Builder
	sb.WriteString("total_trips,avg_fare,total_revenue,avg_distance,avg_duration\n")
	sb.WriteString(fmt.Sprintf("%d,%.2f,%.2f,%.2f,%.2f\n",
		m.TotalTrips, m.AvgFare, m.TotalRevenue, m.AvgDistance, m.AvgDuration))
	return sb.String()
}

// csvEscape quotes a field containing separators or quotes.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
