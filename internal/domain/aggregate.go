package domain

// ZoneCount is one row of the top pickup zones view.
type ZoneCount struct {
	LocationID int64  `json:"location_id"`
	Zone       string `json:"zone"`
	TripCount  int    `json:"trip_count"`
}

// HourFare is one row of the average-fare-by-hour view.
type HourFare struct {
	Hour    int     `json:"hour"`
	AvgFare float64 `json:"avg_fare"`
}

// Histogram is a fixed-bin histogram over a numeric column.
// Edges has len(Counts)+1 entries; bin i covers [Edges[i], Edges[i+1]),
// with the last bin closed on the right.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// PaymentCount is one row of the payment-type breakdown view.
type PaymentCount struct {
	PaymentType int64 `json:"payment_type"`
	TripCount   int   `json:"trip_count"`
}

// DemandMatrix is the dense weekday-by-hour trip count pivot.
// Rows are ISO weekdays Monday..Sunday, columns are hours 0..23.
// Cells with no trips hold 0.
type DemandMatrix [7][24]int

// Total returns the sum of all cells.
func (m *DemandMatrix) Total() int {
	total := 0
	for d := range m {
		for h := range m[d] {
			total += m[d][h]
		}
	}
	return total
}

// Metrics is the scalar summary row computed over the filtered view.
// All fields are 0 for an empty view.
type Metrics struct {
	TotalTrips   int     `json:"total_trips"`
	AvgFare      float64 `json:"avg_fare"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgDistance  float64 `json:"avg_distance"`
	AvgDuration  float64 `json:"avg_duration"`
}
