// Package domain defines the core data types shared by the pipeline:
// the columnar trip table, the zone lookup and the aggregate view results.
package domain

import "time"

// TripRecord is a single taxi trip as seen by row-oriented consumers
// (tests, serialization). The pipeline itself operates on TripTable columns.
type TripRecord struct {
	PickupTime   time.Time
	DropoffTime  time.Time
	PULocationID int64
	FareAmount   float64
	TipAmount    float64
	TotalAmount  float64
	TripDistance float64
	PaymentType  int64

	// Derived columns, populated by normalization.
	PickupHour    int     // 0-23
	PickupWeekday int     // ISO: 1=Monday .. 7=Sunday
	DurationMin   float64 // dropoff - pickup, minutes
	TipPct        float64 // tip/fare*100, 0 when fare <= 0
}

// TripTable is the column-oriented trip collection. All slices have equal
// length. Derived columns are nil until normalization has run. Once a table
// has been produced by a pipeline stage it is treated as immutable; stages
// build new tables via Select instead of mutating in place.
type TripTable struct {
	PickupTime   []time.Time
	DropoffTime  []time.Time
	PULocationID []int64
	FareAmount   []float64
	TipAmount    []float64
	TotalAmount  []float64
	TripDistance []float64
	PaymentType  []int64

	PickupHour    []int
	PickupWeekday []int
	DurationMin   []float64
	TipPct        []float64
}

// Len returns the number of rows.
func (t *TripTable) Len() int {
	return len(t.PickupTime)
}

// Row materializes row i as a TripRecord. Derived fields are zero
// when the derived columns have not been computed yet.
func (t *TripTable) Row(i int) TripRecord {
	r := TripRecord{
		PickupTime:   t.PickupTime[i],
		DropoffTime:  t.DropoffTime[i],
		PULocationID: t.PULocationID[i],
		FareAmount:   t.FareAmount[i],
		TipAmount:    t.TipAmount[i],
		TotalAmount:  t.TotalAmount[i],
		TripDistance: t.TripDistance[i],
		PaymentType:  t.PaymentType[i],
	}
	if t.PickupHour != nil {
		r.PickupHour = t.PickupHour[i]
		r.PickupWeekday = t.PickupWeekday[i]
		r.DurationMin = t.DurationMin[i]
		r.TipPct = t.TipPct[i]
	}
	return r
}

// Select gathers the rows at the given indices into a new table, in index
// order. Derived columns are carried over when present. Indices must be
// valid row positions; duplicates are allowed.
func (t *TripTable) Select(indices []int) *TripTable {
	out := &TripTable{
		PickupTime:   make([]time.Time, len(indices)),
		DropoffTime:  make([]time.Time, len(indices)),
		PULocationID: make([]int64, len(indices)),
		FareAmount:   make([]float64, len(indices)),
		TipAmount:    make([]float64, len(indices)),
		TotalAmount:  make([]float64, len(indices)),
		TripDistance: make([]float64, len(indices)),
		PaymentType:  make([]int64, len(indices)),
	}
	if t.PickupHour != nil {
		out.PickupHour = make([]int, len(indices))
		out.PickupWeekday = make([]int, len(indices))
		out.DurationMin = make([]float64, len(indices))
		out.TipPct = make([]float64, len(indices))
	}
	for j, i := range indices {
		out.PickupTime[j] = t.PickupTime[i]
		out.DropoffTime[j] = t.DropoffTime[i]
		out.PULocationID[j] = t.PULocationID[i]
		out.FareAmount[j] = t.FareAmount[i]
		out.TipAmount[j] = t.TipAmount[i]
		out.TotalAmount[j] = t.TotalAmount[i]
		out.TripDistance[j] = t.TripDistance[i]
		out.PaymentType[j] = t.PaymentType[i]
		if t.PickupHour != nil {
			out.PickupHour[j] = t.PickupHour[i]
			out.PickupWeekday[j] = t.PickupWeekday[i]
			out.DurationMin[j] = t.DurationMin[i]
			out.TipPct[j] = t.TipPct[i]
		}
	}
	return out
}

// Append adds a raw row to the table. Intended for loaders and test
// fixtures; derived columns are left untouched.
func (t *TripTable) Append(r TripRecord) {
	t.PickupTime = append(t.PickupTime, r.PickupTime)
	t.DropoffTime = append(t.DropoffTime, r.DropoffTime)
	t.PULocationID = append(t.PULocationID, r.PULocationID)
	t.FareAmount = append(t.FareAmount, r.FareAmount)
	t.TipAmount = append(t.TipAmount, r.TipAmount)
	t.TotalAmount = append(t.TotalAmount, r.TotalAmount)
	t.TripDistance = append(t.TripDistance, r.TripDistance)
	t.PaymentType = append(t.PaymentType, r.PaymentType)
}
