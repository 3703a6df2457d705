package aggregate

import (
	"sort"
	"testing"
	"time"

	"taxi-trip-lab/internal/domain"
	"taxi-trip-lab/internal/normalization"
)

func tableOf(rows []domain.TripRecord) *domain.TripTable {
	table := &domain.TripTable{}
	for _, r := range rows {
		if r.DropoffTime.IsZero() {
			r.DropoffTime = r.PickupTime.Add(10 * time.Minute)
		}
		table.Append(r)
	}
	return normalization.DeriveFeatures(table)
}

func testZones() domain.ZoneLookup {
	zones := make(domain.ZoneLookup)
	for id := int64(1); id <= 20; id++ {
		zones[id] = domain.Zone{LocationID: id, Name: "Zone " + string(rune('A'+id-1)), Borough: "Manhattan"}
	}
	return zones
}

func TestTopPickupZones_SortedAndCapped(t *testing.T) {
	var rows []domain.TripRecord
	pickup := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	// Location i gets i trips, i = 1..15.
	for loc := int64(1); loc <= 15; loc++ {
		for n := int64(0); n < loc; n++ {
			rows = append(rows, domain.TripRecord{PickupTime: pickup, PULocationID: loc})
		}
	}

	result := TopPickupZones(tableOf(rows), testZones())

	if len(result) != TopZoneCount {
		t.Fatalf("expected %d rows, got %d", TopZoneCount, len(result))
	}
	if result[0].LocationID != 15 || result[0].TripCount != 15 {
		t.Errorf("expected location 15 first, got %+v", result[0])
	}
	for i := 1; i < len(result); i++ {
		if result[i].TripCount > result[i-1].TripCount {
			t.Errorf("counts not descending at %d", i)
		}
	}
	for _, zc := range result {
		if zc.Zone == "" {
			t.Errorf("location %d missing zone name", zc.LocationID)
		}
	}
}

func TestTopPickupZones_TieBreakByLocationID(t *testing.T) {
	pickup := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rows := []domain.TripRecord{
		{PickupTime: pickup, PULocationID: 7},
		{PickupTime: pickup, PULocationID: 3},
		{PickupTime: pickup, PULocationID: 5},
	}

	result := TopPickupZones(tableOf(rows), testZones())

	want := []int64{3, 5, 7}
	for i, zc := range result {
		if zc.LocationID != want[i] {
			t.Errorf("position %d: expected location %d, got %d", i, want[i], zc.LocationID)
		}
	}
}

func TestAvgFareByHour_SortedWithAbsentHoursOmitted(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.TripRecord{
		{PickupTime: day.Add(22 * time.Hour), FareAmount: 30},
		{PickupTime: day.Add(8 * time.Hour), FareAmount: 10},
		{PickupTime: day.Add(8 * time.Hour), FareAmount: 20},
	}

	result := AvgFareByHour(tableOf(rows))

	if len(result) != 2 {
		t.Fatalf("expected 2 hour groups, got %d", len(result))
	}
	if result[0].Hour != 8 || result[0].AvgFare != 15 {
		t.Errorf("expected hour 8 avg 15, got %+v", result[0])
	}
	if result[1].Hour != 22 || result[1].AvgFare != 30 {
		t.Errorf("expected hour 22 avg 30, got %+v", result[1])
	}
}

func TestDistanceHistogram_BinsAndTotal(t *testing.T) {
	pickup := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	var rows []domain.TripRecord
	for i := 0; i < 200; i++ {
		rows = append(rows, domain.TripRecord{
			PickupTime:   pickup,
			TripDistance: 0.5 + float64(i)*0.1,
		})
	}

	h := DistanceHistogram(tableOf(rows))

	if len(h.Counts) != DistanceBins {
		t.Fatalf("expected %d bins, got %d", DistanceBins, len(h.Counts))
	}
	if len(h.Edges) != DistanceBins+1 {
		t.Fatalf("expected %d edges, got %d", DistanceBins+1, len(h.Edges))
	}

	total := 0
	for _, c := range h.Counts {
		total += c
	}
	if total != 200 {
		t.Errorf("histogram total %d, want 200", total)
	}
	if h.Edges[0] != 0.5 {
		t.Errorf("expected first edge 0.5, got %f", h.Edges[0])
	}
}

func TestDistanceHistogram_SingleValueRange(t *testing.T) {
	pickup := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	var rows []domain.TripRecord
	for i := 0; i < 50; i++ {
		rows = append(rows, domain.TripRecord{PickupTime: pickup, TripDistance: 3.5})
	}

	h := DistanceHistogram(tableOf(rows))

	if len(h.Counts) != DistanceBins || len(h.Edges) != DistanceBins+1 {
		t.Fatalf("expected %d bins and %d edges, got %d and %d",
			DistanceBins, DistanceBins+1, len(h.Counts), len(h.Edges))
	}
	if h.Counts[0] != 50 {
		t.Errorf("expected all 50 rows in bin 0, got %d", h.Counts[0])
	}
	for i := 1; i < len(h.Counts); i++ {
		if h.Counts[i] != 0 {
			t.Errorf("bin %d expected 0, got %d", i, h.Counts[i])
		}
	}
	if h.Edges[0] != 3.5 || h.Edges[len(h.Edges)-1] != 3.5 {
		t.Errorf("expected collapsed edges at 3.5, got [%f, %f]",
			h.Edges[0], h.Edges[len(h.Edges)-1])
	}
}

func TestDistanceHistogram_Empty(t *testing.T) {
	h := DistanceHistogram(tableOf(nil))
	if len(h.Counts) != 0 || len(h.Edges) != 0 {
		t.Errorf("expected empty histogram, got %+v", h)
	}
}

func TestPaymentBreakdown_SortedAscending(t *testing.T) {
	pickup := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rows := []domain.TripRecord{
		{PickupTime: pickup, PaymentType: 1},
		{PickupTime: pickup, PaymentType: 1},
		{PickupTime: pickup, PaymentType: 2},
		{PickupTime: pickup, PaymentType: 3},
	}

	result := PaymentBreakdown(tableOf(rows))

	want := []domain.PaymentCount{
		{PaymentType: 1, TripCount: 2},
		{PaymentType: 2, TripCount: 1},
		{PaymentType: 3, TripCount: 1},
	}
	if len(result) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(result))
	}
	for i := range want {
		if result[i] != want[i] {
			t.Errorf("position %d: expected %+v, got %+v", i, want[i], result[i])
		}
	}
}

func TestDemandByDayHour_DenseMatrixSumsToRowCount(t *testing.T) {
	var rows []domain.TripRecord
	// Spread trips across the week: Jan 1-7 2024 covers Mon..Sun.
	for day := 1; day <= 7; day++ {
		for h := 0; h < 24; h += 5 {
			rows = append(rows, domain.TripRecord{
				PickupTime: time.Date(2024, 1, day, h, 0, 0, 0, time.UTC),
			})
		}
	}
	table := tableOf(rows)

	m := DemandByDayHour(table)

	if m.Total() != table.Len() {
		t.Errorf("matrix total %d, want %d", m.Total(), table.Len())
	}
	for d := range m {
		for h := range m[d] {
			if m[d][h] < 0 {
				t.Fatalf("negative cell at [%d][%d]", d, h)
			}
		}
	}

	// Monday 00:00 trips land in row 0, column 0.
	if m[0][0] != 1 {
		t.Errorf("expected 1 trip Monday midnight, got %d", m[0][0])
	}
}

func TestAggregates_AreOrderIndependent(t *testing.T) {
	pickup := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rows := []domain.TripRecord{
		{PickupTime: pickup, PULocationID: 2, PaymentType: 2, FareAmount: 10},
		{PickupTime: pickup.Add(time.Hour), PULocationID: 1, PaymentType: 1, FareAmount: 20},
		{PickupTime: pickup, PULocationID: 2, PaymentType: 1, FareAmount: 30},
	}
	reversed := make([]domain.TripRecord, len(rows))
	for i, r := range rows {
		reversed[len(rows)-1-i] = r
	}

	a := PaymentBreakdown(tableOf(rows))
	b := PaymentBreakdown(tableOf(reversed))
	if !sort.SliceIsSorted(a, func(i, j int) bool { return a[i].PaymentType < a[j].PaymentType }) {
		t.Error("breakdown not sorted")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("breakdown differs under reordering at %d", i)
		}
	}
}
