package domain

import (
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, 5, 17, 23, 59, 58, 123, time.UTC)
	want := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	if got := DateOf(ts); !got.Equal(want) {
		t.Errorf("DateOf(%v) = %v, want %v", ts, got, want)
	}
}

func TestPredicate_Matches(t *testing.T) {
	pred := FilterPredicate{
		DateFrom: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		HourFrom: 6,
		HourTo:   20,
		Payments: []int64{1, 2},
	}
	payments := pred.PaymentSet()

	cases := []struct {
		name    string
		pickup  time.Time
		hour    int
		payment int64
		want    bool
	}{
		{"inside all", time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), 9, 1, true},
		{"first day inclusive", time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC), 6, 2, true},
		{"last day inclusive", time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC), 20, 1, true},
		{"before range", time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC), 9, 1, false},
		{"after range", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 9, 1, false},
		{"hour too early", time.Date(2024, 5, 10, 5, 0, 0, 0, time.UTC), 5, 1, false},
		{"hour too late", time.Date(2024, 5, 10, 21, 0, 0, 0, time.UTC), 21, 1, false},
		{"unknown payment", time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), 9, 4, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pred.Matches(tc.pickup, tc.hour, tc.payment, payments); got != tc.want {
				t.Errorf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPredicate_EmptyPaymentSet(t *testing.T) {
	pred := FilterPredicate{
		DateFrom: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		HourTo:   23,
	}
	payments := pred.PaymentSet()
	if pred.Matches(time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), 9, 1, payments) {
		t.Error("empty payment set must match nothing")
	}
}
