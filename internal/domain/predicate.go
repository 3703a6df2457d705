package domain

import "time"

// FilterPredicate is the user-selected interactive filter: an inclusive
// pickup date range, an inclusive pickup hour range and a payment-type set.
// All three conditions are conjunctive. An empty payment set matches nothing.
type FilterPredicate struct {
	DateFrom time.Time
	DateTo   time.Time
	HourFrom int
	HourTo   int
	Payments []int64
}

// PaymentSet returns the payment codes as a set for membership tests.
func (p FilterPredicate) PaymentSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(p.Payments))
	for _, code := range p.Payments {
		set[code] = struct{}{}
	}
	return set
}

// Matches reports whether a pickup time and payment code satisfy the
// predicate. The date comparison is at day granularity.
func (p FilterPredicate) Matches(pickup time.Time, hour int, payment int64, payments map[int64]struct{}) bool {
	if _, ok := payments[payment]; !ok {
		return false
	}
	if hour < p.HourFrom || hour > p.HourTo {
		return false
	}
	day := DateOf(pickup)
	if day.Before(DateOf(p.DateFrom)) || day.After(DateOf(p.DateTo)) {
		return false
	}
	return true
}

// DateOf truncates a timestamp to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
