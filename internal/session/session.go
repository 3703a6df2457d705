// Package session runs the preparation pipeline once and owns its result
// for the lifetime of a dashboard session: load -> derive -> quality
// filter -> sample. The resulting table and zone lookup are immutable;
// interactive filters and aggregates are computed from them on demand.
package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"taxi-trip-lab/internal/domain"
	"taxi-trip-lab/internal/ingestion"
	"taxi-trip-lab/internal/normalization"
	"taxi-trip-lab/internal/observability"
	"taxi-trip-lab/internal/quality"
	"taxi-trip-lab/internal/sampling"
	"taxi-trip-lab/internal/view"
)

// Options configures a session load.
type Options struct {
	// Trip sources, tried in order.
	Trips []ingestion.TripSource

	// Zone sources, tried in order.
	Zones []ingestion.ZoneSource

	// SampleCap is the working-set row cap. 0 means sampling.DefaultCap.
	SampleCap int

	// Seed drives the deterministic sampler. 0 means sampling.DefaultSeed.
	Seed uint64

	// Metrics is optional pipeline observability.
	Metrics *observability.Metrics
}

// Session is the session-scoped handle over the prepared dataset.
type Session struct {
	table    *domain.TripTable
	zones    domain.ZoneLookup
	payments []int64
	dateFrom time.Time
	dateTo   time.Time
	metrics  *observability.Metrics
}

// Load runs the full preparation pipeline. A failure at any stage aborts
// the session; no aggregates are ever computed over partial data.
func Load(ctx context.Context, opts Options) (*Session, error) {
	capRows := opts.SampleCap
	if capRows <= 0 {
		capRows = sampling.DefaultCap
	}
	seed := opts.Seed
	if seed == 0 {
		seed = sampling.DefaultSeed
	}

	start := time.Now()
	raw, err := ingestion.LoadTrips(ctx, opts.Trips...)
	if err != nil {
		if opts.Metrics != nil {
			opts.Metrics.LoadFailures.Inc()
		}
		return nil, fmt.Errorf("loading trips: %w", err)
	}
	zones, err := ingestion.LoadZones(ctx, opts.Zones...)
	if err != nil {
		if opts.Metrics != nil {
			opts.Metrics.LoadFailures.Inc()
		}
		return nil, fmt.Errorf("loading zones: %w", err)
	}
	opts.Metrics.ObserveStage(observability.StageLoad, raw.Len(), start)

	start = time.Now()
	derived := normalization.DeriveFeatures(raw)
	opts.Metrics.ObserveStage(observability.StageDerive, derived.Len(), start)

	start = time.Now()
	clean := quality.Filter(derived)
	opts.Metrics.ObserveStage(observability.StageQuality, clean.Len(), start)

	start = time.Now()
	sampled := sampling.Sample(clean, capRows, seed)
	opts.Metrics.ObserveStage(observability.StageSample, sampled.Len(), start)

	s := &Session{
		table:   sampled,
		zones:   zones,
		metrics: opts.Metrics,
	}
	s.indexObserved()

	if opts.Metrics != nil {
		opts.Metrics.SessionLoads.Inc()
	}
	return s, nil
}

// indexObserved records the observed payment codes and pickup date range,
// used by DefaultPredicate.
func (s *Session) indexObserved() {
	seen := make(map[int64]struct{})
	for _, code := range s.table.PaymentType {
		seen[code] = struct{}{}
	}
	s.payments = make([]int64, 0, len(seen))
	for code := range seen {
		s.payments = append(s.payments, code)
	}
	sort.Slice(s.payments, func(i, j int) bool { return s.payments[i] < s.payments[j] })

	for i, pickup := range s.table.PickupTime {
		if i == 0 || pickup.Before(s.dateFrom) {
			s.dateFrom = pickup
		}
		if i == 0 || pickup.After(s.dateTo) {
			s.dateTo = pickup
		}
	}
}

// Table returns the prepared (derived, filtered, sampled) trip table.
func (s *Session) Table() *domain.TripTable {
	return s.table
}

// Zones returns the zone lookup.
func (s *Session) Zones() domain.ZoneLookup {
	return s.zones
}

// ObservedPayments returns the sorted unique payment codes in the table.
func (s *Session) ObservedPayments() []int64 {
	out := make([]int64, len(s.payments))
	copy(out, s.payments)
	return out
}

// DefaultPredicate is the "everything" view: the full observed date range,
// hours 0-23 and every observed payment type.
func (s *Session) DefaultPredicate() domain.FilterPredicate {
	return domain.FilterPredicate{
		DateFrom: domain.DateOf(s.dateFrom),
		DateTo:   domain.DateOf(s.dateTo),
		HourFrom: 0,
		HourTo:   23,
		Payments: s.ObservedPayments(),
	}
}

// Filter evaluates the interactive predicate against the prepared table.
func (s *Session) Filter(pred domain.FilterPredicate) *domain.TripTable {
	s.metrics.IncFilter()
	return view.Filter(s.table, pred)
}

// Metrics computes the scalar metric row over the filtered view.
func (s *Session) Metrics(pred domain.FilterPredicate) domain.Metrics {
	return view.ComputeMetrics(s.Filter(pred))
}
