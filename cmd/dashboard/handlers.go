package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taxi-trip-lab/internal/aggregate"
	"taxi-trip-lab/internal/domain"
	"taxi-trip-lab/internal/observability"
	"taxi-trip-lab/internal/session"
)

// maxFilterRows caps /api/filter responses; the presentation layer pages
// through larger views with the offset parameter.
const maxFilterRows = 10000

// api serves session data to the presentation layer.
type api struct {
	sess    *session.Session
	metrics *observability.Metrics
	logger  *log.Logger
}

func newAPI(sess *session.Session, metrics *observability.Metrics, logger *log.Logger) *api {
	return &api{sess: sess, metrics: metrics, logger: logger}
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, "health", http.StatusOK, map[string]any{
		"status": "ok",
		"rows":   a.sess.Table().Len(),
	})
}

// handleSummary returns what the presentation layer needs to build its
// filter controls: observed payment types, default predicate, row count.
func (a *api) handleSummary(w http.ResponseWriter, r *http.Request) {
	pred := a.sess.DefaultPredicate()
	a.writeJSON(w, "summary", http.StatusOK, map[string]any{
		"rows":          a.sess.Table().Len(),
		"date_from":     pred.DateFrom.Format("2006-01-02"),
		"date_to":       pred.DateTo.Format("2006-01-02"),
		"payment_types": pred.Payments,
	})
}

func (a *api) handleMetrics(w http.ResponseWriter, r *http.Request) {
	pred, err := a.parsePredicate(r)
	if err != nil {
		a.writeError(w, "metrics", err)
		return
	}
	a.writeJSON(w, "metrics", http.StatusOK, a.sess.Metrics(pred))
}

func (a *api) handleFilter(w http.ResponseWriter, r *http.Request) {
	pred, err := a.parsePredicate(r)
	if err != nil {
		a.writeError(w, "filter", err)
		return
	}

	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		offset, err = strconv.Atoi(s)
		if err != nil || offset < 0 {
			a.writeError(w, "filter", fmt.Errorf("invalid offset %q", s))
			return
		}
	}

	filtered := a.sess.Filter(pred)
	end := filtered.Len()
	if offset > end {
		offset = end
	}
	if end-offset > maxFilterRows {
		end = offset + maxFilterRows
	}

	rows := make([]domain.TripRecord, 0, end-offset)
	for i := offset; i < end; i++ {
		rows = append(rows, filtered.Row(i))
	}

	a.writeJSON(w, "filter", http.StatusOK, map[string]any{
		"total":  filtered.Len(),
		"offset": offset,
		"rows":   rows,
	})
}

func (a *api) handleTopZones(w http.ResponseWriter, r *http.Request) {
	a.metrics.IncAggregate("top_zones")
	a.writeJSON(w, "top_zones", http.StatusOK, aggregate.TopPickupZones(a.sess.Table(), a.sess.Zones()))
}

func (a *api) handleFareByHour(w http.ResponseWriter, r *http.Request) {
	a.metrics.IncAggregate("fare_by_hour")
	a.writeJSON(w, "fare_by_hour", http.StatusOK, aggregate.AvgFareByHour(a.sess.Table()))
}

func (a *api) handleDistanceHistogram(w http.ResponseWriter, r *http.Request) {
	a.metrics.IncAggregate("distance_histogram")
	a.writeJSON(w, "distance_histogram", http.StatusOK, aggregate.DistanceHistogram(a.sess.Table()))
}

func (a *api) handlePaymentBreakdown(w http.ResponseWriter, r *http.Request) {
	a.metrics.IncAggregate("payment_breakdown")
	a.writeJSON(w, "payment_breakdown", http.StatusOK, aggregate.PaymentBreakdown(a.sess.Table()))
}

func (a *api) handleDemandMatrix(w http.ResponseWriter, r *http.Request) {
	a.metrics.IncAggregate("demand_matrix")
	a.writeJSON(w, "demand_matrix", http.StatusOK, aggregate.DemandByDayHour(a.sess.Table()))
}

// parsePredicate builds a FilterPredicate from query parameters, falling
// back to the session defaults for anything omitted. Values are validated
// for type only.
func (a *api) parsePredicate(r *http.Request) (domain.FilterPredicate, error) {
	pred := a.sess.DefaultPredicate()
	q := r.URL.Query()

	if s := q.Get("date_from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return pred, fmt.Errorf("invalid date_from %q", s)
		}
		pred.DateFrom = t
	}
	if s := q.Get("date_to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return pred, fmt.Errorf("invalid date_to %q", s)
		}
		pred.DateTo = t
	}
	if s := q.Get("hour_from"); s != "" {
		h, err := strconv.Atoi(s)
		if err != nil {
			return pred, fmt.Errorf("invalid hour_from %q", s)
		}
		pred.HourFrom = h
	}
	if s := q.Get("hour_to"); s != "" {
		h, err := strconv.Atoi(s)
		if err != nil {
			return pred, fmt.Errorf("invalid hour_to %q", s)
		}
		pred.HourTo = h
	}
	if q.Has("payments") {
		pred.Payments = nil
		for _, part := range strings.Split(q.Get("payments"), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			code, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return pred, fmt.Errorf("invalid payment code %q", part)
			}
			pred.Payments = append(pred.Payments, code)
		}
	}
	return pred, nil
}

func (a *api) writeJSON(w http.ResponseWriter, handler string, status int, body any) {
	a.metrics.HTTPRequests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Printf("encoding %s response: %v", handler, err)
	}
}

func (a *api) writeError(w http.ResponseWriter, handler string, err error) {
	a.writeJSON(w, handler, http.StatusBadRequest, map[string]string{"error": err.Error()})
}
