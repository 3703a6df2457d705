// Package observability provides Prometheus metrics for the pipeline and
// the serving layer.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stage labels.
const (
	StageLoad    = "load"
	StageDerive  = "derive"
	StageQuality = "quality"
	StageSample  = "sample"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is valid and records nothing, so library code can treat it as optional.
type Metrics struct {
	// Pipeline metrics
	StageDuration *prometheus.HistogramVec
	StageRows     *prometheus.GaugeVec
	SessionLoads  prometheus.Counter
	LoadFailures  prometheus.Counter

	// Serving metrics
	FilterRequests    prometheus.Counter
	AggregateRequests *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all metrics registered on the
// default registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "taxi_trip_lab"
	}

	return &Metrics{
		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		StageRows: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_rows",
			Help:      "Row count after each pipeline stage",
		}, []string{"stage"}),
		SessionLoads: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_loads_total",
			Help:      "Number of successful session loads",
		}),
		LoadFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_load_failures_total",
			Help:      "Number of failed session loads",
		}),
		FilterRequests: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_requests_total",
			Help:      "Number of interactive filter evaluations",
		}),
		AggregateRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregate_requests_total",
			Help:      "Number of aggregate view computations",
		}, []string{"view"}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by handler and status",
		}, []string{"handler", "status"}),
	}
}

// ObserveStage records the duration and resulting row count of a pipeline
// stage. Safe on a nil receiver.
func (m *Metrics) ObserveStage(stage string, rows int, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	m.StageRows.WithLabelValues(stage).Set(float64(rows))
}

// IncAggregate counts one aggregate view computation. Safe on a nil receiver.
func (m *Metrics) IncAggregate(view string) {
	if m == nil {
		return
	}
	m.AggregateRequests.WithLabelValues(view).Inc()
}

// IncFilter counts one filter evaluation. Safe on a nil receiver.
func (m *Metrics) IncFilter() {
	if m == nil {
		return
	}
	m.FilterRequests.Inc()
}
