package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the
// fire-detection scan path.
type Metrics struct {
	ScansTotal       prometheus.Counter
	ScanDuration     prometheus.Histogram
	RecordsFetched   prometheus.Counter
	RecordsReported  prometheus.Counter
	MalformedRecords prometheus.Counter

	// FIRMS fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: source, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: source
}

// NewMetrics creates and registers all scan metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "scans_total",
			Help:      "Total area scans executed.",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "firewatch",
			Name:      "scan_duration_seconds",
			Help:      "Duration of a complete fetch-and-filter scan.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		RecordsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "records_fetched_total",
			Help:      "Total raw detection records fetched from FIRMS.",
		}),
		RecordsReported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "records_reported_total",
			Help:      "Total detections that passed radius and confidence filters.",
		}),
		MalformedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "malformed_records_total",
			Help:      "Total records skipped for missing or invalid geolocation.",
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "fetch_requests_total",
			Help:      "FIRMS area API requests by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "firewatch",
			Name:      "fetch_duration_seconds",
			Help:      "FIRMS area API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
	}

	prometheus.MustRegister(
		m.ScansTotal,
		m.ScanDuration,
		m.RecordsFetched,
		m.RecordsReported,
		m.MalformedRecords,
		m.FetchRequests,
		m.FetchDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ScansTotal:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "scans_total"}),
		ScanDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "firewatch", Name: "scan_duration_seconds"}),
		RecordsFetched:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "records_fetched_total"}),
		RecordsReported:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "records_reported_total"}),
		MalformedRecords: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "malformed_records_total"}),
		FetchRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "firewatch", Name: "fetch_requests_total"}, []string{"source", "outcome"}),
		FetchDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "firewatch", Name: "fetch_duration_seconds"}, []string{"source"}),
	}
}
