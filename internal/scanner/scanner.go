// Package scanner orchestrates fire-detection scans: it fetches each
// configured FIRMS source in turn, merges the results, and runs the
// radius/confidence filter over the combined set.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/firewatch/internal/domain"
	"github.com/couchcryptid/firewatch/internal/observability"
)

// Fetcher retrieves raw detections for one FIRMS source.
type Fetcher interface {
	Fetch(ctx context.Context, source string, q domain.Query) (domain.FetchResult, error)
}

// Request describes one scan: the area query plus the filter thresholds.
type Request struct {
	Query         domain.Query
	MinConfidence float64
	Thresholds    domain.RiskThresholds
}

// Validate rejects a request before any fetch is attempted.
func (r Request) Validate() error {
	if err := r.Query.Validate(); err != nil {
		return err
	}
	params := domain.FilterParams{
		Reference:     r.Query.Center,
		RadiusKm:      r.Query.RadiusKm,
		MinConfidence: r.MinConfidence,
		Thresholds:    r.Thresholds,
	}
	return params.Validate()
}

// Report is the outcome of one scan. Detections hold only records that
// passed every threshold, in fetch order; Malformed counts rows skipped
// for missing or invalid geolocation across all sources.
type Report struct {
	Query       domain.Query
	Sources     []string
	Detections  []domain.AnnotatedDetection
	Fetched     int
	Malformed   int
	GeneratedAt time.Time
}

// Scanner runs fetch-merge-filter scans over a fixed set of FIRMS sources.
type Scanner struct {
	fetcher Fetcher
	sources []string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Scanner. Sources are fetched in the order given; their
// results are concatenated in that same order before filtering.
func New(fetcher Fetcher, sources []string, logger *slog.Logger, metrics *observability.Metrics) *Scanner {
	return &Scanner{
		fetcher: fetcher,
		sources: sources,
		logger:  logger,
		metrics: metrics,
	}
}

// Scan validates the request, fetches every configured source
// sequentially, and filters the merged detections. Any fetch failure
// aborts the scan immediately; there is no retry and no partial report.
func (s *Scanner) Scan(ctx context.Context, req Request) (Report, error) {
	if err := req.Validate(); err != nil {
		return Report{}, fmt.Errorf("invalid scan request: %w", err)
	}

	start := time.Now()
	report := Report{
		Query:   req.Query,
		Sources: s.sources,
	}

	var merged []domain.FireDetection
	for _, source := range s.sources {
		result, err := s.fetcher.Fetch(ctx, source, req.Query)
		if err != nil {
			return Report{}, fmt.Errorf("scan aborted: %w", err)
		}
		s.logger.Debug("source fetched",
			"source", source,
			"detections", len(result.Detections),
			"malformed", result.Malformed,
		)
		merged = append(merged, result.Detections...)
		report.Malformed += result.Malformed
	}
	report.Fetched = len(merged)

	filtered := domain.Filter(merged, domain.FilterParams{
		Reference:     req.Query.Center,
		RadiusKm:      req.Query.RadiusKm,
		MinConfidence: req.MinConfidence,
		Thresholds:    req.Thresholds,
	})
	report.Detections = filtered.Detections
	report.Malformed += filtered.Malformed
	report.GeneratedAt = clock.Now()

	s.metrics.ScansTotal.Inc()
	s.metrics.ScanDuration.Observe(time.Since(start).Seconds())
	s.metrics.RecordsReported.Add(float64(len(report.Detections)))
	if filtered.Malformed > 0 {
		s.metrics.MalformedRecords.Add(float64(filtered.Malformed))
	}

	s.logger.Info("scan complete",
		"fetched", report.Fetched,
		"reported", len(report.Detections),
		"malformed", report.Malformed,
		"radius_km", req.Query.RadiusKm,
		"days", req.Query.Days,
	)
	return report, nil
}
