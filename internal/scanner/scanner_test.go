package scanner_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/firewatch/internal/domain"
	"github.com/couchcryptid/firewatch/internal/observability"
	"github.com/couchcryptid/firewatch/internal/scanner"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockFetcher struct {
	results map[string]domain.FetchResult
	err     error
	calls   []string
}

func (m *mockFetcher) Fetch(_ context.Context, source string, _ domain.Query) (domain.FetchResult, error) {
	m.calls = append(m.calls, source)
	if m.err != nil {
		return domain.FetchResult{}, m.err
	}
	return m.results[source], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRequest() scanner.Request {
	return scanner.Request{
		Query: domain.Query{
			Center:   domain.Point{Lat: -23.55, Lon: -46.63},
			RadiusKm: 200,
			Days:     7,
		},
		MinConfidence: 40,
		Thresholds:    domain.DefaultRiskThresholds(),
	}
}

func makeDetection(source string, lat, lon, confidence, frp float64) domain.FireDetection {
	return domain.FireDetection{
		Satellite:  domain.SatelliteFromSource(source),
		Source:     source,
		Latitude:   lat,
		Longitude:  lon,
		Confidence: confidence,
		FRP:        frp,
	}
}

// --- tests ---

func TestScanner_Scan_MergesSourcesInOrder(t *testing.T) {
	fetcher := &mockFetcher{results: map[string]domain.FetchResult{
		"MODIS_NRT": {Detections: []domain.FireDetection{
			makeDetection("MODIS_NRT", -23.50, -46.60, 85, 75),
		}},
		"VIIRS_NOAA20_NRT": {Detections: []domain.FireDetection{
			makeDetection("VIIRS_NOAA20_NRT", -23.60, -46.70, 60, 5),
		}},
	}}

	s := scanner.New(fetcher, []string{"MODIS_NRT", "VIIRS_NOAA20_NRT"}, testLogger(), observability.NewMetricsForTesting())

	report, err := s.Scan(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"MODIS_NRT", "VIIRS_NOAA20_NRT"}, fetcher.calls)
	require.Len(t, report.Detections, 2)
	assert.Equal(t, 2, report.Fetched)
	// Concatenation order: MODIS first, then VIIRS.
	assert.Equal(t, domain.SatelliteMODIS, report.Detections[0].Satellite)
	assert.Equal(t, domain.SatelliteVIIRS, report.Detections[1].Satellite)
	assert.Equal(t, domain.RiskHigh, report.Detections[0].Risk)
	assert.Equal(t, domain.RiskLow, report.Detections[1].Risk)
}

func TestScanner_Scan_FetchErrorAborts(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("firms API error: status 503")}
	s := scanner.New(fetcher, []string{"MODIS_NRT", "VIIRS_NOAA20_NRT"}, testLogger(), observability.NewMetricsForTesting())

	_, err := s.Scan(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan aborted")
	// No retry, no second source attempted after the failure.
	assert.Equal(t, []string{"MODIS_NRT"}, fetcher.calls)
}

func TestScanner_Scan_InvalidRequestSkipsFetch(t *testing.T) {
	fetcher := &mockFetcher{}
	s := scanner.New(fetcher, []string{"MODIS_NRT"}, testLogger(), observability.NewMetricsForTesting())

	req := testRequest()
	req.Query.RadiusKm = -1

	_, err := s.Scan(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scan request")
	assert.Empty(t, fetcher.calls, "fetch must not run for invalid input")
}

func TestScanner_Scan_AggregatesMalformedCounts(t *testing.T) {
	fetcher := &mockFetcher{results: map[string]domain.FetchResult{
		"MODIS_NRT": {
			Detections: []domain.FireDetection{
				makeDetection("MODIS_NRT", -23.50, -46.60, 85, 75),
				makeDetection("MODIS_NRT", 400, -46.60, 85, 75), // bad lat, filter skip
			},
			Malformed: 3, // unparsable rows skipped at fetch time
		},
	}}
	s := scanner.New(fetcher, []string{"MODIS_NRT"}, testLogger(), observability.NewMetricsForTesting())

	report, err := s.Scan(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Len(t, report.Detections, 1)
	assert.Equal(t, 4, report.Malformed)
}

func TestScanner_Scan_EmptyFeeds(t *testing.T) {
	fetcher := &mockFetcher{results: map[string]domain.FetchResult{}}
	s := scanner.New(fetcher, []string{"MODIS_NRT", "VIIRS_NOAA20_NRT", "VIIRS_SUOMI_NPP_NRT"}, testLogger(), observability.NewMetricsForTesting())

	report, err := s.Scan(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Empty(t, report.Detections)
	assert.Zero(t, report.Fetched)
	assert.Zero(t, report.Malformed)
}

func TestScanner_Scan_ReportStampedFromClock(t *testing.T) {
	frozen := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	scanner.SetClock(clockwork.NewFakeClockAt(frozen))
	defer scanner.SetClock(nil)

	fetcher := &mockFetcher{results: map[string]domain.FetchResult{}}
	s := scanner.New(fetcher, []string{"MODIS_NRT"}, testLogger(), observability.NewMetricsForTesting())

	req := testRequest()
	report, err := s.Scan(context.Background(), req)
	require.NoError(t, err)

	want := scanner.Report{
		Query:       req.Query,
		Sources:     []string{"MODIS_NRT"},
		Detections:  []domain.AnnotatedDetection{},
		GeneratedAt: frozen,
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}
