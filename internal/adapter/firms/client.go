// Package firms fetches active-fire detections from the NASA FIRMS area API.
package firms

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/couchcryptid/firewatch/internal/domain"
	"github.com/couchcryptid/firewatch/internal/observability"
)

// DefaultBaseURL is the production FIRMS endpoint. Overridable for the
// mock server and tests.
const DefaultBaseURL = "https://firms.modaps.eosdis.nasa.gov"

// Client fetches detection CSVs from the FIRMS area API.
type Client struct {
	mapKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a FIRMS client. The map key is the caller's FIRMS API
// key; baseURL falls back to [DefaultBaseURL] when empty.
func NewClient(mapKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		mapKey: mapKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch retrieves all detections for one FIRMS source within the query's
// bounding box and day range. A non-success response or an unreadable body
// is an error; individual rows with missing geolocation are skipped and
// counted in the result instead.
func (c *Client) Fetch(ctx context.Context, source string, q domain.Query) (domain.FetchResult, error) {
	bbox := boundingBox(q.Center, q.RadiusKm)
	fullURL := fmt.Sprintf("%s/api/area/csv/%s/%s/%s/%d", c.baseURL, c.mapKey, source, bbox, q.Days)

	start := time.Now()
	result, err := c.doRequest(ctx, fullURL, source)
	c.metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(source, "error").Inc()
		return domain.FetchResult{}, err
	}

	c.metrics.FetchRequests.WithLabelValues(source, "success").Inc()
	c.metrics.RecordsFetched.Add(float64(len(result.Detections)))
	c.metrics.MalformedRecords.Add(float64(result.Malformed))

	c.logger.Debug("firms fetch complete",
		"source", source,
		"detections", len(result.Detections),
		"malformed", result.Malformed,
	)
	return result, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL, source string) (domain.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("fetch %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.FetchResult{}, fmt.Errorf("firms API error for %s: status %d: %s", source, resp.StatusCode, body)
	}

	result, err := decodeCSV(resp.Body, source)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("decode %s response: %w", source, err)
	}
	return result, nil
}

// decodeCSV parses a FIRMS area CSV body. FIRMS reports request errors
// (bad map key, malformed area) as short plain-text bodies, which surface
// here as a missing latitude column.
func decodeCSV(r io.Reader, source string) (domain.FetchResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column count differs between MODIS and VIIRS feeds
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return domain.FetchResult{}, nil
	}
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["latitude"]; !ok {
		return domain.FetchResult{}, fmt.Errorf("unexpected response, no latitude column: %q", header)
	}

	var result domain.FetchResult
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.FetchResult{}, fmt.Errorf("read row: %w", err)
		}

		raw := domain.RawRecord{
			Latitude:   field(row, col, "latitude"),
			Longitude:  field(row, col, "longitude"),
			AcqDate:    field(row, col, "acq_date"),
			AcqTime:    field(row, col, "acq_time"),
			Confidence: field(row, col, "confidence"),
			FRP:        field(row, col, "frp"),
			Satellite:  field(row, col, "satellite"),
			Source:     source,
		}

		det, err := domain.ParseRecord(raw)
		if err != nil {
			result.Malformed++
			continue
		}
		result.Detections = append(result.Detections, det)
	}

	return result, nil
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// boundingBox converts a center point and radius into the FIRMS area
// parameter "minLon,minLat,maxLon,maxLat". One degree of latitude spans
// ~111 km; longitude degrees shrink with cos(lat), with a guard near the
// poles where the factor collapses.
func boundingBox(center domain.Point, radiusKm float64) string {
	deltaLat := radiusKm / 111
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	if math.Abs(center.Lat) >= 89.9 {
		cosLat = 0.0001
	}
	deltaLon := radiusKm / (111 * cosLat)

	return fmt.Sprintf("%.4f,%.4f,%.4f,%.4f",
		center.Lon-deltaLon, center.Lat-deltaLat,
		center.Lon+deltaLon, center.Lat+deltaLat,
	)
}
