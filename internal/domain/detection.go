package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Satellite identifies the sensor family that produced a detection.
type Satellite string

const (
	SatelliteMODIS Satellite = "MODIS"
	SatelliteVIIRS Satellite = "VIIRS"
)

// SatelliteFromSource maps a FIRMS source identifier (e.g. "VIIRS_NOAA20_NRT")
// to its sensor family. Unrecognized sources return an empty Satellite.
func SatelliteFromSource(source string) Satellite {
	switch {
	case strings.HasPrefix(source, "MODIS"):
		return SatelliteMODIS
	case strings.HasPrefix(source, "VIIRS"):
		return SatelliteVIIRS
	default:
		return ""
	}
}

// RawRecord is one FIRMS CSV row with all fields still in string form.
// The adapter builds these from header-indexed columns; ParseRecord turns
// them into typed detections.
type RawRecord struct {
	Latitude   string
	Longitude  string
	AcqDate    string
	AcqTime    string
	Confidence string
	FRP        string
	Satellite  string // FIRMS "satellite" column, e.g. "Terra", "N20"
	Source     string // FIRMS source identifier the row was fetched from
}

// FireDetection is a typed detection as received from the provider, with
// confidence already normalized to the 0-100 scale.
type FireDetection struct {
	Satellite  Satellite `json:"satellite"`
	Source     string    `json:"source"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	AcqDate    time.Time `json:"acq_date"`
	AcqTime    string    `json:"acq_time"` // "HH:MM" UTC
	FRP        float64   `json:"frp"`
	Confidence float64   `json:"confidence"`
}

// AnnotatedDetection is a detection that passed all filter thresholds,
// annotated with its distance from the reference point and a risk level.
// Never mutated after Filter produces it.
type AnnotatedDetection struct {
	FireDetection
	DistanceKm float64   `json:"distance_km"`
	Risk       RiskLevel `json:"risk"`
}

// FetchResult is what a fetch of a single FIRMS source yields: the parsed
// detections plus a count of rows skipped for missing geolocation.
type FetchResult struct {
	Detections []FireDetection
	Malformed  int
}

// maxQueryDays is the largest day range the FIRMS area API accepts.
const maxQueryDays = 10

// Query describes one area lookup: a reference point, a search radius,
// and how many days of detections to cover.
type Query struct {
	Center   Point
	RadiusKm float64
	Days     int
}

// Validate rejects queries before any fetch is attempted.
func (q Query) Validate() error {
	if !q.Center.Valid() {
		return fmt.Errorf("reference point out of range: lat=%v lon=%v", q.Center.Lat, q.Center.Lon)
	}
	if q.RadiusKm <= 0 {
		return fmt.Errorf("radius must be positive, got %v", q.RadiusKm)
	}
	if q.Days <= 0 {
		return errors.New("day count must be positive")
	}
	if q.Days > maxQueryDays {
		return fmt.Errorf("day count %d exceeds the FIRMS maximum of %d", q.Days, maxQueryDays)
	}
	return nil
}
