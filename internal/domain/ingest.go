package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// acqDateLayout is the FIRMS acquisition date format, e.g. "2026-08-12".
const acqDateLayout = "2006-01-02"

// ParseRecord converts a raw FIRMS CSV row into a typed FireDetection.
// Coordinates are required: rows with missing or unparsable latitude or
// longitude return an error so the caller can count them as malformed
// skips. Every other field degrades gracefully (FRP and confidence to 0,
// time to "00:00", date to the zero time).
func ParseRecord(raw RawRecord) (FireDetection, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(raw.Latitude), 64)
	if err != nil {
		return FireDetection{}, fmt.Errorf("malformed latitude %q: %w", raw.Latitude, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(raw.Longitude), 64)
	if err != nil {
		return FireDetection{}, fmt.Errorf("malformed longitude %q: %w", raw.Longitude, err)
	}

	return FireDetection{
		Satellite:  SatelliteFromSource(raw.Source),
		Source:     raw.Source,
		Latitude:   lat,
		Longitude:  lon,
		AcqDate:    parseAcqDate(raw.AcqDate),
		AcqTime:    formatAcqTime(raw.AcqTime),
		FRP:        parseFloatOrZero(raw.FRP),
		Confidence: NormalizeConfidence(raw.Confidence),
	}, nil
}

// NormalizeConfidence maps a raw FIRMS confidence value onto the 0-100
// scale. VIIRS categorical values translate as low=30, nominal=60, high=90;
// numeric values are clamped to [0,100]; anything else becomes 0.
func NormalizeConfidence(raw string) float64 {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "l", "low":
		return 30
	case "n", "nominal":
		return 60
	case "h", "high":
		return 90
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseAcqDate parses a FIRMS acquisition date, returning the zero time on
// failure rather than dropping the row.
func parseAcqDate(s string) time.Time {
	t, err := time.Parse(acqDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// formatAcqTime converts a FIRMS HHMM integer string (e.g. "1510", "151")
// to "HH:MM". Leading zeros are lost in the CSV, so "151" means 01:51.
// Invalid values render as "00:00".
func formatAcqTime(s string) string {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return "00:00"
	}

	hour, mins := n/100, n%100
	if hour > 23 || mins > 59 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", hour, mins)
}
