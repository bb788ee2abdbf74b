package domain

import "fmt"

// FilterParams carries the thresholds for one filtering pass. All values
// come from the caller; nothing here is hard-coded.
type FilterParams struct {
	Reference     Point
	RadiusKm      float64
	MinConfidence float64 // 0-100; 40 is the recommended reliability floor
	Thresholds    RiskThresholds
}

// Validate rejects parameter sets before any records are processed.
func (p FilterParams) Validate() error {
	if !p.Reference.Valid() {
		return fmt.Errorf("reference point out of range: lat=%v lon=%v", p.Reference.Lat, p.Reference.Lon)
	}
	if p.RadiusKm <= 0 {
		return fmt.Errorf("radius must be positive, got %v", p.RadiusKm)
	}
	if p.MinConfidence < 0 || p.MinConfidence > 100 {
		return fmt.Errorf("minimum confidence must be in [0,100], got %v", p.MinConfidence)
	}
	if p.Thresholds.MediumFRP > p.Thresholds.HighFRP {
		return fmt.Errorf("risk thresholds inverted: medium %v > high %v", p.Thresholds.MediumFRP, p.Thresholds.HighFRP)
	}
	return nil
}

// FilterResult holds the detections that passed all thresholds plus a
// count of records skipped for invalid geolocation.
type FilterResult struct {
	Detections []AnnotatedDetection
	Malformed  int
}

// Filter annotates and keeps each detection whose distance from the
// reference point is within RadiusKm and whose confidence meets
// MinConfidence. Records with out-of-range coordinates are counted in
// Malformed and skipped. The output preserves input order; no sorting is
// applied here.
func Filter(records []FireDetection, p FilterParams) FilterResult {
	result := FilterResult{
		Detections: make([]AnnotatedDetection, 0, len(records)),
	}

	for _, rec := range records {
		loc := Point{Lat: rec.Latitude, Lon: rec.Longitude}
		if !loc.Valid() {
			result.Malformed++
			continue
		}

		if rec.Confidence < p.MinConfidence {
			continue
		}

		dist := Distance(p.Reference, loc)
		if dist > p.RadiusKm {
			continue
		}

		result.Detections = append(result.Detections, AnnotatedDetection{
			FireDetection: rec,
			DistanceKm:    dist,
			Risk:          ClassifyRisk(rec.FRP, p.Thresholds),
		})
	}

	return result
}
