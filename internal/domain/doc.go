// Package domain models NASA FIRMS active-fire detection data.
//
// # Data Source
//
// Detections originate from the NASA FIRMS (Fire Information for Resource
// Management System) area API, available at
// https://firms.modaps.eosdis.nasa.gov/api/area/. The API serves
// near-real-time (NRT) CSV feeds per satellite source; this project reads
// MODIS_NRT, VIIRS_NOAA20_NRT, and VIIRS_SUOMI_NPP_NRT.
//
// # FIRMS Data Conventions
//
// Coordinates:
//
//	"latitude"/"longitude" columns in WGS-84 decimal degrees, the center of
//	the detected fire pixel (~1 km for MODIS, ~375 m for VIIRS).
//
// Acquisition time:
//
//	"acq_date" is a UTC calendar date ("2026-08-12"); "acq_time" is an HHMM
//	integer in 24-hour notation, e.g. 1510 = 15:10 UTC. Values under four
//	digits lose their leading zeros in the CSV: "151" means 01:51.
//	Missing or invalid times render as "00:00" rather than dropping the row.
//
// FRP (Fire Radiative Power):
//
//	"frp" is the radiant energy release rate of the fire in megawatts, the
//	intensity signal used for risk classification. Absent or unparsable
//	values are treated as 0 (unmeasured).
//
// Confidence (varies by instrument):
//
//	MODIS reports a numeric 0-100 estimate that a pixel contains an actual
//	fire. VIIRS reports the categorical scale {low, nominal, high}, mapped
//	here to 30/60/90 so both instruments compare on one 0-100 scale.
//	Numeric values outside [0,100] are clamped; unparsable values become 0,
//	which survives filtering only when the confidence floor is 0.
//
// Risk classification:
//
//	Derived from FRP with a three-level scale calibrated to typical
//	MODIS/VIIRS FRP ranges:
//
//	  <10 MW low | <50 MW medium | ≥50 MW high
//
//	The thresholds are carried as [RiskThresholds] values so deployments can
//	tune them; the defaults above are not hard-coded at call sites.
//
// # Filtering
//
// [Filter] keeps a detection when its coordinates are valid, its distance
// from the reference point is within the requested radius, and its
// normalized confidence meets the caller's floor (40 is the recommended
// reliability floor for NRT data). Rows with missing or out-of-range
// coordinates are counted and skipped, never fatal.
package domain
