package domain

// RiskLevel is the coarse three-tier fire risk classification derived from
// Fire Radiative Power.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskThresholds holds the FRP cut points (megawatts) between risk tiers.
// Values below MediumFRP are low, values below HighFRP are medium, and
// everything else is high.
type RiskThresholds struct {
	MediumFRP float64
	HighFRP   float64
}

// DefaultRiskThresholds returns the cut points calibrated to typical
// MODIS/VIIRS FRP ranges. Deployments tune them through configuration.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{MediumFRP: 10, HighFRP: 50}
}

// ClassifyRisk maps an FRP value to a risk level. Total over all reals:
// zero, negative, and unmeasured values classify as low.
func ClassifyRisk(frp float64, t RiskThresholds) RiskLevel {
	switch {
	case frp < t.MediumFRP:
		return RiskLow
	case frp < t.HighFRP:
		return RiskMedium
	default:
		return RiskHigh
	}
}
