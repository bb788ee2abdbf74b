// Package render presents scan reports as terminal tables.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/couchcryptid/firewatch/internal/domain"
	"github.com/couchcryptid/firewatch/internal/scanner"
)

var riskLabels = map[domain.RiskLevel]string{
	domain.RiskLow:    "Low",
	domain.RiskMedium: "Medium",
	domain.RiskHigh:   "High",
}

// Table renders a scan report as a table sorted by distance ascending.
// The sort happens on a copy; the report's own ordering is left alone.
// Empty reports render a short all-clear message instead of a table.
func Table(w io.Writer, report scanner.Report) {
	if len(report.Detections) == 0 {
		fmt.Fprintf(w, "No reliable fires detected within %.0f km of (%.4f, %.4f) over the last %d days.\n",
			report.Query.RadiusKm, report.Query.Center.Lat, report.Query.Center.Lon, report.Query.Days)
		reportMalformed(w, report.Malformed)
		return
	}

	fmt.Fprintf(w, "Detected %d reliable fires within %.0f km of (%.4f, %.4f) over the last %d days\n\n",
		len(report.Detections), report.Query.RadiusKm, report.Query.Center.Lat, report.Query.Center.Lon, report.Query.Days)

	sorted := make([]domain.AnnotatedDetection, len(report.Detections))
	copy(sorted, report.Detections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DistanceKm < sorted[j].DistanceKm
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Satellite", "Latitude", "Longitude", "Date", "Time", "Intensity (FRP)", "Confidence", "Risk", "Distance (km)"})
	table.SetAutoFormatHeaders(false)

	for _, d := range sorted {
		table.Append([]string{
			string(d.Satellite),
			fmt.Sprintf("%.4f", d.Latitude),
			fmt.Sprintf("%.4f", d.Longitude),
			formatDate(d),
			d.AcqTime,
			fmt.Sprintf("%.1f", d.FRP),
			fmt.Sprintf("%.0f%%", d.Confidence),
			riskLabels[d.Risk],
			fmt.Sprintf("%.1f", d.DistanceKm),
		})
	}
	table.Render()

	reportMalformed(w, report.Malformed)
}

func formatDate(d domain.AnnotatedDetection) string {
	if d.AcqDate.IsZero() {
		return "-"
	}
	return d.AcqDate.Format("2006-01-02")
}

func reportMalformed(w io.Writer, count int) {
	if count > 0 {
		fmt.Fprintf(w, "\nSkipped %d malformed records with missing or invalid coordinates.\n", count)
	}
}
