package core

import (
	"fmt"

	"github.com/kilupskalvis/cmr/internal/models"
)

// Report renders an analysis into a summary line, one detail line per region,
// and a recommendations list driven by risk, confidence, and the verdict.
func Report(analysis *models.ConflictAnalysis) *models.Report {
	report := &models.Report{
		Summary: fmt.Sprintf("%s: resolved %d/%d regions at %.0f%% confidence",
			analysis.FilePath, analysis.ResolvedCount(), len(analysis.Regions), analysis.OverallConfidence*100),
	}

	for _, region := range analysis.Regions {
		if region.Resolved() {
			report.Details = append(report.Details, fmt.Sprintf("lines %d-%d [%s] %s (%.0f%%): %s",
				region.StartLine, region.EndLine, region.Category,
				region.Resolution.Strategy, region.Resolution.Confidence*100, region.Resolution.Reasoning))
		} else {
			report.Details = append(report.Details, fmt.Sprintf("lines %d-%d [%s] unresolved",
				region.StartLine, region.EndLine, region.Category))
		}
	}

	report.Recommendations = recommendations(analysis)
	return report
}

func recommendations(a *models.ConflictAnalysis) []string {
	var recs []string

	if a.AutoResolvable {
		recs = append(recs, "All regions resolved above threshold; safe to apply automatically.")
	}
	if a.Risk == models.RiskHigh {
		recs = append(recs, "File is critical; require manual review before applying.")
	}
	if a.Risk == models.RiskMedium {
		recs = append(recs, "Moderate risk; verify the resolved file against its tests before merging.")
	}
	if a.OverallConfidence < autoResolveOverallThreshold {
		recs = append(recs, fmt.Sprintf("Overall confidence %.0f%% is below the %.0f%% auto-apply threshold; review suggested resolutions.",
			a.OverallConfidence*100, autoResolveOverallThreshold*100))
	}
	for _, region := range a.Regions {
		if region.Resolved() && region.Resolution.Confidence < autoResolveRegionThreshold {
			recs = append(recs, fmt.Sprintf("Region at lines %d-%d resolved at only %.0f%%; review it individually.",
				region.StartLine, region.EndLine, region.Resolution.Confidence*100))
		}
	}
	for _, factor := range a.Strategy.ContextualFactors {
		recs = append(recs, "Context: "+factor)
	}

	return recs
}
