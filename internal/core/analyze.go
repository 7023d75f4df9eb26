package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/kilupskalvis/cmr/internal/config"
	"github.com/kilupskalvis/cmr/internal/forge"
	"github.com/kilupskalvis/cmr/internal/models"
)

// Aggregation thresholds for the auto-resolvability verdict
const (
	autoResolveOverallThreshold = 0.7
	autoResolveRegionThreshold  = 0.6
	mediumRiskCoverageThreshold = 50.0
	mediumRiskRegionCount       = 5
)

// Resolve analyzes one conflict-marked file end to end: parse, classify,
// build context, select a strategy, resolve every region, aggregate. A parse
// failure is fatal for this file only; context failures degrade to defaults.
func Resolve(ctx context.Context, cfg *config.Config, cache *ContextCache, client forge.ClientInterface, changeSetID, filePath, text string) (*models.ConflictAnalysis, error) {
	regions, err := ParseConflicts(text)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", filePath, err)
	}

	// Context is only worth fetching when there is a conflict to resolve. A
	// clean file still gets criticality and coverage for the risk verdict.
	var mc *models.MergeContext
	if len(regions) > 0 {
		mc = BuildContext(ctx, cfg, cache, client, changeSetID, filePath)
	} else {
		mc = &models.MergeContext{
			AuthorExpertise:     map[string]float64{},
			FileCriticality:     isCriticalPath(filePath, cfg.CriticalPatterns),
			TestCoveragePercent: estimateTestCoverage(filePath),
		}
	}
	strategy := SelectStrategy(mc)

	for _, region := range regions {
		region.Category = Classify(region)
		region.Resolution = resolveRegion(region, strategy, mc)
	}

	analysis := &models.ConflictAnalysis{
		FilePath:  filePath,
		Regions:   regions,
		Strategy:  strategy,
		Context:   mc,
		CreatedAt: time.Now(),
	}
	aggregate(analysis)
	analysis.ID = generateAnalysisID(analysis)

	return analysis, nil
}

// aggregate computes overall confidence, risk level, and the auto-resolvable
// verdict from the per-region resolutions. Call again after any per-region
// override so the verdict stays derived, never stored independently.
func aggregate(a *models.ConflictAnalysis) {
	a.OverallConfidence = overallConfidence(a.Regions)
	a.Risk = riskLevel(a)
	a.AutoResolvable = autoResolvable(a)
}

// overallConfidence is the mean region confidence; unresolved regions count
// as zero. An analysis with no regions has nothing left to doubt.
func overallConfidence(regions []*models.ConflictRegion) float64 {
	if len(regions) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, r := range regions {
		if r.Resolved() {
			sum += r.Resolution.Confidence
		}
	}
	return sum / float64(len(regions))
}

func riskLevel(a *models.ConflictAnalysis) models.RiskLevel {
	if a.Context.FileCriticality {
		return models.RiskHigh
	}

	structural := false
	for _, r := range a.Regions {
		if r.Category == models.CategoryStructural {
			structural = true
			break
		}
	}

	if a.Context.TestCoveragePercent < mediumRiskCoverageThreshold || structural || len(a.Regions) > mediumRiskRegionCount {
		return models.RiskMedium
	}
	return models.RiskLow
}

func autoResolvable(a *models.ConflictAnalysis) bool {
	if a.Risk == models.RiskHigh {
		return false
	}
	if a.OverallConfidence < autoResolveOverallThreshold {
		return false
	}
	for _, r := range a.Regions {
		if !r.Resolved() || r.Resolution.Confidence < autoResolveRegionThreshold {
			return false
		}
	}
	return true
}

// Override replaces one region's resolution with caller-supplied lines and
// re-aggregates. It is the escape hatch for applying files that failed the
// auto-resolvability gate.
func Override(a *models.ConflictAnalysis, startLine int, lines []string, reasoning string) error {
	for _, region := range a.Regions {
		if region.StartLine != startLine {
			continue
		}
		if reasoning == "" {
			reasoning = "manual resolution supplied by caller"
		}
		region.Resolution = &models.Resolution{
			Strategy:   models.AppliedCustom,
			Lines:      lines,
			Reasoning:  reasoning,
			Confidence: 1.0,
		}
		aggregate(a)
		return nil
	}
	return fmt.Errorf("no conflict region starts at line %d", startLine)
}

// generateAnalysisID derives a content-addressable ID from the file path,
// timestamp, and every region's resolved content.
func generateAnalysisID(a *models.ConflictAnalysis) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d", a.FilePath, a.CreatedAt.Format(time.RFC3339Nano), len(a.Regions))
	for _, r := range a.Regions {
		fmt.Fprintf(h, "|%d-%d:%s", r.StartLine, r.EndLine, r.Category)
		if r.Resolved() {
			fmt.Fprintf(h, ":%s:%.2f", r.Resolution.Strategy, r.Resolution.Confidence)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
