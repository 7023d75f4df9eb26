package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kilupskalvis/cmr/internal/models"
)

// Apply precondition violations. Both are caller errors, not recoverable
// conditions: the caller either skipped resolution or ignored the verdict.
var (
	ErrUnresolvedRegion = errors.New("analysis contains an unresolved region")
	ErrManualReview     = errors.New("analysis requires manual review")
)

// Apply splices every region's resolved lines into the original text,
// replacing the full marker span. An analysis that is not auto-resolvable is
// refused unless every region carries a caller-supplied custom resolution.
func Apply(original string, analysis *models.ConflictAnalysis) (string, error) {
	if len(analysis.Regions) == 0 {
		return original, nil
	}

	for _, region := range analysis.Regions {
		if !region.Resolved() {
			return "", fmt.Errorf("%w: lines %d-%d", ErrUnresolvedRegion, region.StartLine, region.EndLine)
		}
	}

	if !analysis.AutoResolvable && !allCustom(analysis.Regions) {
		return "", fmt.Errorf("%w: %s (risk %s, confidence %.0f%%)",
			ErrManualReview, analysis.FilePath, analysis.Risk, analysis.OverallConfidence*100)
	}

	lines := SplitLines(original)

	// Work backward from the highest start line so earlier splices do not
	// invalidate the line numbers of regions not yet processed.
	regions := make([]*models.ConflictRegion, len(analysis.Regions))
	copy(regions, analysis.Regions)
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].StartLine > regions[j].StartLine
	})

	for _, region := range regions {
		if region.StartLine < 1 || region.EndLine > len(lines) || region.StartLine > region.EndLine {
			return "", fmt.Errorf("region span %d-%d out of bounds for %d-line file",
				region.StartLine, region.EndLine, len(lines))
		}
		spliced := make([]string, 0, len(lines)-(region.EndLine-region.StartLine+1)+len(region.Resolution.Lines))
		spliced = append(spliced, lines[:region.StartLine-1]...)
		spliced = append(spliced, region.Resolution.Lines...)
		spliced = append(spliced, lines[region.EndLine:]...)
		lines = spliced
	}

	resolved := strings.Join(lines, "\n")
	if strings.HasSuffix(original, "\n") && resolved != "" {
		resolved += "\n"
	}
	return resolved, nil
}

// allCustom reports whether every region was manually overridden.
func allCustom(regions []*models.ConflictRegion) bool {
	for _, r := range regions {
		if r.Resolution.Strategy != models.AppliedCustom {
			return false
		}
	}
	return len(regions) > 0
}
