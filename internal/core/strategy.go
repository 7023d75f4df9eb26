package core

import (
	"fmt"

	"github.com/kilupskalvis/cmr/internal/models"
)

// Thresholds for the strategy rule chain
const (
	highCoverageThreshold = 80.0
	lowCoverageThreshold  = 30.0
	highChurnThreshold    = 10
	expertiseGapThreshold = 0.3
)

// SelectStrategy maps a merge context to a resolution policy. It is a pure
// function: rules are applied in a fixed order and every rule that fires
// appends an explanatory factor for the report.
func SelectStrategy(mc *models.MergeContext) *models.ResolutionStrategy {
	strategy := &models.ResolutionStrategy{
		Primary:  models.IntelligentMerge,
		Fallback: models.FallbackPreferOurs,
	}

	addFactor := func(factor string) {
		strategy.ContextualFactors = append(strategy.ContextualFactors, factor)
	}

	switch {
	case mc.FileCriticality:
		strategy.Primary = models.PreferSafer
		addFactor("file is critical (entry point, configuration, or core library)")
	case mc.TestCoveragePercent > highCoverageThreshold:
		// High coverage keeps the default merge but raises confidence in it.
		addFactor(fmt.Sprintf("high test coverage (%.0f%%) supports aggressive merging", mc.TestCoveragePercent))
	case mc.TestCoveragePercent < lowCoverageThreshold:
		strategy.Primary = models.PreferSafer
		addFactor(fmt.Sprintf("low test coverage (%.0f%%) favors the safer side", mc.TestCoveragePercent))
	}

	// High churn overrides any earlier choice: once a file changes this often,
	// structural stability outweighs safety.
	if mc.RecentChangeFrequency > highChurnThreshold {
		strategy.Primary = models.PreferStructure
		addFactor(fmt.Sprintf("high change frequency (%d recent commits) prioritizes structural stability", mc.RecentChangeFrequency))
	}

	if gap, expert := mc.ExpertiseGap(); gap > expertiseGapThreshold && expert != "" {
		addFactor(fmt.Sprintf("author %s has significantly more expertise with this file", expert))
	}

	if mc.FileCriticality {
		strategy.Fallback = models.FallbackManualReview
	}

	return strategy
}
