package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilupskalvis/cmr/internal/models"
)

func plainContext() *models.MergeContext {
	return &models.MergeContext{
		OursAuthor:          "ann",
		TheirsAuthor:        "bob",
		AuthorExpertise:     map[string]float64{},
		TestCoveragePercent: 60,
	}
}

func TestSelectStrategy_Default(t *testing.T) {
	s := SelectStrategy(plainContext())
	assert.Equal(t, models.IntelligentMerge, s.Primary)
	assert.Equal(t, models.FallbackPreferOurs, s.Fallback)
	assert.Empty(t, s.ContextualFactors)
}

func TestSelectStrategy_CriticalFile(t *testing.T) {
	mc := plainContext()
	mc.FileCriticality = true

	s := SelectStrategy(mc)
	assert.Equal(t, models.PreferSafer, s.Primary)
	assert.Equal(t, models.FallbackManualReview, s.Fallback)
	assert.NotEmpty(t, s.ContextualFactors)
}

func TestSelectStrategy_HighCoverageKeepsDefault(t *testing.T) {
	mc := plainContext()
	mc.TestCoveragePercent = 90

	s := SelectStrategy(mc)
	assert.Equal(t, models.IntelligentMerge, s.Primary)
	assert.Len(t, s.ContextualFactors, 1) // recorded as a confidence booster
}

func TestSelectStrategy_LowCoverage(t *testing.T) {
	mc := plainContext()
	mc.TestCoveragePercent = 10

	s := SelectStrategy(mc)
	assert.Equal(t, models.PreferSafer, s.Primary)
	assert.Equal(t, models.FallbackPreferOurs, s.Fallback)
}

func TestSelectStrategy_HighChurnOverrides(t *testing.T) {
	mc := plainContext()
	mc.FileCriticality = true
	mc.RecentChangeFrequency = 15

	s := SelectStrategy(mc)
	// Churn beats the criticality-driven safer choice for the primary...
	assert.Equal(t, models.PreferStructure, s.Primary)
	// ...but the critical fallback stays.
	assert.Equal(t, models.FallbackManualReview, s.Fallback)
	assert.Len(t, s.ContextualFactors, 2)
}

func TestSelectStrategy_ExpertiseGapRecordedOnly(t *testing.T) {
	mc := plainContext()
	mc.AuthorExpertise = map[string]float64{"ann": 0.2, "bob": 0.9}

	s := SelectStrategy(mc)
	assert.Equal(t, models.IntelligentMerge, s.Primary)
	assert.Len(t, s.ContextualFactors, 1)
	assert.Contains(t, s.ContextualFactors[0], "bob")
}

func TestSelectStrategy_Pure(t *testing.T) {
	mc := plainContext()
	mc.FileCriticality = true

	first := SelectStrategy(mc)
	second := SelectStrategy(mc)
	assert.Equal(t, first, second)
}
