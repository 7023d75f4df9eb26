package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/cmr/internal/models"
)

func TestReport_Summary(t *testing.T) {
	input := "<<<<<<< a\nimport {a} from 'm';\n=======\nimport {b} from 'm';\n>>>>>>> b\n"
	analysis, err := Resolve(context.Background(), newTestConfig(), NewContextCache(), newTestForge(), "42", "src/app.ts", input)
	require.NoError(t, err)

	report := Report(analysis)
	assert.Contains(t, report.Summary, "resolved 1/1 regions")
	assert.Contains(t, report.Summary, "90% confidence")
	require.Len(t, report.Details, 1)
	assert.Contains(t, report.Details[0], "[import]")
	assert.Contains(t, report.Details[0], "merged")
}

func TestReport_CriticalFileRecommendsReview(t *testing.T) {
	input := "<<<<<<< a\nx\n=======\ny\n>>>>>>> b\n"
	analysis, err := Resolve(context.Background(), newTestConfig(), NewContextCache(), newTestForge(), "42", "src/config/index.ts", input)
	require.NoError(t, err)
	require.Equal(t, models.RiskHigh, analysis.Risk)

	report := Report(analysis)
	assert.Contains(t, report.Recommendations, "File is critical; require manual review before applying.")
}

func TestReport_LowConfidenceRegionFlagged(t *testing.T) {
	a := &models.ConflictAnalysis{
		FilePath: "src/app.ts",
		Strategy: &models.ResolutionStrategy{},
		Context:  &models.MergeContext{TestCoveragePercent: 80},
		Regions: []*models.ConflictRegion{
			{StartLine: 2, EndLine: 6, Category: models.CategoryContent,
				Resolution: &models.Resolution{Strategy: models.AppliedOurs, Reasoning: "default", Confidence: 0.4}},
		},
	}
	aggregate(a)

	report := Report(a)
	joined := ""
	for _, rec := range report.Recommendations {
		joined += rec + "\n"
	}
	assert.Contains(t, joined, "lines 2-6")
	assert.Contains(t, joined, "below")
}

func TestReport_ContextualFactorsIncluded(t *testing.T) {
	a := &models.ConflictAnalysis{
		FilePath: "src/app.ts",
		Strategy: &models.ResolutionStrategy{ContextualFactors: []string{"high change frequency"}},
		Context:  &models.MergeContext{TestCoveragePercent: 80},
	}
	aggregate(a)

	report := Report(a)
	assert.Contains(t, report.Recommendations, "Context: high change frequency")
}
