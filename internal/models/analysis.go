package models

import "time"

// RiskLevel grades how dangerous it is to auto-apply a file's resolutions
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ConflictAnalysis is the top-level result for one conflict-marked file
type ConflictAnalysis struct {
	ID                string              `json:"id"` // Content-addressable, assigned at analysis time
	FilePath          string              `json:"file_path"`
	Regions           []*ConflictRegion   `json:"regions"`
	Strategy          *ResolutionStrategy `json:"strategy"`
	Context           *MergeContext       `json:"context"`
	OverallConfidence float64             `json:"overall_confidence"` // Mean of region confidences, 1.0 for zero regions
	Risk              RiskLevel           `json:"risk"`
	AutoResolvable    bool                `json:"auto_resolvable"`
	CreatedAt         time.Time           `json:"created_at"`
}

// ResolvedCount returns how many regions carry a resolution
func (a *ConflictAnalysis) ResolvedCount() int {
	n := 0
	for _, r := range a.Regions {
		if r.Resolved() {
			n++
		}
	}
	return n
}

// ShortID returns the first 8 characters of the analysis ID
func (a *ConflictAnalysis) ShortID() string {
	if len(a.ID) > 8 {
		return a.ID[:8]
	}
	return a.ID
}

// Report is the human-readable rendering of an analysis
type Report struct {
	Summary         string   `json:"summary"`
	Details         []string `json:"details"`
	Recommendations []string `json:"recommendations"`
}

// FileFailure records why one file in a batch could not be analyzed
type FileFailure struct {
	FilePath string `json:"file_path"`
	Reason   string `json:"reason"`
}

// BatchResult holds the outcome of analyzing many files: per-file failures
// never abort the siblings, so both lists can be non-empty.
type BatchResult struct {
	Analyses []*ConflictAnalysis `json:"analyses"`
	Failed   []*FileFailure      `json:"failed"`
}
