package models

import "time"

// ChangeRecord is one historical change to a file, as reported by the forge
type ChangeRecord struct {
	Author       string    `json:"author"`
	Timestamp    time.Time `json:"timestamp"`
	LinesChanged int       `json:"lines_changed"`
}

// ChangeSetInfo carries forge metadata about the change-set being merged
type ChangeSetInfo struct {
	ID           string `json:"id"`
	BaseBranch   string `json:"base_branch"`
	TargetBranch string `json:"target_branch"`
	SourceBranch string `json:"source_branch"`
	OursAuthor   string `json:"ours_author"`   // Author of the target-branch side
	TheirsAuthor string `json:"theirs_author"` // Author of the source-branch side
}

// BranchInfo identifies the branches involved in a merge
type BranchInfo struct {
	Base   string `json:"base"`
	Target string `json:"target"`
	Source string `json:"source"`
}

// MergeContext is the per-file contextual snapshot used to bias resolution.
// Built once per (repository, change-set, file) and never mutated afterwards.
type MergeContext struct {
	Branches              BranchInfo         `json:"branches"`
	OursAuthor            string             `json:"ours_author"`
	TheirsAuthor          string             `json:"theirs_author"`
	AuthorExpertise       map[string]float64 `json:"author_expertise"`        // Author -> normalized score in [0,1]
	RecentChangeFrequency int                `json:"recent_change_frequency"` // Commits touching the file in the history window
	FileCriticality       bool               `json:"file_criticality"`        // Path matches a critical pattern
	TestCoveragePercent   float64            `json:"test_coverage_percent"`   // Soft signal in [0,100], 0 when unknown
	Warnings              []string           `json:"warnings,omitempty"`      // Degradation notes (history unavailable, etc.)
}

// ExpertiseGap returns the absolute expertise difference between the two
// authors of the merge, and the identifier of the more expert one.
func (mc *MergeContext) ExpertiseGap() (gap float64, expert string) {
	ours := mc.AuthorExpertise[mc.OursAuthor]
	theirs := mc.AuthorExpertise[mc.TheirsAuthor]
	if ours >= theirs {
		return ours - theirs, mc.OursAuthor
	}
	return theirs - ours, mc.TheirsAuthor
}
