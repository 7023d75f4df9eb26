package models

// PrimaryStrategy is the main resolution policy for a file
type PrimaryStrategy string

const (
	PreferStructure  PrimaryStrategy = "prefer-structure"  // Favor the structurally sounder side
	PreferNewer      PrimaryStrategy = "prefer-newer"      // Favor the more recent change
	PreferSafer      PrimaryStrategy = "prefer-safer"      // Favor the smaller, lower-risk change
	IntelligentMerge PrimaryStrategy = "intelligent-merge" // Attempt a line-by-line blend
)

// FallbackStrategy applies when the primary strategy cannot decide
type FallbackStrategy string

const (
	FallbackManualReview FallbackStrategy = "manual-review"
	FallbackPreferOurs   FallbackStrategy = "prefer-ours"
	FallbackPreferTheirs FallbackStrategy = "prefer-theirs"
)

// ResolutionStrategy is the policy chosen once per file from its merge context
type ResolutionStrategy struct {
	Primary           PrimaryStrategy  `json:"primary"`
	Fallback          FallbackStrategy `json:"fallback"`
	ContextualFactors []string         `json:"contextual_factors"` // Audit trail of the rules that fired
}
