package models

// Category classifies the content of a conflict region
type Category string

const (
	CategoryImport     Category = "import"     // Import/require statements on either side
	CategoryFormatting Category = "formatting" // Sides differ only in whitespace
	CategoryStructural Category = "structural" // Declarations (func/class/type/...) differ
	CategoryContent    Category = "content"    // Default: ordinary content change
)

// AppliedStrategy identifies how a region's resolution was produced
type AppliedStrategy string

const (
	AppliedOurs   AppliedStrategy = "ours"   // Kept our side verbatim
	AppliedTheirs AppliedStrategy = "theirs" // Kept their side verbatim
	AppliedMerged AppliedStrategy = "merged" // Synthesized from both sides
	AppliedCustom AppliedStrategy = "custom" // Supplied manually by the caller
)

// ConflictRegion represents one <<<<<<< / ======= / >>>>>>> block.
// Regions within one document are non-overlapping and ordered by StartLine.
type ConflictRegion struct {
	StartLine   int         `json:"start_line"`           // 1-based line of the <<<<<<< marker, inclusive
	EndLine     int         `json:"end_line"`             // 1-based line of the >>>>>>> marker, inclusive
	OursLines   []string    `json:"ours_lines"`           // Lines between <<<<<<< and ======= (or |||||||)
	TheirsLines []string    `json:"theirs_lines"`         // Lines between ======= and >>>>>>>
	BaseLines   []string    `json:"base_lines,omitempty"` // Common-ancestor lines (diff3 markers only, else nil)
	OursLabel   string      `json:"ours_label"`           // Text after <<<<<<< (branch/ref label)
	TheirsLabel string      `json:"theirs_label"`         // Text after >>>>>>>
	Category    Category    `json:"category"`             // Immutable once classified
	Resolution  *Resolution `json:"resolution,omitempty"` // Nil until a resolver has run
}

// Resolved reports whether the region carries a resolution
func (r *ConflictRegion) Resolved() bool {
	return r.Resolution != nil
}

// Resolution is the outcome for a single conflict region
type Resolution struct {
	Strategy   AppliedStrategy `json:"strategy"`   // Which side(s) the resolved lines came from
	Lines      []string        `json:"lines"`      // Lines to substitute for the whole region
	Reasoning  string          `json:"reasoning"`  // Human-readable justification (never empty)
	Confidence float64         `json:"confidence"` // In [0,1]
}
