package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kilupskalvis/cmr/internal/models"
)

// Fixed confidence levels per resolver path
const (
	confFormatting  = 0.8
	confImportMerge = 0.9
	confStructural  = 0.7
	confLineMerge   = 0.5
	confSaferSide   = 0.6
	confExpertSide  = 0.7
	confDefaultOurs = 0.4
)

// Content-resolver thresholds
const (
	similarityThreshold = 0.7
	contentExpertiseGap = 0.2
)

// resolveRegion routes a classified region to its resolver. Structural
// regions only use the structural resolver under a prefer-structure policy;
// otherwise they fall through to the content resolver.
func resolveRegion(region *models.ConflictRegion, strategy *models.ResolutionStrategy, mc *models.MergeContext) *models.Resolution {
	switch region.Category {
	case models.CategoryImport:
		return resolveImports(region)
	case models.CategoryFormatting:
		return resolveFormatting(region)
	case models.CategoryStructural:
		if strategy.Primary == models.PreferStructure {
			return resolveStructural(region)
		}
		return resolveContent(region, strategy, mc)
	default:
		return resolveContent(region, strategy, mc)
	}
}

// resolveFormatting keeps the side with the more consistent indentation.
// Formatting choices are low-stakes but it is rarely certain which style the
// team prefers, hence the fixed confidence.
func resolveFormatting(region *models.ConflictRegion) *models.Resolution {
	oursScore := indentConsistency(region.OursLines)
	theirsScore := indentConsistency(region.TheirsLines)

	if theirsScore > oursScore {
		return &models.Resolution{
			Strategy:   models.AppliedTheirs,
			Lines:      region.TheirsLines,
			Reasoning:  fmt.Sprintf("their side has more consistent indentation (%.2f vs %.2f)", theirsScore, oursScore),
			Confidence: confFormatting,
		}
	}
	return &models.Resolution{
		Strategy:   models.AppliedOurs,
		Lines:      region.OursLines,
		Reasoning:  fmt.Sprintf("our side has more consistent indentation (%.2f vs %.2f)", oursScore, theirsScore),
		Confidence: confFormatting,
	}
}

// indentConsistency scores a side as 1 - distinctIndentWidths/nonBlankLines.
func indentConsistency(lines []string) float64 {
	widths := make(map[int]bool)
	nonBlank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonBlank++
		widths[len(line)-len(strings.TrimLeft(line, " \t"))] = true
	}
	if nonBlank == 0 {
		return 0
	}
	return 1 - float64(len(widths))/float64(nonBlank)
}

var importSourceRes = []*regexp.Regexp{
	regexp.MustCompile(`from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`),
}

// importSource extracts the module token an import line refers to. Lines with
// no recognizable source dedupe on their collapsed text instead.
func importSource(line string) string {
	for _, re := range importSourceRes {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return strings.Join(strings.Fields(line), " ")
}

// resolveImports merges both sides' imports, keeping one representative line
// per module source. Our entries are inserted first, so a source seen on both
// sides keeps our line.
func resolveImports(region *models.ConflictRegion) *models.Resolution {
	var order []string
	seen := make(map[string]string)

	addLines := func(lines []string) {
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			source := importSource(line)
			if _, ok := seen[source]; ok {
				continue
			}
			seen[source] = line
			order = append(order, source)
		}
	}
	addLines(region.OursLines)
	addLines(region.TheirsLines)

	merged := make([]string, 0, len(order))
	for _, source := range order {
		merged = append(merged, seen[source])
	}

	return &models.Resolution{
		Strategy:   models.AppliedMerged,
		Lines:      merged,
		Reasoning:  fmt.Sprintf("merged imports from both sides, deduplicated by module source (%d unique)", len(merged)),
		Confidence: confImportMerge,
	}
}

var (
	funcDeclRe  = regexp.MustCompile(`\b(func|function|def)\b`)
	classDeclRe = regexp.MustCompile(`\bclass\b|\btype\s+\w+\s+(struct|interface)\b`)
)

// resolveStructural keeps the side that scores higher on structural
// soundness: balanced braces plus declaration counts.
func resolveStructural(region *models.ConflictRegion) *models.Resolution {
	oursScore := structureScore(region.OursLines)
	theirsScore := structureScore(region.TheirsLines)

	if theirsScore > oursScore {
		return &models.Resolution{
			Strategy:   models.AppliedTheirs,
			Lines:      region.TheirsLines,
			Reasoning:  fmt.Sprintf("their side is structurally sounder (score %d vs %d)", theirsScore, oursScore),
			Confidence: confStructural,
		}
	}
	return &models.Resolution{
		Strategy:   models.AppliedOurs,
		Lines:      region.OursLines,
		Reasoning:  fmt.Sprintf("our side is structurally sounder (score %d vs %d)", oursScore, theirsScore),
		Confidence: confStructural,
	}
}

// structureScore = 2*balancedBraces + funcDecls + 2*classDecls
func structureScore(lines []string) int {
	text := strings.Join(lines, "\n")
	score := 0
	if strings.Count(text, "{") == strings.Count(text, "}") {
		score += 2
	}
	score += len(funcDeclRe.FindAllString(text, -1))
	score += 2 * len(classDeclRe.FindAllString(text, -1))
	return score
}

// resolveContent is the default path and the fallback for structural regions.
func resolveContent(region *models.ConflictRegion, strategy *models.ResolutionStrategy, mc *models.MergeContext) *models.Resolution {
	switch strategy.Primary {
	case models.IntelligentMerge:
		return &models.Resolution{
			Strategy:   models.AppliedMerged,
			Lines:      mergeLineByLine(region.OursLines, region.TheirsLines),
			Reasoning:  "line-by-line merge combining unique lines from both sides",
			Confidence: confLineMerge,
		}

	case models.PreferSafer:
		oursSize := charCount(region.OursLines)
		theirsSize := charCount(region.TheirsLines)
		if theirsSize < oursSize {
			return &models.Resolution{
				Strategy:   models.AppliedTheirs,
				Lines:      region.TheirsLines,
				Reasoning:  fmt.Sprintf("their side is the smaller change (%d vs %d chars), lower risk", theirsSize, oursSize),
				Confidence: confSaferSide,
			}
		}
		return &models.Resolution{
			Strategy:   models.AppliedOurs,
			Lines:      region.OursLines,
			Reasoning:  fmt.Sprintf("our side is the smaller change (%d vs %d chars), lower risk", oursSize, theirsSize),
			Confidence: confSaferSide,
		}

	default:
		oursExpertise := mc.AuthorExpertise[mc.OursAuthor]
		theirsExpertise := mc.AuthorExpertise[mc.TheirsAuthor]
		if theirsExpertise-oursExpertise > contentExpertiseGap {
			return &models.Resolution{
				Strategy:   models.AppliedTheirs,
				Lines:      region.TheirsLines,
				Reasoning:  fmt.Sprintf("author %s has notably higher expertise with this file", mc.TheirsAuthor),
				Confidence: confExpertSide,
			}
		}
		if oursExpertise-theirsExpertise > contentExpertiseGap {
			return &models.Resolution{
				Strategy:   models.AppliedOurs,
				Lines:      region.OursLines,
				Reasoning:  fmt.Sprintf("author %s has notably higher expertise with this file", mc.OursAuthor),
				Confidence: confExpertSide,
			}
		}
		// Explicit low-confidence default, never silently dropped.
		return &models.Resolution{
			Strategy:   models.AppliedOurs,
			Lines:      region.OursLines,
			Reasoning:  "no decisive signal; defaulting to our side at low confidence",
			Confidence: confDefaultOurs,
		}
	}
}

// mergeLineByLine walks both sides index by index. Identical lines are kept
// once; one-sided lines are kept; diverging lines are reconciled by
// containment, then token overlap, then kept as an explicit two-line artifact.
// The walk assumes positional correspondence between the sides, which is a
// known approximation once one side inserts or deletes lines.
func mergeLineByLine(ours, theirs []string) []string {
	var merged []string
	n := len(ours)
	if len(theirs) > n {
		n = len(theirs)
	}

	for i := 0; i < n; i++ {
		switch {
		case i >= len(ours):
			merged = append(merged, theirs[i])
		case i >= len(theirs):
			merged = append(merged, ours[i])
		case ours[i] == theirs[i]:
			merged = append(merged, ours[i])
		case strings.Contains(ours[i], theirs[i]):
			merged = append(merged, ours[i])
		case strings.Contains(theirs[i], ours[i]):
			merged = append(merged, theirs[i])
		case tokenOverlap(ours[i], theirs[i]) > similarityThreshold:
			if len(ours[i]) >= len(theirs[i]) {
				merged = append(merged, ours[i])
			} else {
				merged = append(merged, theirs[i])
			}
		default:
			// Unresolvable pair: keep both as an explicit merge artifact.
			merged = append(merged, ours[i], theirs[i])
		}
	}

	return merged
}

// tokenOverlap is the Jaccard similarity of the two lines' word sets.
func tokenOverlap(a, b string) float64 {
	aTokens := make(map[string]bool)
	for _, tok := range strings.Fields(a) {
		aTokens[tok] = true
	}
	bTokens := make(map[string]bool)
	for _, tok := range strings.Fields(b) {
		bTokens[tok] = true
	}

	intersection := 0
	for tok := range aTokens {
		if bTokens[tok] {
			intersection++
		}
	}
	union := len(aTokens) + len(bTokens) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func charCount(lines []string) int {
	n := 0
	for _, line := range lines {
		n += len(line)
	}
	return n
}
