package core

import (
	"regexp"
	"strings"

	"github.com/kilupskalvis/cmr/internal/models"
)

var (
	// Import/require-style statements across the languages we see in practice
	importRe = regexp.MustCompile(`^\s*(import\s|from\s+\S+\s+import\s|#include\s)|=\s*require\s*\(|^\s*require\s*[\(']`)

	// Declaration keywords that indicate a structural change
	structuralRe = regexp.MustCompile(`\b(func|function|class|interface|type|struct|def|const|let|var)\b`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Classify assigns exactly one category to a region. Precedence: import,
// then formatting, then structural, then content. Classification is pure and
// deterministic over the region's line content.
func Classify(region *models.ConflictRegion) models.Category {
	if anyLineMatches(region.OursLines, importRe) || anyLineMatches(region.TheirsLines, importRe) {
		return models.CategoryImport
	}

	if whitespaceEquivalent(region.OursLines, region.TheirsLines) {
		return models.CategoryFormatting
	}

	if anyLineMatches(region.OursLines, structuralRe) || anyLineMatches(region.TheirsLines, structuralRe) {
		return models.CategoryStructural
	}

	return models.CategoryContent
}

func anyLineMatches(lines []string, re *regexp.Regexp) bool {
	for _, line := range lines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// whitespaceEquivalent reports whether the two sides are identical after
// collapsing every whitespace run to a single space.
func whitespaceEquivalent(ours, theirs []string) bool {
	return collapseWhitespace(ours) == collapseWhitespace(theirs)
}

// collapseWhitespace flattens lines to one string with every whitespace run
// (including line breaks) reduced to a single space.
func collapseWhitespace(lines []string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.Join(lines, " "), " "))
}
