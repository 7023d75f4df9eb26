// Package core implements conflict parsing, classification, and resolution.
// The pipeline for one file is: parse regions, classify each region, build the
// merge context, select a strategy, resolve each region, then aggregate.
package core

import (
	"fmt"
	"strings"

	"github.com/kilupskalvis/cmr/internal/models"
)

// Conflict marker prefixes. The base marker only appears in diff3-style output.
const (
	markerOurs   = "<<<<<<<"
	markerBase   = "|||||||"
	markerSplit  = "======="
	markerTheirs = ">>>>>>>"
)

// ParseError reports malformed conflict markers. It is fatal for the affected
// file; no regions are returned alongside it.
type ParseError struct {
	Line    int // 1-based line of the offending marker (or last line at EOF)
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}

// parser state while scanning a conflict block
type parseState int

const (
	stateOutside parseState = iota
	stateInOurs
	stateInBase
	stateInTheirs
)

// ParseConflicts scans conflict-marked text and returns the ordered list of
// conflict regions. Lines outside regions are not retained; the patch applier
// works against the original text directly. Marker lines are matched by
// prefix, so labels after <<<<<<< and >>>>>>> are preserved on the region.
func ParseConflicts(text string) ([]*models.ConflictRegion, error) {
	var regions []*models.ConflictRegion

	state := stateOutside
	var current *models.ConflictRegion

	lines := SplitLines(text)
	for i, line := range lines {
		lineNum := i + 1

		switch {
		case strings.HasPrefix(line, markerOurs):
			if state != stateOutside {
				return nil, &ParseError{Line: lineNum, Message: "conflict marker opened inside an unclosed region"}
			}
			current = &models.ConflictRegion{
				StartLine: lineNum,
				OursLabel: strings.TrimSpace(strings.TrimPrefix(line, markerOurs)),
			}
			state = stateInOurs

		case strings.HasPrefix(line, markerBase):
			if state != stateInOurs {
				// Ancestor marker is only valid between <<<<<<< and =======;
				// anywhere else it is ordinary content.
				if state == stateOutside {
					continue
				}
				appendLine(current, state, line)
				continue
			}
			current.BaseLines = []string{}
			state = stateInBase

		case strings.HasPrefix(line, markerSplit):
			if state != stateInOurs && state != stateInBase {
				// A run of equals signs outside a region is ordinary text
				// (markdown underlines and the like).
				if state == stateOutside {
					continue
				}
				appendLine(current, state, line)
				continue
			}
			state = stateInTheirs

		case strings.HasPrefix(line, markerTheirs):
			if state != stateInTheirs {
				return nil, &ParseError{Line: lineNum, Message: "closing marker without matching opener"}
			}
			current.EndLine = lineNum
			current.TheirsLabel = strings.TrimSpace(strings.TrimPrefix(line, markerTheirs))
			regions = append(regions, current)
			current = nil
			state = stateOutside

		default:
			if state != stateOutside {
				appendLine(current, state, line)
			}
		}
	}

	if state != stateOutside {
		return nil, &ParseError{Line: len(lines), Message: "end of input inside an unclosed conflict region"}
	}

	return regions, nil
}

// appendLine adds a content line to the list matching the current state.
func appendLine(r *models.ConflictRegion, state parseState, line string) {
	switch state {
	case stateInOurs:
		r.OursLines = append(r.OursLines, line)
	case stateInBase:
		r.BaseLines = append(r.BaseLines, line)
	case stateInTheirs:
		r.TheirsLines = append(r.TheirsLines, line)
	}
}

// SplitLines splits text into lines without treating a trailing newline as an
// extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
