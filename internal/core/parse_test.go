package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/cmr/internal/models"
)

const simpleConflict = `line before
<<<<<<< HEAD
our line
=======
their line
>>>>>>> feature
line after
`

func TestParseConflicts_NoMarkers(t *testing.T) {
	regions, err := ParseConflicts("just\nplain\ntext\n")
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestParseConflicts_EmptyInput(t *testing.T) {
	regions, err := ParseConflicts("")
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestParseConflicts_SingleRegion(t *testing.T) {
	regions, err := ParseConflicts(simpleConflict)
	require.NoError(t, err)
	require.Len(t, regions, 1)

	r := regions[0]
	assert.Equal(t, 2, r.StartLine)
	assert.Equal(t, 6, r.EndLine)
	assert.Equal(t, []string{"our line"}, r.OursLines)
	assert.Equal(t, []string{"their line"}, r.TheirsLines)
	assert.Nil(t, r.BaseLines)
	assert.Equal(t, "HEAD", r.OursLabel)
	assert.Equal(t, "feature", r.TheirsLabel)
}

func TestParseConflicts_Diff3Base(t *testing.T) {
	input := strings.Join([]string{
		"<<<<<<< HEAD",
		"ours",
		"||||||| base",
		"ancestor",
		"=======",
		"theirs",
		">>>>>>> feature",
		"",
	}, "\n")

	regions, err := ParseConflicts(input)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, []string{"ours"}, regions[0].OursLines)
	assert.Equal(t, []string{"ancestor"}, regions[0].BaseLines)
	assert.Equal(t, []string{"theirs"}, regions[0].TheirsLines)
}

func TestParseConflicts_MultipleRegions(t *testing.T) {
	input := simpleConflict + "middle\n" + simpleConflict
	regions, err := ParseConflicts(input)
	require.NoError(t, err)
	require.Len(t, regions, 2)

	// Regions are ordered and non-overlapping
	assert.Less(t, regions[0].EndLine, regions[1].StartLine)
	for _, r := range regions {
		assert.LessOrEqual(t, r.StartLine, r.EndLine)
	}
}

func TestParseConflicts_PreservesWhitespace(t *testing.T) {
	input := "<<<<<<< a\n\tindented\n    spaced  \n=======\nx\n>>>>>>> b\n"
	regions, err := ParseConflicts(input)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, []string{"\tindented", "    spaced  "}, regions[0].OursLines)
}

func TestParseConflicts_EqualsRunOutsideRegionIsText(t *testing.T) {
	input := "Title\n=======\nbody\n"
	regions, err := ParseConflicts(input)
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestParseConflicts_CloserWithoutOpener(t *testing.T) {
	input := "some text\n>>>>>>> feature\n"
	regions, err := ParseConflicts(input)
	require.Error(t, err)
	assert.Nil(t, regions)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
}

func TestParseConflicts_UnclosedRegion(t *testing.T) {
	input := "<<<<<<< HEAD\nours\n=======\ntheirs\n"
	regions, err := ParseConflicts(input)
	require.Error(t, err)
	assert.Nil(t, regions)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParseConflicts_NestedOpenerIsError(t *testing.T) {
	input := "<<<<<<< HEAD\n<<<<<<< again\n=======\nx\n>>>>>>> b\n"
	_, err := ParseConflicts(input)
	require.Error(t, err)
}

func TestParseConflicts_MarkerBalance(t *testing.T) {
	input := simpleConflict + simpleConflict + simpleConflict
	regions, err := ParseConflicts(input)
	require.NoError(t, err)
	assert.Equal(t, strings.Count(input, markerOurs), len(regions))
}

func TestParseConflicts_EmptySides(t *testing.T) {
	input := "<<<<<<< a\n=======\n>>>>>>> b\n"
	regions, err := ParseConflicts(input)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Empty(t, regions[0].OursLines)
	assert.Empty(t, regions[0].TheirsLines)
	assert.False(t, regions[0].Resolved())
	assert.Equal(t, models.Category(""), regions[0].Category)
}
