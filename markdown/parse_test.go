package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/docmd/model"
)

func TestParse_Headings(t *testing.T) {
	elements := Parse("# One\n\n### Three\n\n###### Six")
	require.Len(t, elements, 3)

	assert.Equal(t, model.Element{Type: model.TypeHeading, Level: 1, Text: "One"}, elements[0])
	assert.Equal(t, 3, elements[1].Level)
	assert.Equal(t, 6, elements[2].Level)
}

func TestParse_SingleHashIsHeadingNotTitle(t *testing.T) {
	elements := Parse("# Top")
	require.Len(t, elements, 1)
	assert.Equal(t, model.TypeHeading, elements[0].Type)
	assert.Equal(t, 1, elements[0].Level)
}

func TestParse_SevenHashesIsParagraph(t *testing.T) {
	elements := Parse("####### nope")
	require.Len(t, elements, 1)
	assert.Equal(t, model.TypeParagraph, elements[0].Type)
	assert.Equal(t, "####### nope", elements[0].Text)
}

func TestParse_BareHashDegradesToParagraph(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bare hash", "#"},
		{"hash with trailing space", "# "},
		{"bare hash between paragraphs", "intro\n\n#\n\noutro"},
		{"only closing hashes", "## ##"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := Parse(tt.src)
			for _, el := range elements {
				assert.NotEqual(t, model.TypeHeading, el.Type, "no empty heading may survive parsing")
			}
			assert.NoError(t, model.CheckElements(elements), "parser output must validate")
		})
	}
}

func TestParse_ClosingHashesTrimmed(t *testing.T) {
	elements := Parse("## Section ##")
	require.Len(t, elements, 1)
	assert.Equal(t, "Section", elements[0].Text)
}

func TestParse_ParagraphLinesJoin(t *testing.T) {
	elements := Parse("first line\nsecond line\n\nnext paragraph")
	require.Len(t, elements, 2)

	assert.Equal(t, "first line second line", elements[0].Text)
	assert.Equal(t, model.AlignLeft, elements[0].Alignment)
	assert.Equal(t, "next paragraph", elements[1].Text)
}

func TestParse_UnorderedList(t *testing.T) {
	elements := Parse("- a\n- b\n- c")
	require.Len(t, elements, 1)

	assert.Equal(t, model.TypeList, elements[0].Type)
	assert.False(t, elements[0].Ordered)
	assert.Equal(t, []string{"a", "b", "c"}, elements[0].Items)
}

func TestParse_OrderedList(t *testing.T) {
	elements := Parse("1. a\n2. b\n17. c")
	require.Len(t, elements, 1)

	assert.True(t, elements[0].Ordered)
	assert.Equal(t, []string{"a", "b", "c"}, elements[0].Items)
}

func TestParse_MixedMarkersSplitLists(t *testing.T) {
	elements := Parse("- a\n1. b\n- c")
	require.Len(t, elements, 3)

	assert.False(t, elements[0].Ordered)
	assert.True(t, elements[1].Ordered)
	assert.False(t, elements[2].Ordered)
}

func TestParse_AsteriskMarker(t *testing.T) {
	elements := Parse("* a\n* b")
	require.Len(t, elements, 1)
	assert.Equal(t, []string{"a", "b"}, elements[0].Items)
}

func TestParse_Table(t *testing.T) {
	elements := Parse("| Name | Score |\n| --- | --- |\n| alice | 10 |\n| bob | 9 |")
	require.Len(t, elements, 1)

	el := elements[0]
	assert.Equal(t, model.TypeTable, el.Type)
	assert.Equal(t, []string{"Name", "Score"}, el.Headers)
	assert.Equal(t, [][]string{{"alice", "10"}, {"bob", "9"}}, el.Rows)
}

func TestParse_TableWithoutSeparator(t *testing.T) {
	elements := Parse("| a | b |\n| 1 | 2 |")
	require.Len(t, elements, 1)

	assert.Equal(t, []string{"a", "b"}, elements[0].Headers)
	assert.Equal(t, [][]string{{"1", "2"}}, elements[0].Rows)
}

func TestParse_TableRowsFitHeaderWidth(t *testing.T) {
	elements := Parse("| a | b |\n|---|---|\n| 1 |\n| 1 | 2 | 3 |")
	require.Len(t, elements, 1)

	assert.Equal(t, [][]string{{"1", ""}, {"1", "2"}}, elements[0].Rows)
}

func TestParse_TableEscapedPipe(t *testing.T) {
	elements := Parse("| a | b |\n|---|---|\n| x \\| y | z |")
	require.Len(t, elements, 1)
	assert.Equal(t, [][]string{{"x | y", "z"}}, elements[0].Rows)
}

func TestParse_EmptyLines(t *testing.T) {
	// One blank line is the ordinary separator; a run of n >= 2 blanks
	// emits empty_lines with count n-1.
	elements := Parse("a\n\n\n\nb")
	require.Len(t, elements, 3)

	assert.Equal(t, model.TypeParagraph, elements[0].Type)
	assert.Equal(t, model.Element{Type: model.TypeEmptyLines, Count: 2}, elements[1])
	assert.Equal(t, "b", elements[2].Text)
}

func TestParse_SingleBlankIsJustSeparator(t *testing.T) {
	elements := Parse("a\n\nb")
	require.Len(t, elements, 2)
	assert.Equal(t, "a", elements[0].Text)
	assert.Equal(t, "b", elements[1].Text)
}

func TestParse_TrailingBlanksDropped(t *testing.T) {
	elements := Parse("a\n\n\n\n")
	require.Len(t, elements, 1)
	assert.Equal(t, "a", elements[0].Text)
}

func TestParse_NormalizesInput(t *testing.T) {
	// BOM stripped, CRLF converted.
	elements := Parse("\uFEFF# Title\r\n\r\nbody\r\n")
	require.Len(t, elements, 2)
	assert.Equal(t, "Title", elements[0].Text)
	assert.Equal(t, "body", elements[1].Text)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n\n"))
}

func TestParse_Document(t *testing.T) {
	src := `# T

| a | b |
|---|---|
| 1 | 2 |

- item one
- item two

closing text`

	elements := Parse(src)
	require.Len(t, elements, 4)

	assert.Equal(t, model.TypeHeading, elements[0].Type)
	assert.Equal(t, model.TypeTable, elements[1].Type)
	assert.Equal(t, model.TypeList, elements[2].Type)
	assert.Equal(t, model.TypeParagraph, elements[3].Type)
}
