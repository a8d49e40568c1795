package docmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/docmd/model"
)

func TestJSONToMarkdown(t *testing.T) {
	// Build a document from the JSON schema, then read it back as
	// Markdown through the public surface.
	elements, err := ParseJSON([]byte(`{
		"elements": [
			{"type": "title", "text": "Report"},
			{"type": "paragraph", "text": "Hello", "bold": true}
		]
	}`))
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, NewBuilder().BuildFile(elements, outPath))

	md, err := Open(outPath).Markdown()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# Report\n"), "markdown should open with the title heading, got %q", md)
	assert.Contains(t, md, "\nHello")
}

func TestMarkdownRoundTrip(t *testing.T) {
	src := `# Project Notes

Intro paragraph.

- one
- two

| col1 | col2 |
| --- | --- |
| a | b |
`

	elements := ParseMarkdown(src)
	outPath := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, NewBuilder().BuildFile(elements, outPath))

	md, err := Open(outPath).Markdown()
	require.NoError(t, err)
	assert.Equal(t, src, md)
}

func TestConverter_Text(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "doc.docx")
	require.NoError(t, NewBuilder().BuildFile([]model.Element{
		{Type: model.TypeHeading, Level: 2, Text: "Section"},
		{Type: model.TypeParagraph, Text: "Body text."},
	}, outPath))

	text, err := Open(outPath).Text()
	require.NoError(t, err)
	assert.Equal(t, "Section\n\nBody text.\n", text)
}

func TestConverter_ReadsAreIdempotent(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "doc.docx")
	require.NoError(t, NewBuilder().BuildFile([]model.Element{
		{Type: model.TypeParagraph, Text: "stable"},
	}, outPath))

	first := Must(Open(outPath).Markdown())
	second := Must(Open(outPath).Markdown())
	assert.Equal(t, first, second)
}

func TestConverter_OpenError(t *testing.T) {
	_, err := Open("/nonexistent/file.docx").Markdown()
	require.Error(t, err)
}

func TestBuilder_FluentOptions(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "styled.docx")
	err := NewBuilder().
		Font("Georgia").
		HeaderColor("2F5496").
		BuildFile([]model.Element{
			{Type: model.TypeTable, Headers: []string{"h"}, Rows: [][]string{{"v"}}},
		}, outPath)
	require.NoError(t, err)

	blocks, err := Open(outPath).Blocks()
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, model.KindTable, blocks[0].Kind())
}

func TestMust(t *testing.T) {
	assert.Equal(t, 42, Must(42, nil))
	assert.Panics(t, func() {
		Must(0, assert.AnError)
	})
}
