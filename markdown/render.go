// Package markdown converts between Markdown text and the shared model
// vocabulary: rendering reader-produced blocks to Markdown or plain
// text, and parsing Markdown into writer elements.
package markdown

import (
	"strconv"
	"strings"

	"github.com/tsawler/docmd/model"
)

// Render produces a Markdown representation of a block sequence.
// Blocks are rendered in order with one blank line between them;
// consecutive list items form a single list without separators.
func Render(blocks []model.Block) string {
	var sb strings.Builder
	ordinal := 0

	for i, block := range blocks {
		if i > 0 {
			if keepAdjacent(blocks[i-1], block) {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}

		switch b := block.(type) {
		case *model.Title:
			sb.WriteString("# ")
			sb.WriteString(inlineText(b.Text))
		case *model.Heading:
			sb.WriteString(strings.Repeat("#", model.ClampLevel(b.Level)))
			sb.WriteString(" ")
			sb.WriteString(inlineText(b.Text))
		case *model.Paragraph:
			sb.WriteString(inlineText(b.Text))
		case *model.ListItem:
			sb.WriteString(strings.Repeat("  ", b.Level))
			if b.Ordered {
				ordinal = nextOrdinal(blocks, i, ordinal)
				sb.WriteString(strconv.Itoa(ordinal))
				sb.WriteString(". ")
			} else {
				sb.WriteString("- ")
			}
			sb.WriteString(inlineText(b.Text))
		case *model.Table:
			sb.WriteString(renderTable(b))
		}
	}

	out := sb.String()
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// keepAdjacent reports whether two blocks belong to the same visual
// group (consecutive list items) and need no blank-line separator.
func keepAdjacent(prev, cur model.Block) bool {
	return prev.Kind() == model.KindListItem && cur.Kind() == model.KindListItem
}

// nextOrdinal computes the displayed number for an ordered list item:
// 1 when the item opens a run of ordered items, previous+1 otherwise.
func nextOrdinal(blocks []model.Block, i, prev int) int {
	if i == 0 {
		return 1
	}
	last, ok := blocks[i-1].(*model.ListItem)
	if !ok || !last.Ordered {
		return 1
	}
	return prev + 1
}

// renderTable produces a pipe table with a separator row after the
// header row.
func renderTable(t *model.Table) string {
	if len(t.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, row := range t.Rows {
		sb.WriteString("|")
		for _, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(tableCellText(cell))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
		if i == 0 {
			sb.WriteString("|")
			for range row {
				sb.WriteString(" --- |")
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderText produces a plain-text representation: block texts joined by
// blank lines, tables as tab-joined rows, no Markdown punctuation.
func RenderText(blocks []model.Block) string {
	var sb strings.Builder
	for i, block := range blocks {
		if i > 0 {
			if keepAdjacent(blocks[i-1], block) {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		switch b := block.(type) {
		case *model.Title:
			sb.WriteString(b.Text)
		case *model.Heading:
			sb.WriteString(b.Text)
		case *model.Paragraph:
			sb.WriteString(b.Text)
		case *model.ListItem:
			sb.WriteString(b.Text)
		case *model.Table:
			for j, row := range b.Rows {
				if j > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(strings.Join(row, "\t"))
			}
		}
	}
	out := sb.String()
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// inlineText flattens multi-line block text onto one Markdown line.
func inlineText(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// tableCellText makes cell text safe inside a pipe table row.
func tableCellText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.TrimSpace(s)
}
