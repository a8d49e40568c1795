package docx

import (
	"strings"

	"github.com/tsawler/docmd/model"
)

// extractTable converts a table element into a rectangular model.Table.
// The first row fixes the column count; later rows are padded with empty
// cells or truncated to match, so malformed sources still yield a
// well-formed table.
func extractTable(tbl *tableXML) *model.Table {
	t := &model.Table{}
	for _, row := range tbl.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cellText(cell))
		}
		t.Rows = append(t.Rows, cells)
	}
	rectangularize(t)
	return t
}

// cellText joins the text of all paragraphs in a cell with newlines.
func cellText(cell tableCellXML) string {
	var parts []string
	for _, p := range cell.Paragraphs {
		var sb strings.Builder
		for _, run := range p.Runs {
			sb.WriteString(run.text())
		}
		if s := sb.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// rectangularize forces every row to the header row's width: short rows
// are padded with empty cells, long rows truncated.
func rectangularize(t *model.Table) {
	if len(t.Rows) == 0 {
		return
	}
	width := len(t.Rows[0])
	if width == 0 {
		t.Rows = nil
		return
	}
	for i, row := range t.Rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			t.Rows[i] = padded
		case len(row) > width:
			t.Rows[i] = row[:width]
		}
	}
}
