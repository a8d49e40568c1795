package markdown

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docmd/model"
)

// Parse converts Markdown text into the element sequence the document
// writer consumes. The grammar is line-oriented with lookahead only for
// table blocks:
//
//   - 1-6 leading '#' followed by whitespace: heading at that level
//     (a single '#' is always Heading level 1, never a title; the title
//     element is reachable only through the JSON schema). A marker line
//     with no text after it degrades to a paragraph
//   - consecutive '-'/'*' or "N." lines: one list element; switching
//     marker family starts a new list
//   - a line starting and ending with '|': a table; a following
//     |---|---| separator row is consumed, data rows are padded with
//     empty cells or truncated to the header width
//   - any other non-blank line: paragraph text; consecutive plain lines
//     join into one paragraph
//   - a run of two or more blank lines emits empty_lines with count
//     run-1 (one blank is the ordinary block separator); trailing
//     blanks at end of input are dropped
//
// Unterminated list and table blocks close at the final line. Parsing
// never fails; unrecognizable input degrades to paragraph text.
func Parse(src string) []model.Element {
	lines := strings.Split(normalize(src), "\n")

	var elements []model.Element
	blankRun := 0
	i := 0

	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			blankRun++
			i++
			continue
		}

		if blankRun >= 2 {
			elements = append(elements, model.Element{
				Type:  model.TypeEmptyLines,
				Count: blankRun - 1,
			})
		}
		blankRun = 0

		switch {
		case isHeading(trimmed):
			el := headingElement(trimmed)
			if el.Text == "" {
				// A bare marker line has no heading content; keep the
				// raw text as a paragraph so output always validates.
				el = model.Element{Type: model.TypeParagraph, Text: trimmed, Alignment: model.AlignLeft}
			}
			elements = append(elements, el)
			i++
		case isTableRow(trimmed):
			el, n := parseTable(lines[i:])
			elements = append(elements, el)
			i += n
		case isListItem(trimmed):
			el, n := parseList(lines[i:])
			elements = append(elements, el)
			i += n
		default:
			el, n := parseParagraph(lines[i:])
			elements = append(elements, el)
			i += n
		}
	}

	return elements
}

// normalize prepares raw input: strips a UTF-8 BOM, converts line
// endings to LF, and applies NFC so visually identical text compares
// equal after a round trip.
func normalize(src string) string {
	src = strings.TrimPrefix(src, "\uFEFF")
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return norm.NFC.String(src)
}

func isHeading(line string) bool {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}
	return level == len(line) || line[level] == ' ' || line[level] == '\t'
}

func headingElement(line string) model.Element {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	text := strings.TrimSpace(line[level:])
	// Trailing closing hashes are decoration, not content.
	text = strings.TrimSpace(strings.TrimRight(text, "#"))
	return model.Element{Type: model.TypeHeading, Level: level, Text: text}
}

// isListItem reports whether a line opens a list item with either
// marker family.
func isListItem(line string) bool {
	_, _, ok := cutListMarker(line)
	return ok
}

// cutListMarker splits a list line into marker kind and item text.
func cutListMarker(line string) (text string, ordered bool, ok bool) {
	if len(line) >= 2 && (line[0] == '-' || line[0] == '*') && (line[1] == ' ' || line[1] == '\t') {
		return strings.TrimSpace(line[2:]), false, true
	}
	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits+1 >= len(line) {
		return "", false, false
	}
	if line[digits] != '.' && line[digits] != ')' {
		return "", false, false
	}
	if line[digits+1] != ' ' && line[digits+1] != '\t' {
		return "", false, false
	}
	return strings.TrimSpace(line[digits+2:]), true, true
}

// parseList consumes consecutive matching list lines into one List
// element. A change of marker family ends the run so the next call
// starts a fresh list.
func parseList(lines []string) (model.Element, int) {
	first, ordered, _ := cutListMarker(strings.TrimSpace(lines[0]))
	items := []string{first}
	n := 1

	for n < len(lines) {
		text, itemOrdered, ok := cutListMarker(strings.TrimSpace(lines[n]))
		if !ok || itemOrdered != ordered {
			break
		}
		items = append(items, text)
		n++
	}

	return model.Element{Type: model.TypeList, Items: items, Ordered: ordered}, n
}

func isTableRow(line string) bool {
	return len(line) >= 2 && strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

// isSeparatorRow matches the |---|---| row under a table header,
// tolerating alignment colons.
func isSeparatorRow(line string) bool {
	if !isTableRow(line) {
		return false
	}
	for _, cell := range splitTableRow(line) {
		cell = strings.TrimSpace(cell)
		cell = strings.TrimPrefix(cell, ":")
		cell = strings.TrimSuffix(cell, ":")
		if cell == "" || strings.Count(cell, "-") != len(cell) {
			return false
		}
	}
	return true
}

// parseTable consumes a table block: header row, optional separator,
// then data rows until a non-table or blank line. Data rows are padded
// or truncated to the header width.
func parseTable(lines []string) (model.Element, int) {
	headers := splitTableRow(strings.TrimSpace(lines[0]))
	n := 1

	if n < len(lines) && isSeparatorRow(strings.TrimSpace(lines[n])) {
		n++
	}

	var rows [][]string
	for n < len(lines) {
		trimmed := strings.TrimSpace(lines[n])
		if !isTableRow(trimmed) {
			break
		}
		rows = append(rows, fitRow(splitTableRow(trimmed), len(headers)))
		n++
	}

	return model.Element{Type: model.TypeTable, Headers: headers, Rows: rows}, n
}

// splitTableRow splits a pipe row into trimmed cells, honoring \|
// escapes inside cell text.
func splitTableRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	var cells []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			if r != '|' {
				cur.WriteByte('\\')
			}
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteByte('\\')
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

func fitRow(row []string, width int) []string {
	switch {
	case len(row) < width:
		padded := make([]string, width)
		copy(padded, row)
		return padded
	case len(row) > width:
		return row[:width]
	default:
		return row
	}
}

// parseParagraph joins consecutive plain lines into one paragraph,
// stopping at blanks or at lines that open another block kind.
func parseParagraph(lines []string) (model.Element, int) {
	var parts []string
	n := 0
	for n < len(lines) {
		trimmed := strings.TrimSpace(lines[n])
		if trimmed == "" || isHeading(trimmed) || isTableRow(trimmed) || isListItem(trimmed) {
			break
		}
		parts = append(parts, trimmed)
		n++
	}
	return model.Element{
		Type:      model.TypeParagraph,
		Text:      strings.Join(parts, " "),
		Alignment: model.AlignLeft,
	}, n
}
