package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/tsawler/docmd/model"
)

// Numbering instances defined by numberingPartXML.
const (
	numIDBullet  = 1
	numIDDecimal = 2
)

// buildBody renders the ordered element sequence into the XML content of
// <w:body>. Elements are appended in input order, never reordered or
// merged.
func buildBody(elements []model.Element, opts Options) string {
	b := &bodyBuilder{opts: opts}
	for _, el := range elements {
		b.writeElement(el)
	}
	return b.sb.String()
}

type bodyBuilder struct {
	sb   strings.Builder
	opts Options
}

func (b *bodyBuilder) writeElement(el model.Element) {
	switch el.Type {
	case model.TypeTitle:
		b.styledParagraph("Title", el.Text)
	case model.TypeHeading:
		if el.Level < 1 {
			// Level 0 is reserved for the document title style.
			b.styledParagraph("Title", el.Text)
			return
		}
		b.styledParagraph(fmt.Sprintf("Heading%d", model.ClampLevel(el.Level)), el.Text)
	case model.TypeParagraph:
		b.paragraph(el)
	case model.TypeTable:
		b.table(el)
	case model.TypeKeyValueTable:
		b.keyValueTable(el)
	case model.TypeList:
		b.list(el)
	case model.TypePageBreak:
		b.sb.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
	case model.TypeEmptyLines:
		for i := 0; i < el.Count; i++ {
			b.sb.WriteString(`<w:p/>`)
		}
	}
}

// styledParagraph emits a paragraph bound to a named paragraph style.
func (b *bodyBuilder) styledParagraph(style, text string) {
	b.sb.WriteString(`<w:p><w:pPr><w:pStyle w:val="`)
	b.sb.WriteString(style)
	b.sb.WriteString(`"/></w:pPr>`)
	b.runs(text, "")
	b.sb.WriteString(`</w:p>`)
}

// paragraph emits a body paragraph with direct run formatting.
func (b *bodyBuilder) paragraph(el model.Element) {
	b.sb.WriteString(`<w:p>`)
	if jc := justificationValue(el.Alignment); jc != "" {
		b.sb.WriteString(`<w:pPr><w:jc w:val="`)
		b.sb.WriteString(jc)
		b.sb.WriteString(`"/></w:pPr>`)
	}
	b.runs(el.Text, runProps(el))
	b.sb.WriteString(`</w:p>`)
}

// runProps renders the <w:rPr> content for a paragraph element, or ""
// when no direct formatting applies.
func runProps(el model.Element) string {
	var sb strings.Builder
	if el.Bold {
		sb.WriteString(`<w:b/>`)
	}
	if el.Italic {
		sb.WriteString(`<w:i/>`)
	}
	if el.Color != "" {
		sb.WriteString(`<w:color w:val="`)
		sb.WriteString(normalizeHex(el.Color))
		sb.WriteString(`"/>`)
	}
	if el.FontSize > 0 {
		// Word stores font sizes in half-points.
		fmt.Fprintf(&sb, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`,
			int(el.FontSize*2), int(el.FontSize*2))
	}
	return sb.String()
}

// runs emits the run sequence for a text value, turning embedded
// newlines into line-break runs.
func (b *bodyBuilder) runs(text, rpr string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		b.sb.WriteString(`<w:r>`)
		if rpr != "" {
			b.sb.WriteString(`<w:rPr>`)
			b.sb.WriteString(rpr)
			b.sb.WriteString(`</w:rPr>`)
		}
		if i > 0 {
			b.sb.WriteString(`<w:br/>`)
		}
		if line != "" {
			b.sb.WriteString(`<w:t xml:space="preserve">`)
			b.sb.WriteString(escapeXML(line))
			b.sb.WriteString(`</w:t>`)
		}
		b.sb.WriteString(`</w:r>`)
	}
}

// justificationValue maps element alignments onto OOXML w:jc values.
// Left is the document default and emits nothing.
func justificationValue(alignment string) string {
	switch alignment {
	case model.AlignCenter:
		return "center"
	case model.AlignRight:
		return "right"
	case model.AlignJustify:
		return "both"
	default:
		return ""
	}
}

// table emits a bordered table with a shaded, bold header row. Body rows
// are padded with empty cells or truncated to the header width.
func (b *bodyBuilder) table(el model.Element) {
	width := len(el.Headers)
	headerFill := b.opts.HeaderColor
	if el.HeaderColor != "" {
		headerFill = normalizeHex(el.HeaderColor)
	}

	b.tableOpen(width)

	b.sb.WriteString(`<w:tr>`)
	for _, h := range el.Headers {
		b.cell(h, `<w:shd w:val="clear" w:color="auto" w:fill="`+headerFill+`"/>`, `<w:b/>`)
	}
	b.sb.WriteString(`</w:tr>`)

	for _, row := range el.Rows {
		b.sb.WriteString(`<w:tr>`)
		for i := 0; i < width; i++ {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			b.cell(text, "", "")
		}
		b.sb.WriteString(`</w:tr>`)
	}

	b.sb.WriteString(`</w:tbl>`)
}

// keyValueTable emits a two-column table with no header row; keys are
// bold in the left column.
func (b *bodyBuilder) keyValueTable(el model.Element) {
	b.tableOpen(2)
	for _, kv := range el.Data {
		b.sb.WriteString(`<w:tr>`)
		b.cell(kv[0], "", `<w:b/>`)
		b.cell(kv[1], "", "")
		b.sb.WriteString(`</w:tr>`)
	}
	b.sb.WriteString(`</w:tbl>`)
}

// tableOpen writes table properties (single borders, auto width) and the
// column grid.
func (b *bodyBuilder) tableOpen(cols int) {
	b.sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`</w:tblBorders></w:tblPr><w:tblGrid>`)
	for i := 0; i < cols; i++ {
		b.sb.WriteString(`<w:gridCol/>`)
	}
	b.sb.WriteString(`</w:tblGrid>`)
}

// cell emits one table cell holding a single paragraph.
func (b *bodyBuilder) cell(text, tcPr, rpr string) {
	b.sb.WriteString(`<w:tc>`)
	if tcPr != "" {
		b.sb.WriteString(`<w:tcPr>`)
		b.sb.WriteString(tcPr)
		b.sb.WriteString(`</w:tcPr>`)
	}
	b.sb.WriteString(`<w:p>`)
	b.runs(text, rpr)
	b.sb.WriteString(`</w:p></w:tc>`)
}

// list emits one list-item paragraph per item, bound to the bullet or
// decimal numbering instance.
func (b *bodyBuilder) list(el model.Element) {
	numID := numIDBullet
	if el.Ordered {
		numID = numIDDecimal
	}
	for _, item := range el.Items {
		fmt.Fprintf(&b.sb,
			`<w:p><w:pPr><w:pStyle w:val="ListParagraph"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="%d"/></w:numPr></w:pPr>`,
			numID)
		b.runs(item, "")
		b.sb.WriteString(`</w:p>`)
	}
}

// escapeXML escapes text for embedding in element content.
func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
