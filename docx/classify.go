package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/docmd/model"
)

// classification is the style classifier's verdict for one paragraph.
type classification struct {
	Kind    model.BlockKind
	Level   int  // heading level (1-6) or list indentation level (0-based)
	Ordered bool // list items only
}

// classifier maps raw style metadata onto the closed Block vocabulary.
// It is pure and stateless with respect to its inputs: the same style
// identifiers always yield the same classification. Unrecognized styles
// degrade to Paragraph, never fail.
type classifier struct {
	styles    map[string]*styleDefXML
	numbering *numberingResolver
}

func newClassifier(styles *stylesXML, numbering *numberingXML) *classifier {
	c := &classifier{
		styles:    make(map[string]*styleDefXML),
		numbering: newNumberingResolver(numbering),
	}
	if styles != nil {
		for i := range styles.Styles {
			s := &styles.Styles[i]
			c.styles[s.StyleID] = s
		}
	}
	return c
}

// classify determines the semantic role of a paragraph from its style
// reference and numbering properties.
func (c *classifier) classify(p *paragraphXML) classification {
	props := p.Properties

	// Explicit numbering wins over style names: Word attaches numPr to
	// list paragraphs regardless of the style they reference.
	if numID := props.NumPr.NumID.Val; numID != "" && numID != "0" {
		return classification{
			Kind:    model.KindListItem,
			Level:   parseListLevel(props.NumPr.ILvl.Val),
			Ordered: c.numbering.ordered(numID, props.NumPr.ILvl.Val),
		}
	}

	styleID := props.Style.Val
	styleName := ""
	if def, ok := c.styles[styleID]; ok {
		styleName = def.Name.Val
	}

	if kind, level, ordered, ok := classifyStyleName(styleID); ok {
		return classification{Kind: kind, Level: level, Ordered: ordered}
	}
	if kind, level, ordered, ok := classifyStyleName(styleName); ok {
		return classification{Kind: kind, Level: level, Ordered: ordered}
	}

	// Styles carrying an outline level act as headings even without a
	// recognizable name. OutlineLvl is 0-based in OOXML.
	if def, ok := c.styles[styleID]; ok && def.PPr.OutlineLvl.Val != "" {
		if lvl, err := strconv.Atoi(def.PPr.OutlineLvl.Val); err == nil && lvl >= 0 && lvl <= 8 {
			return classification{Kind: model.KindHeading, Level: model.ClampLevel(lvl + 1)}
		}
	}
	if props.OutlineLvl.Val != "" {
		if lvl, err := strconv.Atoi(props.OutlineLvl.Val); err == nil && lvl >= 0 && lvl <= 8 {
			return classification{Kind: model.KindHeading, Level: model.ClampLevel(lvl + 1)}
		}
	}

	return classification{Kind: model.KindParagraph}
}

// classifyStyleName matches a style identifier against the built-in
// Word patterns: "Title", "Heading N", bullet/numbered list styles.
func classifyStyleName(name string) (kind model.BlockKind, level int, ordered bool, ok bool) {
	id := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if id == "" {
		return 0, 0, false, false
	}

	switch id {
	case "title":
		return model.KindTitle, 0, false, true
	case "subtitle":
		return model.KindHeading, 2, false, true
	}

	if rest, found := strings.CutPrefix(id, "heading"); found {
		if n, err := strconv.Atoi(rest); err == nil {
			return model.KindHeading, model.ClampLevel(n), false, true
		}
		return model.KindHeading, 1, false, true
	}

	switch {
	case strings.HasPrefix(id, "listnumber"):
		return model.KindListItem, 0, true, true
	case strings.HasPrefix(id, "listbullet"), id == "listparagraph":
		return model.KindListItem, 0, false, true
	}

	return 0, 0, false, false
}

func parseListLevel(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// numberingResolver resolves numbering instances against the abstract
// definitions of word/numbering.xml.
type numberingResolver struct {
	abstractNums map[string]*abstractNumXML // abstractNumId -> definition
	numMappings  map[string]string          // numId -> abstractNumId
}

func newNumberingResolver(numbering *numberingXML) *numberingResolver {
	nr := &numberingResolver{
		abstractNums: make(map[string]*abstractNumXML),
		numMappings:  make(map[string]string),
	}
	if numbering == nil {
		return nr
	}
	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		nr.abstractNums[an.AbstractNumID] = an
	}
	for _, num := range numbering.Nums {
		nr.numMappings[num.NumID] = num.AbstractNumID.Val
	}
	return nr
}

// ordered reports whether the numbering level renders as a numbered
// sequence rather than bullets. Missing definitions default to bullets.
func (nr *numberingResolver) ordered(numID, ilvl string) bool {
	abstractID, ok := nr.numMappings[numID]
	if !ok {
		return false
	}
	an, ok := nr.abstractNums[abstractID]
	if !ok {
		return false
	}
	if ilvl == "" {
		ilvl = "0"
	}
	for _, lvl := range an.Levels {
		if lvl.ILvl != ilvl {
			continue
		}
		switch lvl.NumFmt.Val {
		case "decimal", "lowerLetter", "upperLetter", "lowerRoman", "upperRoman":
			return true
		default:
			return false
		}
	}
	return false
}
