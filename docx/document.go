package docx

import (
	"encoding/xml"
	"strings"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body. Elements preserves the physical
// order of paragraphs and tables, which encoding/xml's field-per-name
// unmarshaling would otherwise lose.
type bodyXML struct {
	Elements []bodyElement
}

// bodyElement is one body-level element: exactly one of Paragraph or
// Table is set.
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML decodes body children one token at a time so paragraphs
// and tables keep their document order. Unknown elements (sectPr,
// bookmarks, structured document tags) are skipped.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Paragraph: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Table: &tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphXML represents a paragraph element (<w:p>). Runs holds the
// paragraph's runs in physical order, with hyperlink runs inlined where
// the hyperlink appears.
type paragraphXML struct {
	Properties paragraphPropsXML
	Runs       []runXML
}

// UnmarshalXML decodes paragraph children one token at a time so runs
// and hyperlink runs keep their document order; tag-driven unmarshaling
// would group them by element name.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, r)
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, h.Runs...)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         styleRefXML       `xml:"pStyle"`
	NumPr         numberingPropsXML `xml:"numPr"`
	Justification justificationXML  `xml:"jc"`
	OutlineLvl    outlineLvlXML     `xml:"outlineLvl"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  valAttrXML `xml:"ilvl"`
	NumID valAttrXML `xml:"numId"`
}

// valAttrXML is the common {w:val="..."} attribute holder.
type valAttrXML struct {
	Val string `xml:"val,attr"`
}

// justificationXML represents text justification.
type justificationXML struct {
	Val string `xml:"val,attr"` // left, center, right, both
}

// outlineLvlXML represents outline level.
type outlineLvlXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>). Items holds the run's text,
// tab and break children in physical order.
type runXML struct {
	Properties runPropsXML
	Items      []runItemXML
	Embedded   bool // drawing or OLE object present
}

// runItemXML is one ordered run child; exactly one field is set.
type runItemXML struct {
	Text  *textXML
	Tab   bool
	Break *breakXML
}

// UnmarshalXML decodes run children one token at a time: a break
// between two text nodes must stay between them, which field-per-name
// unmarshaling cannot represent.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
			case "t":
				var txt textXML
				if err := d.DecodeElement(&txt, &t); err != nil {
					return err
				}
				r.Items = append(r.Items, runItemXML{Text: &txt})
			case "tab":
				r.Items = append(r.Items, runItemXML{Tab: true})
				if err := d.Skip(); err != nil {
					return err
				}
			case "br":
				var br breakXML
				if err := d.DecodeElement(&br, &t); err != nil {
					return err
				}
				r.Items = append(r.Items, runItemXML{Break: &br})
			case "drawing", "object":
				r.Embedded = true
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// text renders the run's ordered children as plain text. Tabs become
// "\t"; line breaks become "\n", page and column breaks nothing.
func (r runXML) text() string {
	var sb strings.Builder
	for _, it := range r.Items {
		switch {
		case it.Text != nil:
			sb.WriteString(it.Text.Value)
		case it.Tab:
			sb.WriteString("\t")
		case it.Break != nil:
			if it.Break.Type == "" || it.Break.Type == "textWrapping" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold     boolXML    `xml:"b"`
	Italic   boolXML    `xml:"i"`
	FontSize valAttrXML `xml:"sz"`
	Color    valAttrXML `xml:"color"`
}

// boolXML represents a toggled boolean property: presence means true
// unless val says otherwise.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

func (b boolXML) isSet() bool {
	return b.XMLName.Local != "" && b.Val != "false" && b.Val != "0"
}

// textXML represents text content (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"`
	Value   string   `xml:",chardata"`
}

// breakXML represents a break (line or page).
type breakXML struct {
	XMLName xml.Name `xml:"br"`
	Type    string   `xml:"type,attr"` // page, column, textWrapping
}

// hyperlinkXML represents a hyperlink; only the run text matters here.
type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	XMLName xml.Name      `xml:"tbl"`
	Rows    []tableRowXML `xml:"tr"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	XMLName xml.Name       `xml:"tr"`
	Cells   []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	XMLName    xml.Name       `xml:"tc"`
	Paragraphs []paragraphXML `xml:"p"`
}

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	XMLName xml.Name          `xml:"style"`
	Type    string            `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string            `xml:"styleId,attr"`
	Name    valAttrXML        `xml:"name"`
	BasedOn valAttrXML        `xml:"basedOn"`
	PPr     paragraphPropsXML `xml:"pPr"`
}

// numberingXML represents word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string   `xml:"abstractNumId,attr"`
	Levels        []lvlXML `xml:"lvl"`
}

// lvlXML represents a numbering level.
type lvlXML struct {
	ILvl   string     `xml:"ilvl,attr"`
	NumFmt valAttrXML `xml:"numFmt"` // decimal, bullet, lowerLetter, ...
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string     `xml:"numId,attr"`
	AbstractNumID valAttrXML `xml:"abstractNumId"`
}
