package model

// BlockKind identifies the semantic role of a Block.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindTitle
	KindHeading
	KindListItem
	KindTable
)

func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "Paragraph"
	case KindTitle:
		return "Title"
	case KindHeading:
		return "Heading"
	case KindListItem:
		return "ListItem"
	case KindTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Block is the interface for all reader-produced semantic units.
type Block interface {
	Kind() BlockKind
}

// Title is a level-0 heading (the document title).
type Title struct {
	Text string
}

func (t *Title) Kind() BlockKind { return KindTitle }

// Heading is a heading at levels 1-6.
type Heading struct {
	Level int // 1-6
	Text  string
}

func (h *Heading) Kind() BlockKind { return KindHeading }

// Paragraph is a body paragraph.
type Paragraph struct {
	Text string
}

func (p *Paragraph) Kind() BlockKind { return KindParagraph }

// ListItem is a single bulleted or numbered list entry.
type ListItem struct {
	Text    string
	Ordered bool
	Level   int // indentation level, 0-based
}

func (l *ListItem) Kind() BlockKind { return KindListItem }

// Table holds extracted cell text in document order. Rows are
// rectangular: every row has the same width as the first (header) row,
// with short source rows padded by empty cells and long rows truncated.
type Table struct {
	Rows [][]string
}

func (t *Table) Kind() BlockKind { return KindTable }

// Width returns the table's column count (the header row's length).
func (t *Table) Width() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}
