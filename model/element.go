package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ElementType discriminates the Element variants of the write-path schema.
type ElementType string

const (
	TypeTitle         ElementType = "title"
	TypeHeading       ElementType = "heading"
	TypeParagraph     ElementType = "paragraph"
	TypeTable         ElementType = "table"
	TypeKeyValueTable ElementType = "key_value_table"
	TypeList          ElementType = "list"
	TypePageBreak     ElementType = "page_break"
	TypeEmptyLines    ElementType = "empty_lines"
)

// Alignment values accepted on paragraph elements.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Element is one entry of the writer's input sequence. Type selects the
// variant; the remaining fields are read per variant and ignored
// otherwise. Unknown JSON keys are discarded on decode.
type Element struct {
	Type ElementType `json:"type" validate:"required"`

	// title, heading, paragraph
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"` // clamped to 1-6 by the writer; 0 behaves as title

	// paragraph styling
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Alignment string  `json:"alignment,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"` // points
	Color     string  `json:"color,omitempty"`     // hex RGB, with or without leading '#'

	// table
	Headers     []string   `json:"headers,omitempty"`
	Rows        [][]string `json:"rows,omitempty"`
	HeaderColor string     `json:"header_color,omitempty"` // header row fill, hex RGB

	// key_value_table: ordered [key, value] pairs
	Data [][2]string `json:"data,omitempty"`

	// list
	Items   []string `json:"items,omitempty"`
	Ordered bool     `json:"ordered,omitempty"`

	// empty_lines
	Count int `json:"count,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(elementStructLevel, Element{})
	return v
}

// elementStructLevel enforces the per-variant required fields and value
// ranges that field tags alone cannot express.
func elementStructLevel(sl validator.StructLevel) {
	el := sl.Current().Interface().(Element)

	switch el.Type {
	case TypeTitle, TypeHeading:
		if el.Text == "" {
			sl.ReportError(el.Text, "text", "Text", "required", "")
		}
	case TypeParagraph:
		// text may be empty; an empty paragraph is valid content
	case TypeTable:
		if len(el.Headers) == 0 {
			sl.ReportError(el.Headers, "headers", "Headers", "required", "")
		}
		if el.HeaderColor != "" && !validHexColor(el.HeaderColor) {
			sl.ReportError(el.HeaderColor, "header_color", "HeaderColor", "hexcolor", "")
		}
	case TypeKeyValueTable:
		if len(el.Data) == 0 {
			sl.ReportError(el.Data, "data", "Data", "required", "")
		}
	case TypeList:
		if len(el.Items) == 0 {
			sl.ReportError(el.Items, "items", "Items", "required", "")
		}
	case TypePageBreak:
	case TypeEmptyLines:
		if el.Count < 1 {
			sl.ReportError(el.Count, "count", "Count", "min", "1")
		}
	case "":
		// caught by the required tag on Type
	default:
		sl.ReportError(el.Type, "type", "Type", "oneof", "")
	}

	if el.Alignment != "" && !validAlignment(el.Alignment) {
		sl.ReportError(el.Alignment, "alignment", "Alignment", "oneof", "")
	}
	if el.Color != "" && !validHexColor(el.Color) {
		sl.ReportError(el.Color, "color", "Color", "hexcolor", "")
	}
}

func validAlignment(s string) bool {
	switch s {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}

func validHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// CheckElements validates a full element sequence before any content is
// built. The first failing element aborts with a *ValidationError naming
// its index and field.
func CheckElements(elements []Element) error {
	for i, el := range elements {
		if err := validate.Struct(el); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				fe := verrs[0]
				return &ValidationError{
					Index: i,
					Field: fe.Field(),
					Msg:   validationMessage(fe.Tag()),
				}
			}
			return &ValidationError{Index: i, Msg: err.Error()}
		}
	}
	return nil
}

func validationMessage(tag string) string {
	switch tag {
	case "required":
		return "missing required field"
	case "oneof":
		return "value not in allowed set"
	case "min":
		return "value below minimum"
	case "hexcolor":
		return "not a hex RGB color"
	default:
		return "invalid value"
	}
}

// elementsDoc is the top-level JSON write-path input shape. The pointer
// distinguishes a missing "elements" key from an empty array.
type elementsDoc struct {
	Elements *[]Element `json:"elements"`
}

// DecodeElements parses the JSON write-path input {"elements": [...]} and
// validates every element. An empty elements array is valid and yields an
// empty (nil-safe) slice; a document without the "elements" key is a
// Validation error naming the key.
func DecodeElements(data []byte) ([]Element, error) {
	var doc elementsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Index: -1, Msg: "invalid JSON: " + err.Error()}
	}
	if doc.Elements == nil {
		return nil, &ValidationError{Index: -1, Field: "elements", Msg: "missing required key"}
	}
	if err := CheckElements(*doc.Elements); err != nil {
		return nil, err
	}
	return *doc.Elements, nil
}

// ClampLevel clamps a heading level into the valid 1-6 range. Level 0 is
// the caller's signal for title styling and is clamped to 1 here only
// when the caller asks for a heading anyway.
func ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
