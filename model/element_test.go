package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeElements(t *testing.T) {
	data := []byte(`{
		"elements": [
			{"type": "title", "text": "Report"},
			{"type": "heading", "level": 2, "text": "Intro"},
			{"type": "paragraph", "text": "Hello", "bold": true},
			{"type": "table", "headers": ["a", "b"], "rows": [["1", "2"]]},
			{"type": "key_value_table", "data": [["k", "v"]]},
			{"type": "list", "items": ["x", "y"], "ordered": true},
			{"type": "page_break"},
			{"type": "empty_lines", "count": 2}
		]
	}`)

	elements, err := DecodeElements(data)
	require.NoError(t, err)
	require.Len(t, elements, 8)

	assert.Equal(t, TypeTitle, elements[0].Type)
	assert.Equal(t, "Report", elements[0].Text)
	assert.Equal(t, 2, elements[1].Level)
	assert.True(t, elements[2].Bold)
	assert.Equal(t, [][]string{{"1", "2"}}, elements[3].Rows)
	assert.Equal(t, [][2]string{{"k", "v"}}, elements[4].Data)
	assert.True(t, elements[5].Ordered)
	assert.Equal(t, 2, elements[7].Count)
}

func TestDecodeElements_MissingKey(t *testing.T) {
	_, err := DecodeElements([]byte(`{"items": []}`))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, -1, verr.Index)
	assert.Equal(t, "elements", verr.Field)
}

func TestDecodeElements_EmptyArray(t *testing.T) {
	elements, err := DecodeElements([]byte(`{"elements": []}`))
	require.NoError(t, err)
	assert.Empty(t, elements)
}

func TestDecodeElements_InvalidJSON(t *testing.T) {
	_, err := DecodeElements([]byte(`{"elements": [`))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, -1, verr.Index)
}

func TestDecodeElements_UnknownKeysIgnored(t *testing.T) {
	elements, err := DecodeElements([]byte(`{
		"elements": [{"type": "paragraph", "text": "x", "wobble": 7}]
	}`))
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, "x", elements[0].Text)
}

func TestCheckElements(t *testing.T) {
	tests := []struct {
		name    string
		element Element
		field   string // "" means valid
	}{
		{"valid title", Element{Type: TypeTitle, Text: "T"}, ""},
		{"title without text", Element{Type: TypeTitle}, "text"},
		{"heading without text", Element{Type: TypeHeading, Level: 1}, "text"},
		{"paragraph empty text ok", Element{Type: TypeParagraph}, ""},
		{"table without headers", Element{Type: TypeTable, Rows: [][]string{{"1"}}}, "headers"},
		{"table bad header color", Element{Type: TypeTable, Headers: []string{"a"}, HeaderColor: "red"}, "header_color"},
		{"key value table without data", Element{Type: TypeKeyValueTable}, "data"},
		{"list without items", Element{Type: TypeList}, "items"},
		{"empty lines zero count", Element{Type: TypeEmptyLines}, "count"},
		{"missing type", Element{Text: "x"}, "type"},
		{"unknown type", Element{Type: "chart"}, "type"},
		{"bad alignment", Element{Type: TypeParagraph, Text: "x", Alignment: "middle"}, "alignment"},
		{"bad color", Element{Type: TypeParagraph, Text: "x", Color: "zzz"}, "color"},
		{"color with hash ok", Element{Type: TypeParagraph, Text: "x", Color: "#AABBCC"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckElements([]Element{tt.element})
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, 0, verr.Index)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCheckElements_ReportsIndex(t *testing.T) {
	err := CheckElements([]Element{
		{Type: TypeParagraph, Text: "ok"},
		{Type: TypeParagraph, Text: "ok"},
		{Type: TypeList},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 2, verr.Index)
}

func TestClampLevel(t *testing.T) {
	assert.Equal(t, 1, ClampLevel(0))
	assert.Equal(t, 1, ClampLevel(-3))
	assert.Equal(t, 4, ClampLevel(4))
	assert.Equal(t, 6, ClampLevel(9))
}
