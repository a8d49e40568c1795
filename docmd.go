// Package docmd converts between DOCX documents and two lightweight
// textual representations: Markdown and a JSON element list.
//
// Reading extracts a document's structural content (headings,
// paragraphs, lists, tables) and renders it as Markdown or plain text:
//
//	md, err := docmd.Open("report.docx").Markdown()
//	if err != nil {
//	    // handle error
//	}
//
// Writing builds a new document from parsed Markdown or a JSON element
// description, optionally seeded from a template:
//
//	elements := docmd.ParseMarkdown(src)
//	err := docmd.NewBuilder().
//	    Font("Georgia").
//	    HeaderColor("2F5496").
//	    BuildFile(elements, "out.docx")
//
// Conversion is lossy by design: the mapping is structural, not visual.
// For lower-level access the docx, markdown and model packages are also
// available.
package docmd

import (
	"log/slog"

	"github.com/tsawler/docmd/docx"
	"github.com/tsawler/docmd/markdown"
	"github.com/tsawler/docmd/model"
)

// Open opens a DOCX file and returns a Converter for fluent
// configuration. The underlying file is opened, traversed and released
// inside each terminal operation (Blocks, Markdown, Text).
func Open(filename string) *Converter {
	return &Converter{filename: filename}
}

// Converter reads structural content out of one DOCX file.
type Converter struct {
	filename string
	logger   *slog.Logger
}

// Logger sets the diagnostics logger for skipped unsupported content.
func (c *Converter) Logger(l *slog.Logger) *Converter {
	c.logger = l
	return c
}

// Blocks extracts the document's semantic blocks in document order.
func (c *Converter) Blocks() ([]model.Block, error) {
	r, err := docx.Open(c.filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if c.logger != nil {
		r.SetLogger(c.logger)
	}
	return r.Blocks(), nil
}

// Markdown extracts the document and renders it as Markdown.
func (c *Converter) Markdown() (string, error) {
	blocks, err := c.Blocks()
	if err != nil {
		return "", err
	}
	return markdown.Render(blocks), nil
}

// Text extracts the document and renders it as plain text, with no
// Markdown punctuation.
func (c *Converter) Text() (string, error) {
	blocks, err := c.Blocks()
	if err != nil {
		return "", err
	}
	return markdown.RenderText(blocks), nil
}

// ParseMarkdown converts Markdown text into the element sequence the
// builder consumes. Parsing is best-effort and never fails.
func ParseMarkdown(src string) []model.Element {
	return markdown.Parse(src)
}

// ParseJSON decodes and validates the JSON write-path input
// {"elements": [...]}.
func ParseJSON(data []byte) ([]model.Element, error) {
	return model.DecodeElements(data)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	md := docmd.Must(docmd.Open("report.docx").Markdown())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
