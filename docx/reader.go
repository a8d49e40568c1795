// Package docx provides DOCX (Office Open XML) container handling: a
// structural reader that extracts semantic blocks, and a writer that
// builds documents from element sequences.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tsawler/docmd/format"
	"github.com/tsawler/docmd/model"
)

// Reader provides access to DOCX document content.
type Reader struct {
	path      string
	zipReader *zip.ReadCloser
	document  *documentXML
	styles    *stylesXML
	numbering *numberingXML
	classify  *classifier
	logger    *slog.Logger
}

// Open opens a DOCX file for reading. Corrupt archives, missing required
// parts and legacy binary .doc files are rejected with a
// *model.FormatError before any content is produced.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		if f, ferr := format.Detect(filename); ferr == nil && f == format.DOC {
			return nil, &model.FormatError{Path: filename, Err: errors.New("legacy binary .doc format is not supported")}
		}
		return nil, &model.FormatError{Path: filename, Err: fmt.Errorf("opening ZIP archive: %w", err)}
	}

	r := &Reader{
		path:      filename,
		zipReader: zr,
		logger:    slog.Default(),
	}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, &model.FormatError{Path: filename, Err: err}
	}

	if err := r.parseDocument(); err != nil {
		zr.Close()
		return nil, &model.FormatError{Path: filename, Err: fmt.Errorf("parsing document: %w", err)}
	}

	// Styles and numbering are optional parts; heading and list
	// classification degrades without them.
	r.parseStyles()
	r.parseNumbering()

	r.classify = newClassifier(r.styles, r.numbering)

	return r, nil
}

// SetLogger replaces the diagnostics logger (default slog.Default()).
// Only skipped unsupported content is reported, at debug level.
func (r *Reader) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required DOCX parts exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a part from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	return nil
}

// parseStyles parses the styles definition part, if present.
func (r *Reader) parseStyles() {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return
	}
	styles := &stylesXML{}
	if xml.Unmarshal(data, styles) == nil {
		r.styles = styles
	}
}

// parseNumbering parses the numbering definitions part, if present.
func (r *Reader) parseNumbering() {
	data, err := r.getFileContent("word/numbering.xml")
	if err != nil {
		return
	}
	numbering := &numberingXML{}
	if xml.Unmarshal(data, numbering) == nil {
		r.numbering = numbering
	}
}

// Blocks traverses the document body in physical order and returns the
// extracted semantic blocks. The result is a plain slice: traversal is
// whole-document and restartable, and repeated calls on an unmodified
// reader return equal results.
func (r *Reader) Blocks() []model.Block {
	if r.document == nil || r.document.Body == nil {
		return nil
	}

	var blocks []model.Block
	for _, el := range r.document.Body.Elements {
		switch {
		case el.Paragraph != nil:
			if b := r.paragraphBlock(el.Paragraph); b != nil {
				blocks = append(blocks, b)
			}
		case el.Table != nil:
			if t := extractTable(el.Table); len(t.Rows) > 0 {
				blocks = append(blocks, t)
			}
		}
	}
	return blocks
}

// paragraphBlock converts one paragraph into its semantic block, or nil
// for empty paragraphs.
func (r *Reader) paragraphBlock(p *paragraphXML) model.Block {
	text := r.paragraphText(p)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	switch cl := r.classify.classify(p); cl.Kind {
	case model.KindTitle:
		return &model.Title{Text: text}
	case model.KindHeading:
		return &model.Heading{Level: cl.Level, Text: text}
	case model.KindListItem:
		return &model.ListItem{Text: text, Ordered: cl.Ordered, Level: cl.Level}
	default:
		return &model.Paragraph{Text: text}
	}
}

// paragraphText extracts the combined run text of a paragraph. Runs
// already carry hyperlink runs inlined in document order. Unsupported
// embedded content is skipped.
func (r *Reader) paragraphText(p *paragraphXML) string {
	var sb strings.Builder
	for _, run := range p.Runs {
		if run.Embedded {
			r.logger.Debug("skipping unsupported embedded content", "path", r.path)
		}
		sb.WriteString(run.text())
	}
	return sb.String()
}
