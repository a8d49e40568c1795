package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tsawler/docmd/model"
)

// Options configures a Writer. Defaults are explicit per-Writer values,
// not ambient globals, so writers with different defaults can coexist.
type Options struct {
	// FontFamily is the document default font (default "Calibri").
	FontFamily string `yaml:"font_family" json:"font_family"`

	// HeaderColor is the default table header fill as hex RGB
	// (default "4472C4").
	HeaderColor string `yaml:"header_color" json:"header_color"`

	// Template is an optional existing .docx whose parts (styles,
	// numbering, themes) seed the new document. Its body is replaced.
	Template string `yaml:"template" json:"template"`

	// Logger for diagnostics.
	Logger *slog.Logger `yaml:"-" json:"-"`
}

func (o *Options) defaults() {
	if o.FontFamily == "" {
		o.FontFamily = "Calibri"
	}
	if o.HeaderColor == "" {
		o.HeaderColor = "4472C4"
	}
	o.HeaderColor = normalizeHex(o.HeaderColor)
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

func normalizeHex(s string) string {
	return strings.ToUpper(strings.TrimPrefix(s, "#"))
}

// Writer builds DOCX documents from element sequences.
type Writer struct {
	opts Options
}

// NewWriter creates a Writer with the given options.
func NewWriter(opts Options) *Writer {
	opts.defaults()
	return &Writer{opts: opts}
}

// Document is an assembled in-memory DOCX package. It is owned by the
// build that produced it until serialized.
type Document struct {
	parts []part
}

type part struct {
	name string
	data []byte
}

// WriteTo serializes the package as a ZIP archive.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, p := range d.parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return cw.n, fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return cw.n, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Save writes the package to a file. On failure the partial file is
// removed: a build is atomic at the level of one output path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Build validates the full element sequence and assembles a document.
// Elements are processed strictly in input order. A single invalid
// element aborts the whole build before any content is assembled.
func (w *Writer) Build(elements []model.Element) (*Document, error) {
	if err := model.CheckElements(elements); err != nil {
		return nil, err
	}

	body := buildBody(elements, w.opts)

	if w.opts.Template != "" {
		return w.fromTemplate(body)
	}
	return w.blankPackage(body), nil
}

// BuildFile builds and saves in one step.
func (w *Writer) BuildFile(elements []model.Element, outPath string) error {
	doc, err := w.Build(elements)
	if err != nil {
		return err
	}
	w.opts.Logger.Debug("saving document", "path", outPath, "elements", len(elements))
	return doc.Save(outPath)
}

// blankPackage assembles a minimal OOXML package around the generated
// body: content types, package relationships, document, styles with the
// configured default font, and bullet/decimal numbering definitions.
func (w *Writer) blankPackage(body string) *Document {
	return &Document{parts: []part{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", []byte(documentShell(body))},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesPart(w.opts.FontFamily))},
		{"word/numbering.xml", []byte(numberingPartXML)},
	}}
}

// fromTemplate copies every part of the template package verbatim and
// replaces word/document.xml with the generated body. Template styles,
// numbering and themes are preserved.
func (w *Writer) fromTemplate(body string) (*Document, error) {
	zr, err := zip.OpenReader(w.opts.Template)
	if err != nil {
		return nil, &model.FormatError{Path: w.opts.Template, Err: fmt.Errorf("opening template: %w", err)}
	}
	defer zr.Close()

	doc := &Document{}
	replaced := false
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc.parts = append(doc.parts, part{f.Name, []byte(documentShell(body))})
			replaced = true
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &model.FormatError{Path: w.opts.Template, Err: fmt.Errorf("reading %s: %w", f.Name, err)}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &model.FormatError{Path: w.opts.Template, Err: fmt.Errorf("reading %s: %w", f.Name, err)}
		}
		doc.parts = append(doc.parts, part{f.Name, data})
	}
	if !replaced {
		return nil, &model.FormatError{Path: w.opts.Template, Err: fmt.Errorf("missing required file: word/document.xml")}
	}
	return doc, nil
}
