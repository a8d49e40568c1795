package docmd

import (
	"log/slog"

	"github.com/tsawler/docmd/docx"
	"github.com/tsawler/docmd/model"
)

// Builder assembles DOCX documents from element sequences. Each Builder
// carries its own defaults, so builders with different fonts or header
// colors can coexist.
type Builder struct {
	opts docx.Options
}

// NewBuilder creates a Builder with default options (Calibri, header
// fill 4472C4, blank base document).
func NewBuilder() *Builder {
	return &Builder{}
}

// WithOptions replaces the builder's options wholesale, e.g. with a
// configuration loaded from YAML.
func (b *Builder) WithOptions(opts docx.Options) *Builder {
	b.opts = opts
	return b
}

// Template seeds the build from an existing document's styling.
func (b *Builder) Template(path string) *Builder {
	b.opts.Template = path
	return b
}

// Font sets the document default font family.
func (b *Builder) Font(family string) *Builder {
	b.opts.FontFamily = family
	return b
}

// HeaderColor sets the default table header fill (hex RGB).
func (b *Builder) HeaderColor(hex string) *Builder {
	b.opts.HeaderColor = hex
	return b
}

// Logger sets the diagnostics logger.
func (b *Builder) Logger(l *slog.Logger) *Builder {
	b.opts.Logger = l
	return b
}

// Build validates the elements and assembles an in-memory document.
func (b *Builder) Build(elements []model.Element) (*docx.Document, error) {
	return docx.NewWriter(b.opts).Build(elements)
}

// BuildFile builds and saves the document in one step. No partial file
// is left behind on failure.
func (b *Builder) BuildFile(elements []model.Element, outPath string) error {
	return docx.NewWriter(b.opts).BuildFile(elements, outPath)
}
