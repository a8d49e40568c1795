// Package format provides input format detection for the docmd library.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates an Office Open XML word-processing document.
	DOCX
	// DOC indicates the legacy binary Word format (not supported).
	DOC
	// Markdown indicates Markdown text.
	Markdown
	// JSON indicates a JSON element description.
	JSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case Markdown:
		return "Markdown"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// oleMagic is the OLE compound file signature used by legacy .doc files.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Detect determines a file's format from its content, falling back to
// the extension for text formats. ZIP archives count as DOCX only when
// they carry the word/document.xml part.
func Detect(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}

	magic := make([]byte, 8)
	n, err := f.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, oleMagic) {
		return DOC, nil
	}
	if bytes.HasPrefix(magic, []byte("PK\x03\x04")) {
		return detectZIPFormat(f, info.Size())
	}

	return detectTextFormat(filename, magic), nil
}

// DetectBytes determines the format of in-memory content.
func DetectBytes(data []byte) Format {
	if bytes.HasPrefix(data, oleMagic) {
		return DOC
	}
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		f, err := detectZIPFormat(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return Unknown
		}
		return f
	}
	return sniffText(data)
}

// detectZIPFormat inspects a ZIP archive for the DOCX main part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return DOCX, nil
		}
	}
	return Unknown, nil
}

// detectTextFormat resolves Markdown vs JSON for text content,
// preferring the extension and falling back to a content sniff.
func detectTextFormat(filename string, magic []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return Markdown
	case ".json":
		return JSON
	case ".doc":
		// Extension claims legacy Word but the magic disagreed;
		// treat as unrecognized rather than guessing.
		return Unknown
	}
	return sniffText(magic)
}

// sniffText classifies text content: a leading '{' or '[' reads as
// JSON, anything else as Markdown.
func sniffText(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return JSON
	}
	if len(data) == 0 {
		return Unknown
	}
	return Markdown
}
