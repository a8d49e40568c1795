package format

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// writeZip writes a ZIP file containing the named (empty) entries.
func writeZip(t *testing.T, path string, entries ...string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for _, name := range entries {
		if _, err := zw.Create(name); err != nil {
			t.Fatalf("creating entry %s: %v", name, err)
		}
	}
	zw.Close()
	f.Close()
}

func TestDetect(t *testing.T) {
	tmpDir := t.TempDir()

	docxPath := filepath.Join(tmpDir, "doc.docx")
	writeZip(t, docxPath, "[Content_Types].xml", "word/document.xml")

	zipPath := filepath.Join(tmpDir, "archive.zip")
	writeZip(t, zipPath, "readme.txt")

	olePath := filepath.Join(tmpDir, "legacy.doc")
	os.WriteFile(olePath, append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, 0, 0), 0644)

	mdPath := filepath.Join(tmpDir, "notes.md")
	os.WriteFile(mdPath, []byte("# hello"), 0644)

	jsonExtPath := filepath.Join(tmpDir, "data.json")
	os.WriteFile(jsonExtPath, []byte("not json at all"), 0644)

	jsonSniffPath := filepath.Join(tmpDir, "data.txt")
	os.WriteFile(jsonSniffPath, []byte(`{"elements": []}`), 0644)

	mdSniffPath := filepath.Join(tmpDir, "plain.txt")
	os.WriteFile(mdSniffPath, []byte("just words"), 0644)

	emptyPath := filepath.Join(tmpDir, "empty.txt")
	os.WriteFile(emptyPath, nil, 0644)

	tests := []struct {
		name string
		path string
		want Format
	}{
		{"docx archive", docxPath, DOCX},
		{"plain zip is not docx", zipPath, Unknown},
		{"legacy ole doc", olePath, DOC},
		{"markdown extension", mdPath, Markdown},
		{"json extension wins over content", jsonExtPath, JSON},
		{"json sniffed from content", jsonSniffPath, JSON},
		{"text defaults to markdown", mdSniffPath, Markdown},
		{"empty file", emptyPath, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.path)
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetect_NotFound(t *testing.T) {
	if _, err := Detect("/nonexistent/file"); err == nil {
		t.Error("Detect() should return error for missing file")
	}
}

func TestDetectBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"empty", nil, Unknown},
		{"ole prefix", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 1, 2}, DOC},
		{"json object", []byte(`{"elements": []}`), JSON},
		{"json array", []byte(`[1, 2]`), JSON},
		{"json after whitespace", []byte("\n\t {\"a\": 1}"), JSON},
		{"json after bom", []byte("\uFEFF{\"a\": 1}"), JSON},
		{"markdown text", []byte("# heading\n\nbody"), Markdown},
		{"plain prose", []byte("hello world"), Markdown},
		{"truncated zip", []byte("PK\x03\x04junk"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectBytes(tt.data); got != tt.want {
				t.Errorf("DetectBytes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	values := map[Format]string{
		Unknown:  "Unknown",
		DOCX:     "DOCX",
		DOC:      "DOC",
		Markdown: "Markdown",
		JSON:     "JSON",
	}
	for f, want := range values {
		if f.String() != want {
			t.Errorf("Format(%d).String() = %q, want %q", int(f), f.String(), want)
		}
	}
}
