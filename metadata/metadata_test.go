package metadata

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []string{
		"image/jpeg",
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-word.document.macroenabled.12",
		"unknown",
	}
	for _, mime := range cases {
		meta := Extract("", mime, 1024)
		if meta == nil {
			t.Fatalf("metadata map nil for %s", mime)
		}
	}
}

func writeZip(t *testing.T, name string, entries map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	for entry, body := range entries {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("zip create %s: %v", entry, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", entry, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return p
}

func TestMacroPayload(t *testing.T) {
	withMacro := writeZip(t, "doc.docm", map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   "<doc/>",
		"word/vbaProject.bin": "\x01\x02\x03",
	})
	found, entry := MacroPayload(withMacro)
	if !found || entry != "word/vbaProject.bin" {
		t.Fatalf("macro not detected: %v %q", found, entry)
	}

	clean := writeZip(t, "doc.docx", map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   "<doc/>",
	})
	if found, _ := MacroPayload(clean); found {
		t.Fatal("false macro detection")
	}

	if found, _ := MacroPayload(filepath.Join(t.TempDir(), "missing.docx")); found {
		t.Fatal("macro detection on missing file")
	}
}

func TestOfficeProps(t *testing.T) {
	core := `<?xml version="1.0"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
 xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Quarterly Report</dc:title>
  <dc:creator>finance</dc:creator>
</cp:coreProperties>`
	p := writeZip(t, "report.docx", map[string]string{
		"docProps/core.xml": core,
		"word/document.xml": "<doc/>",
	})
	meta := officeProps(p, 1<<20)
	if meta["title"] != "Quarterly Report" {
		t.Fatalf("title = %v", meta["title"])
	}
	if meta["creator"] != "finance" {
		t.Fatalf("creator = %v", meta["creator"])
	}
}
