package scanner

import (
	"bytes"
	"os"
	"testing"
)

func TestFileContextContentTruncation(t *testing.T) {
	content := bytes.Repeat([]byte{'a'}, contentReadLimit+4096)
	fc := writeTestFile(t, "big.txt", content)

	got, err := fc.Content()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if len(got) != contentReadLimit {
		t.Fatalf("expected %d bytes, got %d", contentReadLimit, len(got))
	}

	prefix, err := fc.Prefix()
	if err != nil {
		t.Fatalf("prefix: %v", err)
	}
	if len(prefix) != prefixReadLimit {
		t.Fatalf("expected %d-byte prefix, got %d", prefixReadLimit, len(prefix))
	}
}

func TestFileContextSmallFile(t *testing.T) {
	fc := writeTestFile(t, "small.txt", []byte("hello"))

	content, err := fc.Content()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	prefix, err := fc.Prefix()
	if err != nil {
		t.Fatalf("prefix: %v", err)
	}
	if !bytes.Equal(content, prefix) {
		t.Fatalf("prefix of a small file should equal content")
	}
}

func TestFileContextMimeType(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	fc := writeTestFile(t, "pic.png", pngMagic)
	if mime := fc.MimeType(); mime != "image/png" {
		t.Fatalf("expected image/png, got %s", mime)
	}

	text := writeTestFile(t, "plain.txt", []byte("just some words\n"))
	if mime := text.MimeType(); mime == "" || mime == "application/octet-stream" {
		t.Fatalf("text file should sniff to a text type, got %s", mime)
	}

	empty := writeTestFile(t, "empty.bin", nil)
	if mime := empty.MimeType(); mime != "application/octet-stream" {
		t.Fatalf("empty file should default to octet-stream, got %s", mime)
	}
}

func TestFileContextEntropyCached(t *testing.T) {
	fc := writeTestFile(t, "doomed.txt", []byte("some content"))

	first, err := fc.Entropy()
	if err != nil {
		t.Fatalf("entropy: %v", err)
	}
	if err := os.Remove(fc.Path()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	second, err := fc.Entropy()
	if err != nil {
		t.Fatalf("cached entropy should not re-read: %v", err)
	}
	if first != second {
		t.Fatalf("cached entropy changed: %f vs %f", first, second)
	}
}
