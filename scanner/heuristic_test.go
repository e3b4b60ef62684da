package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vakta/patterns"
)

func writeTestFile(t *testing.T, name string, content []byte) *FileContext {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	return newFileContext(path, info.Size(), 0, nil)
}

func TestHeuristicProbabilityBoundary(t *testing.T) {
	cases := []struct{ raw, want int }{
		{0, 0},
		{25, 25},
		{50, 50},
		{51, 95},
		{100, 95},
		{500, 95},
	}
	for _, tc := range cases {
		if got := HeuristicProbability(tc.raw); got != tc.want {
			t.Errorf("HeuristicProbability(%d) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestHeuristicCryptoAndSizeAnomaly(t *testing.T) {
	fc := writeTestFile(t, "note.txt", []byte("my wallet.dat backup"))
	h := &heuristicTechnique{set: patterns.Defaults()}

	result, err := h.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	// wallet.dat crypto indicator (+10) plus small-file anomaly (+15).
	if result.Score < 25 {
		t.Fatalf("expected score >= 25, got %d", result.Score)
	}
	if result.Data["threat_probability"].(int) != HeuristicProbability(result.Score) {
		t.Fatalf("probability does not follow raw score: %v", result.Data)
	}
}

func TestHeuristicSkipsBinaryMedia(t *testing.T) {
	fc := writeTestFile(t, "image.png", []byte("wallet.dat wallet.dat wallet.dat"))
	h := &heuristicTechnique{set: patterns.Defaults()}

	result, err := h.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("binary media must not score, got %d", result.Score)
	}
	if result.Data["skipped"] != true {
		t.Fatalf("expected skipped marker, got %v", result.Data)
	}
}

func TestHeuristicSkipsInvalidUTF8(t *testing.T) {
	fc := writeTestFile(t, "blob.txt", []byte{0xff, 0xfe, 0x00, 0x81, 0xff})
	h := &heuristicTechnique{set: patterns.Defaults()}

	result, err := h.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score != 0 || result.Data["skipped"] != true {
		t.Fatalf("invalid utf-8 should skip, got %+v", result)
	}
}

func TestHeuristicFindingOnlyAboveBand(t *testing.T) {
	// One crypto hit on a large file: +10, inside the pass-through band.
	large := []byte("wallet.dat " + strings.Repeat("padding text here ", 100))
	fc := writeTestFile(t, "large.txt", large)
	h := &heuristicTechnique{set: patterns.Defaults()}

	result, err := h.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score > 50 {
		t.Skipf("fixture unexpectedly scored %d, cannot test the quiet band", result.Score)
	}
	if len(result.Findings) != 0 {
		t.Fatalf("no finding expected at probability <= 50, got %+v", result.Findings)
	}
}

func TestHeuristicEmptyFile(t *testing.T) {
	fc := writeTestFile(t, "empty.txt", nil)
	h := &heuristicTechnique{set: patterns.Defaults()}

	result, err := h.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score != 0 || result.Data["skipped"] != true {
		t.Fatalf("empty file should skip, got %+v", result)
	}
}
