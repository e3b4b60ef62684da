package scanner

import (
	"context"
	"testing"

	"vakta/patterns"
)

func TestBehavioralScoresPerPattern(t *testing.T) {
	script := []byte("@echo off\nvssadmin delete shadows /all\nschtasks /create /tn updater /tr evil.exe\n")
	fc := writeTestFile(t, "dropper.bat", script)
	b := &behavioralTechnique{set: patterns.Defaults()}

	result, err := b.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score < 2*behaviorMatchWeight {
		t.Fatalf("expected at least two behavior matches (score >= %d), got %d", 2*behaviorMatchWeight, result.Score)
	}
	if len(result.Findings) < 2 {
		t.Fatalf("expected findings per matched pattern, got %+v", result.Findings)
	}

	categories := map[string]bool{}
	for _, f := range result.Findings {
		if f.Engine != "behavioral_analysis" {
			t.Fatalf("unexpected engine %s", f.Engine)
		}
		if f.Pattern == "" || f.Category == "" {
			t.Fatalf("finding must name category and pattern: %+v", f)
		}
		categories[f.Category] = true
	}
	if !categories[patterns.CategoryFilesystemTampering] || !categories[patterns.CategoryRegistryPersistence] {
		t.Fatalf("expected tampering and persistence categories, got %v", categories)
	}
}

func TestBehavioralTolerantDecode(t *testing.T) {
	// Broken bytes around an indicator must not hide it.
	content := append([]byte{0xff, 0xfe, 0x81}, []byte(" vssadmin delete shadows ")...)
	content = append(content, 0xff)
	fc := writeTestFile(t, "mixed.bin", content)
	b := &behavioralTechnique{set: patterns.Defaults()}

	result, err := b.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score < behaviorMatchWeight {
		t.Fatalf("expected indicator despite invalid bytes, got score %d", result.Score)
	}
}

func TestBehavioralCleanFile(t *testing.T) {
	fc := writeTestFile(t, "clean.sh", []byte("#!/bin/sh\necho hello\n"))
	b := &behavioralTechnique{set: patterns.Defaults()}

	result, err := b.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score != 0 || len(result.Findings) != 0 {
		t.Fatalf("clean script should not score, got %+v", result)
	}
}
