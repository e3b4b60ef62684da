package scanner

import (
	"context"
	"strings"
	"testing"

	"vakta/patterns"
)

func TestExeHeaderSkipsNonExecutable(t *testing.T) {
	fc := writeTestFile(t, "notes.txt", []byte("CreateRemoteThread mentioned in prose"))
	e := &exeHeaderTechnique{set: patterns.Defaults()}

	result, err := e.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("non-MZ file must not score, got %d", result.Score)
	}
	if skipped, _ := result.Data["skipped"].(bool); !skipped {
		t.Fatalf("expected skip marker, got %+v", result.Data)
	}
}

func TestExeHeaderAPIReferences(t *testing.T) {
	content := []byte("MZ\x90\x00 CreateRemoteThread VirtualAllocEx padding")
	fc := writeTestFile(t, "dropper.exe", content)
	e := &exeHeaderTechnique{set: patterns.Defaults()}

	result, err := e.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score != 2*apiReferenceWeight {
		t.Fatalf("expected score %d for two API references, got %d", 2*apiReferenceWeight, result.Score)
	}
	refs, _ := result.Data["api_references"].([]string)
	if len(refs) != 2 {
		t.Fatalf("expected two api references, got %v", refs)
	}
}

func TestExeHeaderPackedEntropy(t *testing.T) {
	// A full byte cycle pushes whole-file entropy toward 8 bits.
	content := []byte("MZ")
	for i := 0; i < 64; i++ {
		for b := 0; b < 256; b++ {
			content = append(content, byte(b))
		}
	}
	fc := writeTestFile(t, "packed.exe", content)
	e := &exeHeaderTechnique{set: patterns.Defaults()}

	result, err := e.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score != packedEntropyWeight {
		t.Fatalf("expected packed-entropy score %d, got %d", packedEntropyWeight, result.Score)
	}
	indicators, _ := result.Data["indicators"].([]string)
	found := false
	for _, ind := range indicators {
		if strings.Contains(ind, "possibly packed") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected packed indicator, got %v", indicators)
	}
}

func TestExeHeaderCryptoIndicator(t *testing.T) {
	content := []byte("MZ\x90\x00 hunting for wallet.dat backups")
	fc := writeTestFile(t, "stealer.exe", content)
	e := &exeHeaderTechnique{set: patterns.Defaults()}

	result, err := e.Analyze(context.Background(), fc)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Score != cryptoInPrefixWeight {
		t.Fatalf("expected crypto-indicator score %d, got %d", cryptoInPrefixWeight, result.Score)
	}
	indicators, _ := result.Data["indicators"].([]string)
	if len(indicators) != 1 || !strings.Contains(indicators[0], "crypto indicator") {
		t.Fatalf("expected crypto indicator, got %v", indicators)
	}
}
