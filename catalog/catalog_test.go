package catalog

import (
	"testing"

	"vakta/classify"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestCatalogShape(t *testing.T) {
	c := mustCatalog(t)

	runnable, descriptive := 0, 0
	for _, e := range c.Engines() {
		if e.Runnable() {
			runnable++
		} else {
			descriptive++
		}
	}
	if runnable < 7 {
		t.Fatalf("runnable engines = %d, want >= 7", runnable)
	}
	if descriptive < 100 {
		t.Fatalf("descriptive engines = %d, want >= 100", descriptive)
	}
	if c.Len() != runnable+descriptive {
		t.Fatalf("len mismatch: %d vs %d", c.Len(), runnable+descriptive)
	}
}

func TestDescriptorMetadata(t *testing.T) {
	for _, e := range mustCatalog(t).Engines() {
		if e.ID == "" || e.Name == "" {
			t.Fatalf("engine with empty identity: %+v", e)
		}
		if e.Accuracy < 0 || e.Accuracy > 1 {
			t.Fatalf("%s: accuracy %f out of range", e.ID, e.Accuracy)
		}
		if e.FPRate < 0 || e.FPRate > 1 {
			t.Fatalf("%s: fp rate %f out of range", e.ID, e.FPRate)
		}
		switch e.Cost {
		case CostLow, CostMedium, CostHigh:
		default:
			t.Fatalf("%s: bad cost %q", e.ID, e.Cost)
		}
		if len(e.Levels) == 0 {
			t.Fatalf("%s: no supported levels", e.ID)
		}
	}
}

func TestSelectionPrefixProperty(t *testing.T) {
	c := mustCatalog(t)
	for _, fc := range classify.Categories() {
		medium := c.EnginesFor(fc, ThreatMedium)
		low := c.EnginesFor(fc, ThreatLow)
		high := c.EnginesFor(fc, ThreatHigh)
		critical := c.EnginesFor(fc, ThreatCritical)

		count := c.Rule(fc).Count
		wantLow := count / 2
		if wantLow < 3 {
			wantLow = 3
		}
		if wantLow > count {
			wantLow = count
		}
		if len(low) != wantLow {
			t.Fatalf("%s: low len = %d, want %d", fc, len(low), wantLow)
		}
		for i, id := range low {
			if medium[i] != id {
				t.Fatalf("%s: low is not a prefix of medium at %d (%s vs %s)", fc, i, id, medium[i])
			}
		}
		if len(high) != len(medium) || len(critical) != len(medium) {
			t.Fatalf("%s: high/critical must equal medium", fc)
		}
		for i := range medium {
			if high[i] != medium[i] || critical[i] != medium[i] {
				t.Fatalf("%s: high/critical diverge from medium at %d", fc, i)
			}
		}
		if len(medium) > count {
			t.Fatalf("%s: medium len %d exceeds nominal count %d", fc, len(medium), count)
		}
	}
}

func TestUnmappedCategoryUsesUnknownRule(t *testing.T) {
	c := mustCatalog(t)
	odd := classify.Category(999)
	got := c.EnginesFor(odd, ThreatMedium)
	want := c.EnginesFor(classify.Unknown, ThreatMedium)
	if len(got) != len(want) {
		t.Fatalf("len %d != %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("mismatch at %d: %s vs %s", i, got[i], want[i])
		}
	}
}

func TestRulesStartCheap(t *testing.T) {
	c := mustCatalog(t)
	for _, fc := range classify.Categories() {
		ids := c.EnginesFor(fc, ThreatMedium)
		if len(ids) == 0 || ids[0] != "signature_scan" {
			t.Fatalf("%s: selection must lead with signature_scan, got %v", fc, ids)
		}
	}
}

func TestFallbackEngines(t *testing.T) {
	var nilCat *Catalog
	got := nilCat.EnginesFor(classify.Executable, ThreatCritical)
	if len(got) != 5 {
		t.Fatalf("fallback len = %d", len(got))
	}
	c := mustCatalog(t)
	for _, id := range FallbackEngines() {
		if _, ok := c.Engine(id); !ok {
			t.Fatalf("fallback id %q not in catalog", id)
		}
	}
}

func TestSelectionResultIsCopy(t *testing.T) {
	c := mustCatalog(t)
	first := c.EnginesFor(classify.Text, ThreatMedium)
	first[0] = "tampered"
	again := c.EnginesFor(classify.Text, ThreatMedium)
	if again[0] != "signature_scan" {
		t.Fatal("selection result shares catalog state")
	}
}

func TestDescriptiveEntriesHaveNoTechnique(t *testing.T) {
	c := mustCatalog(t)
	e, ok := c.Engine("final_verification")
	if !ok {
		t.Fatal("final_verification missing")
	}
	if e.Runnable() {
		t.Fatal("final_verification must be descriptive-only")
	}
	sig, ok := c.Engine("signature_scan")
	if !ok || !sig.Runnable() || sig.Technique != TechSignature {
		t.Fatalf("signature_scan: %+v", sig)
	}
}

func TestParseThreatLevel(t *testing.T) {
	cases := map[string]ThreatLevel{
		"":         ThreatMedium,
		"low":      ThreatLow,
		"MEDIUM":   ThreatMedium,
		"High ":    ThreatHigh,
		"critical": ThreatCritical,
	}
	for in, want := range cases {
		got, err := ParseThreatLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseThreatLevel(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseThreatLevel("extreme"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
