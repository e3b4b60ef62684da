// Package catalog holds the engine registry and the per-category engine
// selection policy. The catalog is built once at startup and is read-only
// afterwards; it is safe to share across concurrent scans.
package catalog

import (
	"fmt"
	"strings"

	"vakta/classify"
)

// ThreatLevel is the caller-supplied scrutiny knob. It scales how many
// selected engines run and is distinct from the classification a scan
// produces.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "low"
	ThreatMedium   ThreatLevel = "medium"
	ThreatHigh     ThreatLevel = "high"
	ThreatCritical ThreatLevel = "critical"
)

func Levels() []ThreatLevel {
	return []ThreatLevel{ThreatLow, ThreatMedium, ThreatHigh, ThreatCritical}
}

// ParseThreatLevel normalizes a user-supplied level string. Empty input
// means the default, medium; anything unrecognized is an error.
func ParseThreatLevel(s string) (ThreatLevel, error) {
	switch ThreatLevel(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ThreatMedium, nil
	case ThreatLow:
		return ThreatLow, nil
	case ThreatMedium:
		return ThreatMedium, nil
	case ThreatHigh:
		return ThreatHigh, nil
	case ThreatCritical:
		return ThreatCritical, nil
	default:
		return "", fmt.Errorf("unknown threat level %q", s)
	}
}

// EngineCategory groups engines by analysis discipline.
type EngineCategory string

const (
	CatSignature   EngineCategory = "signature"
	CatHeuristic   EngineCategory = "heuristic"
	CatBehavioral  EngineCategory = "behavioral"
	CatStatic      EngineCategory = "static"
	CatDynamic     EngineCategory = "dynamic"
	CatAIML        EngineCategory = "ai_ml"
	CatCloud       EngineCategory = "cloud"
	CatSpecialized EngineCategory = "specialized"
	CatMetadata    EngineCategory = "metadata"
	CatContent     EngineCategory = "content"
	CatNetwork     EngineCategory = "network"
	CatMobile      EngineCategory = "mobile"
	CatEmail       EngineCategory = "email"
	CatWeb         EngineCategory = "web"
	CatIoT         EngineCategory = "iot"
)

func EngineCategories() []EngineCategory {
	return []EngineCategory{
		CatSignature, CatHeuristic, CatBehavioral, CatStatic, CatDynamic,
		CatAIML, CatCloud, CatSpecialized, CatMetadata, CatContent,
		CatNetwork, CatMobile, CatEmail, CatWeb, CatIoT,
	}
}

// PerfCost is the relative runtime cost of an engine.
type PerfCost string

const (
	CostLow    PerfCost = "low"
	CostMedium PerfCost = "medium"
	CostHigh   PerfCost = "high"
)

// TechniqueRef names the analysis technique an engine executes. The zero
// value marks a descriptive-only entry: catalog metadata with nothing to
// run behind it.
type TechniqueRef string

// Engine describes one analysis engine. Accuracy and FPRate are
// independent descriptive fields kept for reporting; they never steer
// control flow and must not be read as live telemetry.
type Engine struct {
	ID        string
	Name      string
	Category  EngineCategory
	FileTypes []classify.Category
	Levels    []ThreatLevel
	Cost      PerfCost
	Accuracy  float64
	FPRate    float64
	Available bool

	NeedsNetwork    bool
	NeedsSandbox    bool
	NeedsCredential bool

	Technique TechniqueRef
}

// Runnable reports whether the engine is backed by an executable
// technique. Descriptive-only entries always return false, which is what
// keeps the orchestrator from ever "running" pure metadata.
func (e Engine) Runnable() bool { return e.Technique != "" }

// SelectionRule is the per-category engine ordering. IDs is the execution
// order and callers must not reorder it: earlier entries are the cheaper,
// foundational techniques. Count is the nominal list length threat-level
// scaling works from.
type SelectionRule struct {
	IDs      []string
	Count    int
	Priority string
}

// Catalog is the process-wide engine registry plus selection rules.
type Catalog struct {
	engines map[string]Engine
	order   []string
	rules   map[classify.Category]SelectionRule
}

// New builds the catalog from the built-in tables and validates the
// cross-references. Every rule id must resolve to a registered engine.
func New() (*Catalog, error) {
	c := &Catalog{
		engines: make(map[string]Engine, 128),
		rules:   selectionRules(),
	}
	for _, e := range builtinEngines() {
		if e.ID == "" {
			return nil, fmt.Errorf("engine with empty id (%q)", e.Name)
		}
		if _, dup := c.engines[e.ID]; dup {
			return nil, fmt.Errorf("duplicate engine id %q", e.ID)
		}
		if e.Accuracy < 0 || e.Accuracy > 1 || e.FPRate < 0 || e.FPRate > 1 {
			return nil, fmt.Errorf("engine %q: accuracy/fp rate out of range", e.ID)
		}
		c.engines[e.ID] = e
		c.order = append(c.order, e.ID)
	}
	for cat, rule := range c.rules {
		if len(rule.IDs) == 0 {
			return nil, fmt.Errorf("category %s: empty selection rule", cat)
		}
		if rule.Count <= 0 || rule.Count > len(rule.IDs) {
			return nil, fmt.Errorf("category %s: bad nominal count %d", cat, rule.Count)
		}
		for _, id := range rule.IDs {
			if _, ok := c.engines[id]; !ok {
				return nil, fmt.Errorf("category %s: rule references unknown engine %q", cat, id)
			}
		}
	}
	return c, nil
}

// Engine returns the descriptor for id.
func (c *Catalog) Engine(id string) (Engine, bool) {
	if c == nil {
		return Engine{}, false
	}
	e, ok := c.engines[id]
	return e, ok
}

// Engines lists all descriptors in registration order.
func (c *Catalog) Engines() []Engine {
	if c == nil {
		return nil
	}
	out := make([]Engine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.engines[id])
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.engines)
}

// Rule returns the selection rule for a file category; absent categories
// fall back to the unknown-category rule.
func (c *Catalog) Rule(fc classify.Category) SelectionRule {
	if c == nil {
		return SelectionRule{}
	}
	if rule, ok := c.rules[fc]; ok {
		return rule
	}
	return c.rules[classify.Unknown]
}

// EnginesFor returns the ordered engine ids to run for a file category at
// a threat level. The result is always a strict prefix of the rule's
// declared order: low scrutiny keeps max(3, count/2) leading entries,
// every other level keeps the full nominal list. A nil or empty catalog
// degrades to the fixed fallback list instead of failing the scan.
func (c *Catalog) EnginesFor(fc classify.Category, level ThreatLevel) []string {
	if c == nil || len(c.engines) == 0 || len(c.rules) == 0 {
		return FallbackEngines()
	}
	rule := c.Rule(fc)
	if len(rule.IDs) == 0 {
		return FallbackEngines()
	}

	count := rule.Count
	if count > len(rule.IDs) {
		count = len(rule.IDs)
	}
	n := count
	if level == ThreatLow {
		n = count / 2
		if n < 3 {
			n = 3
		}
		if n > count {
			n = count
		}
	}
	out := make([]string, n)
	copy(out, rule.IDs[:n])
	return out
}

// FallbackEngines is the fixed list used when the catalog itself is
// unusable. Selection failure degrades, it never aborts a scan.
func FallbackEngines() []string {
	return []string{
		"signature_scan",
		"pattern_match",
		"entropy_analysis",
		"header_inspection",
		"final_verification",
	}
}
