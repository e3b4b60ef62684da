package scanner

import (
	"context"
	"fmt"
	"strings"

	"vakta/patterns"
)

const (
	behaviorMatchWeight     = 20
	behaviorMatchConfidence = 70
)

// behavioralTechnique looks for action-shaped indicators (filesystem
// tampering, persistence, exfiltration, crypto theft) in the leading
// window of a file. Unlike the heuristic pass it tolerates broken
// encodings: invalid bytes are dropped, not grounds for skipping.
type behavioralTechnique struct {
	set *patterns.Set
}

func (b *behavioralTechnique) Name() string { return "behavioral" }

func (b *behavioralTechnique) Analyze(ctx context.Context, fc *FileContext) (*TechResult, error) {
	result := newTechResult(b.Name())

	content, err := fc.Content()
	if err != nil {
		return result.skipped(fmt.Sprintf("unreadable: %v", err)), nil
	}
	if len(content) == 0 {
		return result.skipped("empty file"), nil
	}

	text := strings.ToValidUTF8(string(content), "")
	var behaviors []string
	for _, hit := range b.set.Behavioral.Scan(text) {
		result.Score += behaviorMatchWeight
		behaviors = append(behaviors, fmt.Sprintf("%s: %s", hit.Pattern.Category, hit.Pattern.Name))
		result.addFinding(Finding{
			Engine:     "behavioral_analysis",
			Type:       "malicious_behavior",
			Confidence: behaviorMatchConfidence,
			Category:   hit.Pattern.Category,
			Pattern:    hit.Pattern.Name,
		})
	}
	result.Data["behaviors"] = behaviors
	result.Data["match_count"] = len(behaviors)
	return result, nil
}
