package scanner

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"vakta/classify"
	"vakta/patterns"
)

const (
	suspiciousMatchWeight = 5
	cryptoMatchWeight     = 10
	sizeAnomalyWeight     = 15
	sizeAnomalyMaxBytes   = 1024
	probabilityCeiling    = 95
)

// HeuristicProbability converts a raw heuristic score into the displayed
// threat probability. Scores within the 0-50 band pass through; anything
// above saturates at 95 rather than scaling, so a heavily matched file
// reads as near-certain instead of overflowing the percent scale.
func HeuristicProbability(raw int) int {
	if raw > 50 {
		return probabilityCeiling
	}
	return raw
}

// heuristicTechnique runs the textual indicator scan over the leading
// window of a file.
type heuristicTechnique struct {
	set *patterns.Set
}

func (h *heuristicTechnique) Name() string { return "heuristic" }

func (h *heuristicTechnique) Analyze(ctx context.Context, fc *FileContext) (*TechResult, error) {
	result := newTechResult(h.Name())

	// Binary media carries no meaningful text; scanning it only produces
	// false positives from compressed byte runs.
	if classify.BinaryMedia(fc.Name()) {
		return result.skipped("binary media extension"), nil
	}

	prefix, err := fc.Prefix()
	if err != nil {
		return result.skipped(fmt.Sprintf("unreadable: %v", err)), nil
	}
	if len(prefix) == 0 {
		return result.skipped("empty file"), nil
	}
	if !utf8.Valid(prefix) {
		return result.skipped("not valid utf-8"), nil
	}

	text := strings.ToLower(string(prefix))
	raw := 0
	var indicators []string

	for _, hit := range h.set.Suspicious.Scan(text) {
		raw += suspiciousMatchWeight * hit.Count
		indicators = append(indicators, fmt.Sprintf("suspicious pattern: %s (x%d)", hit.Pattern.Name, hit.Count))
	}
	for _, hit := range h.set.Crypto.Scan(text) {
		raw += cryptoMatchWeight * hit.Count
		indicators = append(indicators, fmt.Sprintf("crypto indicator: %s (x%d)", hit.Pattern.Name, hit.Count))
	}
	if fc.Size() < sizeAnomalyMaxBytes && patterns.HasCryptoKeyword(text) {
		raw += sizeAnomalyWeight
		indicators = append(indicators, "size anomaly: small file with wallet keyword")
	}

	probability := HeuristicProbability(raw)
	result.Score = raw
	result.Data["raw_score"] = raw
	result.Data["threat_probability"] = probability
	result.Data["indicators"] = indicators

	if probability > 50 {
		result.addFinding(Finding{
			Engine:     "heuristic_analysis",
			Type:       "suspicious_content",
			Confidence: probability,
		})
	}
	return result, nil
}
