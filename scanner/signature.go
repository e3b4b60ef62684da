package scanner

import (
	"context"
	"fmt"

	"vakta/signatures"
)

// signatureTechnique checks the file's content hashes against the known
// threat table. A hit is the strongest signal the scanner produces.
type signatureTechnique struct {
	store *signatures.Store
}

func (s *signatureTechnique) Name() string { return "signature" }

func (s *signatureTechnique) Analyze(ctx context.Context, fc *FileContext) (*TechResult, error) {
	result := newTechResult(s.Name())

	detection, err := s.store.DetectFile(fc.Path())
	if err != nil {
		return result.skipped(fmt.Sprintf("unreadable: %v", err)), nil
	}

	result.Data["threat_detected"] = detection.Detected
	if !detection.Detected {
		return result, nil
	}

	result.Data["threat_type"] = detection.Label
	result.Data["confidence"] = detection.Confidence
	result.Data["algorithm"] = detection.Algorithm
	result.Data["hash"] = detection.Hash
	result.Score = detection.Confidence
	result.addFinding(Finding{
		Engine:     "signature_detection",
		Type:       detection.Label,
		Confidence: detection.Confidence,
	})
	return result, nil
}
