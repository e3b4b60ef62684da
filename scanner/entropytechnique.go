package scanner

import (
	"context"
	"fmt"
)

// entropyTechnique records whole-file Shannon entropy. It is informational
// and always contributes zero score: the packing bonus for high-entropy
// executables belongs to the header inspection, which can tell an
// executable from a legitimately compressed archive.
type entropyTechnique struct{}

func (e *entropyTechnique) Name() string { return "entropy" }

func (e *entropyTechnique) Analyze(ctx context.Context, fc *FileContext) (*TechResult, error) {
	result := newTechResult(e.Name())
	value, err := fc.Entropy()
	if err != nil {
		return result.skipped(fmt.Sprintf("unreadable: %v", err)), nil
	}
	result.Data["entropy"] = value
	return result, nil
}
