package scanner

import (
	"context"
	"fmt"

	"vakta/logger"
)

// technique is one analysis step. Analyze returns the technique's raw
// result plus its score contribution; errors are input-level problems
// (unreadable file, bad decode) already reduced to a zero result by the
// technique itself, so a non-nil error here means the technique could
// not run at all.
type technique interface {
	Name() string
	Analyze(ctx context.Context, fc *FileContext) (*TechResult, error)
}

// TechResult is one technique's structured output before aggregation.
type TechResult struct {
	Name     string
	Data     map[string]interface{}
	Score    int
	Findings []Finding
}

func newTechResult(name string) *TechResult {
	return &TechResult{Name: name, Data: map[string]interface{}{}}
}

func (r *TechResult) addFinding(f Finding) {
	r.Findings = append(r.Findings, f)
}

// skipped marks a technique result that carries no signal, with a reason
// in the raw data so the report shows why nothing ran.
func (r *TechResult) skipped(reason string) *TechResult {
	r.Data["skipped"] = true
	r.Data["reason"] = reason
	r.Score = 0
	r.Findings = nil
	return r
}

// runTechnique executes one technique behind a recover boundary. A panic
// or error inside a technique is logged and reduced to a zero result;
// it never stops the remaining techniques.
func runTechnique(ctx context.Context, t technique, fc *FileContext) (result *TechResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warnf("Technique %s panicked on %s: %v", t.Name(), fc.Path(), rec)
			result = newTechResult(t.Name())
			result.Data["error"] = fmt.Sprintf("panic: %v", rec)
		}
	}()

	result, err := t.Analyze(ctx, fc)
	if err != nil {
		logger.Debugf("Technique %s failed on %s: %v", t.Name(), fc.Path(), err)
		result = newTechResult(t.Name())
		result.Data["error"] = err.Error()
		return result
	}
	if result == nil {
		result = newTechResult(t.Name())
	}
	return result
}
