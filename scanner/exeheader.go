package scanner

import (
	"bytes"
	"context"
	"fmt"

	"vakta/patterns"
)

const (
	apiReferenceWeight   = 10
	packedEntropyWeight  = 20
	cryptoInPrefixWeight = 15
	packedEntropyFloor   = 7.5
)

// sensitiveAPIs are import-table strings that show up verbatim in the
// leading bytes of droppers and injectors. Plain substring checks, no
// PE parsing.
var sensitiveAPIs = []string{
	"CreateRemoteThread",
	"VirtualAllocEx",
	"WriteProcessMemory",
	"SetWindowsHookEx",
	"GetAsyncKeyState",
	"URLDownloadToFile",
	"InternetOpenUrl",
	"WinExec",
	"ShellExecute",
	"RegSetValueEx",
	"CryptEncrypt",
	"IsDebuggerPresent",
}

var mzMagic = []byte("MZ")

// exeHeaderTechnique performs shallow executable inspection: marker bytes
// and substring searches only. Three additive checks run independently:
// sensitive API references, whole-file entropy, crypto indicators in the
// prefix.
type exeHeaderTechnique struct {
	set *patterns.Set
}

func (e *exeHeaderTechnique) Name() string { return "exe_header" }

func (e *exeHeaderTechnique) Analyze(ctx context.Context, fc *FileContext) (*TechResult, error) {
	result := newTechResult(e.Name())

	prefix, err := fc.Prefix()
	if err != nil {
		return result.skipped(fmt.Sprintf("unreadable: %v", err)), nil
	}
	if !bytes.HasPrefix(prefix, mzMagic) {
		return result.skipped("no executable marker"), nil
	}

	var indicators []string
	var apiRefs []string

	for _, api := range sensitiveAPIs {
		if bytes.Contains(prefix, []byte(api)) {
			result.Score += apiReferenceWeight
			apiRefs = append(apiRefs, api)
		}
	}
	if len(apiRefs) > 0 {
		indicators = append(indicators, fmt.Sprintf("references %d sensitive APIs", len(apiRefs)))
	}

	if value, err := fc.Entropy(); err == nil {
		result.Data["entropy"] = value
		if value > packedEntropyFloor {
			result.Score += packedEntropyWeight
			indicators = append(indicators, "high entropy - possibly packed")
		}
	}

	if pattern, ok := e.set.Crypto.AnyBytes(prefix); ok {
		result.Score += cryptoInPrefixWeight
		indicators = append(indicators, fmt.Sprintf("crypto indicator in header: %s", pattern.Name))
	}

	result.Data["executable"] = true
	result.Data["api_references"] = apiRefs
	result.Data["indicators"] = indicators
	return result, nil
}
