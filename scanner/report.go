package scanner

// Classification is the primary verdict ladder. Values are ordered:
// CLEAN < LOW_RISK < POTENTIALLY_UNWANTED < SUSPICIOUS < MALWARE.
// ERROR sits outside the ladder and marks an orchestration failure.
type Classification string

const (
	VerdictClean      Classification = "CLEAN"
	VerdictLowRisk    Classification = "LOW_RISK"
	VerdictUnwanted   Classification = "POTENTIALLY_UNWANTED"
	VerdictSuspicious Classification = "SUSPICIOUS"
	VerdictMalware    Classification = "MALWARE"
	VerdictError      Classification = "ERROR"
)

// Severity returns the ladder position for ordering comparisons.
// ERROR ranks above everything so failed scans surface first.
func (c Classification) Severity() int {
	switch c {
	case VerdictClean:
		return 0
	case VerdictLowRisk:
		return 1
	case VerdictUnwanted:
		return 2
	case VerdictSuspicious:
		return 3
	case VerdictMalware:
		return 4
	case VerdictError:
		return 5
	}
	return 0
}

// RiskRating is the second, independent ladder used alongside the
// threat-level input vocabulary. It shares thresholds with nothing in
// Classification and the two are never merged.
type RiskRating string

const (
	RiskClean    RiskRating = "CLEAN"
	RiskLow      RiskRating = "LOW"
	RiskMedium   RiskRating = "MEDIUM"
	RiskHigh     RiskRating = "HIGH"
	RiskCritical RiskRating = "CRITICAL"
)

// ClassifyThreatScore maps an aggregate score onto the primary ladder.
func ClassifyThreatScore(score int) Classification {
	switch {
	case score >= 80:
		return VerdictMalware
	case score >= 60:
		return VerdictSuspicious
	case score >= 30:
		return VerdictUnwanted
	case score >= 10:
		return VerdictLowRisk
	default:
		return VerdictClean
	}
}

// RateScore maps an aggregate score onto the risk-rating ladder.
func RateScore(score int) RiskRating {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	case score >= 20:
		return RiskLow
	default:
		return RiskClean
	}
}

// Finding is one concrete threat observation from a technique.
type Finding struct {
	Engine     string `json:"engine"`
	Type       string `json:"type"`
	Confidence int    `json:"confidence"`
	Category   string `json:"category,omitempty"`
	Pattern    string `json:"pattern,omitempty"`
}

// Report is the per-file scan aggregate. It is mutated only by the
// orchestrator while the scan runs and returned immutably to the caller.
// The json tags are the wire contract consumed by the output writer and
// the OTLP exporter.
type Report struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Category     string `json:"category"`
	MimeType     string `json:"mime_type,omitempty"`
	Permissions  string `json:"permissions,omitempty"`
	FileID       string `json:"file_id,omitempty"`
	ModTime      string `json:"mod_time,omitempty"`
	CreationTime string `json:"creation_time,omitempty"`
	AccessTime   string `json:"access_time,omitempty"`
	ChangeTime   string `json:"change_time,omitempty"`

	Entropy     float64           `json:"entropy"`
	Hashes      map[string]string `json:"hashes,omitempty"`
	FuzzyHashes map[string]string `json:"fuzzy_hashes,omitempty"`
	Xattrs      map[string]string `json:"xattrs,omitempty"`

	ThreatLevel        string                 `json:"threat_level"`
	Engines            []string               `json:"engines"`
	ScanResults        map[string]interface{} `json:"scan_results"`
	Threats            []Finding              `json:"threats"`
	OverallThreatScore int                    `json:"overall_threat_score"`
	Classification     Classification         `json:"classification"`
	RiskRating         RiskRating             `json:"risk_rating"`

	Preview      interface{} `json:"preview,omitempty"`
	ScanDuration float64     `json:"scan_duration"`
	Error        string      `json:"error,omitempty"`
}

// HasThreat reports whether the scan produced anything worth acting on.
func (r *Report) HasThreat() bool {
	if r == nil {
		return false
	}
	return len(r.Threats) > 0 || r.Classification.Severity() > 0
}
