package scanner

import (
	"context"
	"fmt"
	"os"
	"time"

	"vakta/catalog"
	"vakta/classify"
	"vakta/config"
	"vakta/fuzzy"
	"vakta/hasher"
	"vakta/logger"
	"vakta/patterns"
	"vakta/reputation"
	"vakta/sandbox"
	"vakta/signatures"
)

// defaultSignatures seeds the store so a bare install still recognizes
// the EICAR test file. Real deployments merge feed files over this.
var defaultSignatures = map[string]string{
	"275a021bbfb6489e54d471899f7db9d1663fc695ec2fe2a2c4538aabf651fd0f": "eicar_test_file",
}

// Scanner owns the per-process scan state: catalog, signature store,
// pattern libraries and the technique instances. Everything here is
// read-only after New, so one Scanner serves concurrent scans.
type Scanner struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	store   *signatures.Store
	set     *patterns.Set

	reputation *reputation.Client
	converter  sandbox.Converter

	entropy    technique
	signature  technique
	heuristic  technique
	behavioral technique
	exeHeader  technique
	archive    technique

	textProbe  technique
	codeProbe  technique
	imageProbe technique
	videoProbe technique
	audioProbe technique
	docProbe   technique
}

// New builds a Scanner from configuration. Signature feed files and the
// custom rules file must load cleanly; a broken engine catalog only
// degrades selection to the fallback list.
func New(cfg *config.Config) (*Scanner, error) {
	store := signatures.New(defaultSignatures)
	for _, path := range cfg.SignatureFiles {
		entries, err := signatures.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("signature file %s: %w", path, err)
		}
		store = store.Merge(entries)
	}

	set := patterns.Defaults()
	if cfg.RulesFile != "" {
		rules, err := patterns.LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("rules file %s: %w", cfg.RulesFile, err)
		}
		set, err = set.With(rules)
		if err != nil {
			return nil, fmt.Errorf("rules file %s: %w", cfg.RulesFile, err)
		}
	}

	cat, err := catalog.New()
	if err != nil {
		logger.Warnf("Engine catalog unavailable, using fallback selection: %v", err)
		cat = nil
	}

	s := &Scanner{
		cfg:        cfg,
		catalog:    cat,
		store:      store,
		set:        set,
		reputation: reputation.New(cfg.ReputationEndpoint, cfg.ReputationAPIKey, cfg.ReputationTimeout),
	}
	if cfg.SandboxEndpoint != "" {
		s.converter = sandbox.NewHTTPConverter(cfg.SandboxEndpoint, cfg.SandboxTimeout)
	}

	s.entropy = &entropyTechnique{}
	s.signature = &signatureTechnique{store: store}
	s.heuristic = &heuristicTechnique{set: set}
	s.behavioral = &behavioralTechnique{set: set}
	s.exeHeader = &exeHeaderTechnique{set: set}
	s.archive = &archiveTechnique{store: store}
	s.textProbe = &contentProbe{name: "text_content", cfg: cfg}
	s.codeProbe = &contentProbe{name: "code_content", cfg: cfg}
	s.imageProbe = &contentProbe{name: "image_content", cfg: cfg}
	s.videoProbe = &contentProbe{name: "video_content", cfg: cfg}
	s.audioProbe = &contentProbe{name: "audio_content", cfg: cfg}
	s.docProbe = &documentProbe{cfg: cfg}
	return s, nil
}

// Store exposes the merged signature table, mainly for the cmd layer to
// log its size at startup.
func (s *Scanner) Store() *signatures.Store { return s.store }

type scanState int

const (
	stateStart scanState = iota
	stateClassify
	stateSelect
	stateRunTypeSpecific
	stateRunAlways
	stateAggregate
	stateClassifyResult
	stateDone
)

// ScanFile runs the full pipeline for one file. It always returns a
// report: failures inside techniques reduce to zero contributions, and
// anything unexpected escaping them yields an ERROR-classified report
// rather than a panic or an error return.
func (s *Scanner) ScanFile(ctx context.Context, path string, level catalog.ThreatLevel) (report *Report) {
	start := time.Now()
	if level == "" {
		level = catalog.ThreatMedium
	}

	report = &Report{
		Path:        path,
		ThreatLevel: string(level),
		Engines:     []string{},
		ScanResults: map[string]interface{}{},
		Threats:     []Finding{},
	}
	defer func() {
		if rec := recover(); rec != nil {
			logger.Errorf("Scan of %s failed: %v", path, rec)
			report.Classification = VerdictError
			report.RiskRating = RiskClean
			report.Error = fmt.Sprintf("scan failed: %v", rec)
		}
		report.ScanDuration = time.Since(start).Seconds()
	}()

	var fc *FileContext
	var collected []*TechResult
	cancelled := func() bool { return ctx != nil && ctx.Err() != nil }

	state := stateStart
	for state != stateDone {
		switch state {
		case stateStart:
			var size int64
			if info, err := os.Stat(path); err == nil {
				size = info.Size()
				report.Size = size
				report.Permissions = info.Mode().Perm().String()
				report.ModTime = info.ModTime().Format(time.RFC3339)
				report.FileID = getFileID(path, info)
			} else {
				logger.Debugf("Stat failed for %s: %v", path, err)
			}
			s.collectFileFacts(report, path)
			fc = newFileContext(path, size, classify.Unknown, s.cfg)
			report.Name = fc.Name()
			state = stateClassify

		case stateClassify:
			fc.category = classify.Classify(path)
			report.Category = fc.Category().String()
			state = stateSelect

		case stateSelect:
			report.Engines = s.catalog.EnginesFor(fc.Category(), level)
			state = stateRunTypeSpecific

		case stateRunTypeSpecific:
			for _, t := range s.typeTechniques(fc.Category()) {
				if cancelled() {
					break
				}
				collected = append(collected, runTechnique(ctx, t, fc))
			}
			state = stateRunAlways

		case stateRunAlways:
			for _, t := range []technique{s.entropy, s.signature} {
				if cancelled() {
					break
				}
				collected = append(collected, runTechnique(ctx, t, fc))
			}
			if !cancelled() {
				if tr := s.reputationResult(ctx, report); tr != nil {
					collected = append(collected, tr)
				}
			}
			state = stateAggregate

		case stateAggregate:
			for _, tr := range collected {
				report.ScanResults[tr.Name] = tr.Data
				report.OverallThreatScore += tr.Score
				report.Threats = append(report.Threats, tr.Findings...)
			}
			if value, err := fc.Entropy(); err == nil {
				report.Entropy = value
			}
			report.MimeType = fc.MimeType()
			s.attachPreview(ctx, report, fc)
			state = stateClassifyResult

		case stateClassifyResult:
			report.Classification = ClassifyThreatScore(report.OverallThreatScore)
			report.RiskRating = RateScore(report.OverallThreatScore)
			state = stateDone
		}
	}
	return report
}

// typeTechniques is the closed dispatch table from file category to the
// technique set that runs for it. Intentionally parallel to the catalog
// selection rules: this table decides what executes, the rules decide
// which engine ids the report names.
func (s *Scanner) typeTechniques(cat classify.Category) []technique {
	switch cat {
	case classify.Text:
		return []technique{s.heuristic, s.textProbe}
	case classify.Code:
		return []technique{s.heuristic, s.behavioral, s.codeProbe}
	case classify.Image:
		return []technique{s.imageProbe}
	case classify.Video:
		return []technique{s.videoProbe}
	case classify.Audio:
		return []technique{s.audioProbe}
	case classify.Document:
		return []technique{s.docProbe, s.heuristic}
	case classify.Executable:
		return []technique{s.exeHeader, s.behavioral}
	case classify.Archive:
		return []technique{s.archive}
	case classify.Mobile:
		return []technique{s.archive}
	case classify.Email:
		return []technique{s.heuristic}
	case classify.Web:
		return []technique{s.heuristic}
	case classify.Database:
		return nil
	case classify.Font:
		return nil
	case classify.CAD:
		return nil
	case classify.Game:
		return nil
	case classify.System:
		return []technique{s.heuristic, s.behavioral}
	case classify.Scientific:
		return nil
	case classify.Blockchain:
		return []technique{s.heuristic}
	case classify.Unknown:
		return []technique{s.heuristic, s.behavioral, s.exeHeader}
	}
	return []technique{s.heuristic}
}

// collectFileFacts fills the descriptive report fields: hashes, fuzzy
// hashes, fine-grained timestamps, extended attributes. All best-effort.
func (s *Scanner) collectFileFacts(report *Report, path string) {
	if s.cfg == nil {
		return
	}

	if len(s.cfg.HashAlgorithms) > 0 {
		if hashes := hasher.ComputeHashes(path, s.cfg.HashAlgorithms); len(hashes) > 0 {
			report.Hashes = hashes
		}
	}

	if s.cfg.FuzzyHash && report.Size >= s.cfg.FuzzyMinSize &&
		(s.cfg.FuzzyMaxSize <= 0 || report.Size <= s.cfg.FuzzyMaxSize) {
		digests := map[string]string{}
		for _, name := range s.cfg.FuzzyAlgorithms {
			h, ok := fuzzy.Lookup(name)
			if !ok {
				continue
			}
			digest, err := h.HashFile(path)
			if err != nil {
				logger.Debugf("Fuzzy hash %s failed for %s: %v", name, path, err)
				continue
			}
			digests[h.Name()] = digest
		}
		if len(digests) > 0 {
			report.FuzzyHashes = digests
		}
	}

	if ts, err := fileTimes(path); err == nil {
		report.CreationTime = ts.CreationTime
		report.AccessTime = ts.AccessTime
		report.ChangeTime = ts.ChangeTime
	}

	if s.cfg.CollectXattrs {
		if xattrs, err := getXattrs(path, s.cfg.XattrMaxValueSize); err == nil && len(xattrs) > 0 {
			report.Xattrs = xattrs
		}
	}
}

// reputationResult asks the optional reputation service about the file's
// sha256. A nil client or missing hash omits the contribution entirely;
// an unknown hash contributes a zero-score entry.
func (s *Scanner) reputationResult(ctx context.Context, report *Report) *TechResult {
	if s.reputation == nil {
		return nil
	}
	hash := report.Hashes["sha256"]
	if hash == "" {
		return nil
	}

	result := newTechResult("reputation")
	signal, known, err := s.reputation.Lookup(ctx, hash)
	if err != nil {
		logger.Debugf("Reputation lookup failed for %s: %v", report.Path, err)
		result.Data["error"] = err.Error()
		return result
	}
	result.Data["known"] = known
	if !known {
		return result
	}

	result.Data["malicious"] = signal.Malicious
	result.Data["source"] = signal.Source
	if signal.Malicious {
		label := signal.Label
		if label == "" {
			label = "known_malicious"
		}
		result.Score = signal.Score
		result.addFinding(Finding{
			Engine:     "reputation_lookup",
			Type:       label,
			Confidence: signal.Score,
		})
	}
	return result
}

// attachPreview asks the sandboxed converter for a document preview.
// Converter output is untrusted: it lands in the report as an opaque
// payload and never influences scoring.
func (s *Scanner) attachPreview(ctx context.Context, report *Report, fc *FileContext) {
	if s.converter == nil || fc.Category() != classify.Document {
		return
	}
	raw, err := s.converter.Convert(ctx, fc.Path(), "")
	if err != nil {
		logger.Debugf("Preview conversion failed for %s: %v", fc.Path(), err)
		return
	}
	report.Preview = raw
}
