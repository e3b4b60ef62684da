package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func resetFlags(args ...string) func() {
	oldArgs := os.Args
	oldCommandLine := flag.CommandLine
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	os.Args = append([]string{"vakta"}, args...)
	return func() {
		os.Args = oldArgs
		flag.CommandLine = oldCommandLine
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	defer resetFlags()()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.StartPaths) != 1 || cfg.StartPaths[0] != "." {
		t.Errorf("expected default start path '.', got %v", cfg.StartPaths)
	}
	if cfg.ThreatLevel != "medium" {
		t.Errorf("expected default threat level medium, got %s", cfg.ThreatLevel)
	}
	if cfg.OutputFormat != "json" {
		t.Errorf("expected default format json, got %s", cfg.OutputFormat)
	}
	if cfg.ConcurrencyLevel != runtime.NumCPU() {
		t.Errorf("expected default concurrency %d, got %d", runtime.NumCPU(), cfg.ConcurrencyLevel)
	}
	if cfg.ConcurrencySet {
		t.Error("ConcurrencySet should be false when flag not provided")
	}
	if !cfg.SkipCount {
		t.Error("expected skip-count default true")
	}
	if !cfg.AdaptiveRate {
		t.Error("expected adaptive-rate default true")
	}
	if !containsString(cfg.HashAlgorithms, "sha256") {
		t.Errorf("sha256 missing from default hash algorithms: %v", cfg.HashAlgorithms)
	}
	if !strings.HasPrefix(cfg.OutputFileName, "vakta-") {
		t.Errorf("unexpected default output name %s", cfg.OutputFileName)
	}
	if cfg.ContentReadMode != "auto" {
		t.Errorf("expected default content read mode auto, got %s", cfg.ContentReadMode)
	}
}

func TestLoadConfigFlags(t *testing.T) {
	defer resetFlags(
		"--path", "/srv/uploads,/tmp/incoming",
		"--threat-level", "Critical",
		"--format", "ndjson",
		"--concurrency", "3",
		"--nice", "low",
		"--hashes", "md5",
		"--signatures", "feeds/a.json, feeds/b.yaml",
		"--max-files-per-second", "10",
		"--log-level", "debug",
	)()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.StartPaths) != 2 || cfg.StartPaths[0] != "/srv/uploads" || cfg.StartPaths[1] != "/tmp/incoming" {
		t.Errorf("unexpected start paths %v", cfg.StartPaths)
	}
	if cfg.ThreatLevel != "critical" {
		t.Errorf("expected threat level critical, got %s", cfg.ThreatLevel)
	}
	if cfg.OutputFormat != "ndjson" {
		t.Errorf("expected format ndjson, got %s", cfg.OutputFormat)
	}
	if cfg.ConcurrencyLevel != 3 || !cfg.ConcurrencySet {
		t.Errorf("expected concurrency 3 explicitly set, got %d set=%t", cfg.ConcurrencyLevel, cfg.ConcurrencySet)
	}
	if cfg.NiceLevel != "low" {
		t.Errorf("expected nice low, got %s", cfg.NiceLevel)
	}
	if len(cfg.SignatureFiles) != 2 || cfg.SignatureFiles[1] != "feeds/b.yaml" {
		t.Errorf("unexpected signature files %v", cfg.SignatureFiles)
	}
	if cfg.MaxFilesPerSecond != 10 {
		t.Errorf("expected max-files-per-second 10, got %d", cfg.MaxFilesPerSecond)
	}
	if !containsString(cfg.HashAlgorithms, "sha256") {
		t.Errorf("sha256 must always be present, got %v", cfg.HashAlgorithms)
	}
	if !containsString(cfg.HashAlgorithms, "md5") {
		t.Errorf("md5 missing after explicit --hashes, got %v", cfg.HashAlgorithms)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	content := `{
		"start_paths": ["/data"],
		"threat_level": "high",
		"concurrency_level": 2,
		"fuzzy_hash": true,
		"reputation_endpoint": "https://intel.example.com",
		"otel_headers": {"authorization": "Bearer abc"}
	}`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	defer resetFlags("--config", configPath)()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.StartPaths) != 1 || cfg.StartPaths[0] != "/data" {
		t.Errorf("unexpected start paths %v", cfg.StartPaths)
	}
	if cfg.ThreatLevel != "high" {
		t.Errorf("expected threat level high, got %s", cfg.ThreatLevel)
	}
	if cfg.ConcurrencyLevel != 2 || !cfg.ConcurrencySet {
		t.Errorf("file-provided concurrency should mark ConcurrencySet, got %d set=%t", cfg.ConcurrencyLevel, cfg.ConcurrencySet)
	}
	if !cfg.FuzzyHash {
		t.Error("expected fuzzy hash enabled from file")
	}
	if len(cfg.FuzzyAlgorithms) != 1 || cfg.FuzzyAlgorithms[0] != "tlsh" {
		t.Errorf("expected tlsh default fuzzy algorithm, got %v", cfg.FuzzyAlgorithms)
	}
	if cfg.ReputationEndpoint != "https://intel.example.com" {
		t.Errorf("unexpected reputation endpoint %s", cfg.ReputationEndpoint)
	}
	if cfg.OtelHeaders["authorization"] != "Bearer abc" {
		t.Errorf("unexpected otel headers %v", cfg.OtelHeaders)
	}
}

func TestLoadConfigFlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{"threat_level": "low", "nice_level": "high"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	defer resetFlags("--config", configPath, "--threat-level", "critical")()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.ThreatLevel != "critical" {
		t.Errorf("flag should override file, got %s", cfg.ThreatLevel)
	}
	if cfg.NiceLevel != "high" {
		t.Errorf("file value should survive when flag absent, got %s", cfg.NiceLevel)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"threat level", []string{"--threat-level", "extreme"}},
		{"format", []string{"--format", "xml"}},
		{"nice", []string{"--nice", "urgent"}},
		{"log level", []string{"--log-level", "verbose"}},
		{"content read mode", []string{"--content-read-mode", "direct"}},
		{"concurrency", []string{"--concurrency", "0"}},
		{"reputation scheme", []string{"--reputation-endpoint", "intel.example.com"}},
		{"sandbox scheme", []string{"--sandbox-endpoint", "converter:8080"}},
		{"otel scheme", []string{"--otel-endpoint", "collector:4318"}},
		{"adaptive target", []string{"--adaptive-target-cpu", "150"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer resetFlags(tc.args...)()
			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for %v", tc.args)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	defer resetFlags("--config", "/nonexistent/config.json")()
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestFuzzyAlgorithmsImplyFuzzyHash(t *testing.T) {
	defer resetFlags("--fuzzy-algorithms", "tlsh")()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.FuzzyHash {
		t.Error("explicit fuzzy algorithms should enable fuzzy hashing")
	}
}

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("authorization=Bearer tok, x-tenant=acme,malformed,=nokey")
	if len(headers) != 2 {
		t.Fatalf("expected 2 headers, got %v", headers)
	}
	if headers["authorization"] != "Bearer tok" {
		t.Errorf("unexpected authorization header %q", headers["authorization"])
	}
	if headers["x-tenant"] != "acme" {
		t.Errorf("unexpected x-tenant header %q", headers["x-tenant"])
	}
}

func TestAdaptiveDefaults(t *testing.T) {
	defer resetFlags()()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.AdaptiveInterval != 5*time.Second {
		t.Errorf("expected 5s adaptive interval, got %v", cfg.AdaptiveInterval)
	}
	if cfg.AdaptiveTargetCPU != 70 {
		t.Errorf("expected 70 target CPU, got %v", cfg.AdaptiveTargetCPU)
	}
}
