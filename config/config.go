package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"vakta/version"
)

// Config is the flat runtime configuration. Precedence is defaults, then
// the optional --config JSON file, then explicitly set flags.
type Config struct {
	StartPaths            []string          `json:"start_paths"`
	ThreatLevel           string            `json:"threat_level"`
	SignatureFiles        []string          `json:"signature_files"`
	RulesFile             string            `json:"rules_file"`
	OutputFormat          string            `json:"output_format"`
	OutputFileName        string            `json:"output_file_name"`
	MaxOutputFileSize     int64             `json:"max_output_file_size"`
	ConcurrencyLevel      int               `json:"concurrency_level"`
	NiceLevel             string            `json:"nice_level"`
	HashAlgorithms        []string          `json:"hash_algorithms"`
	FuzzyHash             bool              `json:"fuzzy_hash"`
	FuzzyAlgorithms       []string          `json:"fuzzy_algorithms"`
	FuzzyMinSize          int64             `json:"fuzzy_min_size"`
	FuzzyMaxSize          int64             `json:"fuzzy_max_size"`
	IncludePatterns       []string          `json:"include_patterns"`
	ExcludePatterns       []string          `json:"exclude_patterns"`
	MaxFileSize           int64             `json:"max_file_size"`
	MaxFilesPerSecond     int               `json:"max_files_per_second"`
	AdaptiveRate          bool              `json:"adaptive_rate"`
	AdaptiveInterval      time.Duration     `json:"adaptive_interval"`
	AdaptiveTargetCPU     float64           `json:"adaptive_target_cpu"`
	SkipCount             bool              `json:"skip_count"`
	SkipHidden            bool              `json:"skip_hidden"`
	LogLevel              string            `json:"log_level"`
	ConfigFile            string            `json:"config_file"`
	CollectSystemInfo     bool              `json:"collect_system_info"`
	CollectXattrs         bool              `json:"collect_xattrs"`
	XattrMaxValueSize     int               `json:"xattr_max_value_size"`
	MetadataMaxBytes      int64             `json:"metadata_max_bytes"`
	ContentReadMode       string            `json:"content_read_mode"`
	StreamChunkSize       int               `json:"stream_chunk_size"`
	MmapMinSize           int64             `json:"mmap_min_size"`
	CheckUpdates          bool              `json:"check_updates"`
	ReputationEndpoint    string            `json:"reputation_endpoint"`
	ReputationAPIKey      string            `json:"reputation_api_key"`
	ReputationTimeout     time.Duration     `json:"reputation_timeout"`
	SandboxEndpoint       string            `json:"sandbox_endpoint"`
	SandboxTimeout        time.Duration     `json:"sandbox_timeout"`
	OtelEndpoint          string            `json:"otel_endpoint"`
	OtelFromEnv           bool              `json:"otel_from_env"`
	OtelHeaders           map[string]string `json:"otel_headers"`
	OtelServiceName       string            `json:"otel_service_name"`
	OtelTimeout           time.Duration     `json:"otel_timeout"`
	OtelExportPaths       bool              `json:"otel_export_paths"`
	TraceFlight           bool              `json:"trace_flight"`
	TraceFlightFile       string            `json:"trace_flight_file"`
	TraceFlightMaxBytes   uint64            `json:"trace_flight_max_bytes"`
	TraceFlightMinAge     time.Duration     `json:"trace_flight_min_age"`
	DiagSlowScanThreshold time.Duration     `json:"diag_slow_scan_threshold"`
	DiagDir               string            `json:"diag_dir"`
	DiagGoroutineLeak     bool              `json:"diag_goroutine_leak"`
	ConcurrencySet        bool              `json:"-"`
}

func LoadConfig() (*Config, error) {
	now := time.Now().UTC()
	timestamp := now.Format("20060102-150405")
	cfg := &Config{
		StartPaths:            []string{"."},
		ThreatLevel:           "medium",
		SignatureFiles:        []string{},
		OutputFormat:          "json",
		OutputFileName:        fmt.Sprintf("vakta-%s-%d.json", timestamp, now.Unix()),
		MaxOutputFileSize:     104857600,
		ConcurrencyLevel:      runtime.NumCPU(),
		NiceLevel:             "medium",
		HashAlgorithms:        []string{"md5", "sha1", "sha256"},
		FuzzyAlgorithms:       []string{},
		FuzzyMinSize:          256,
		FuzzyMaxSize:          20 * 1024 * 1024,
		MaxFileSize:           512 * 1024 * 1024,
		MaxFilesPerSecond:     0,
		AdaptiveRate:          true,
		AdaptiveInterval:      5 * time.Second,
		AdaptiveTargetCPU:     70,
		SkipCount:             true,
		LogLevel:              "info",
		CollectSystemInfo:     true,
		CollectXattrs:         true,
		XattrMaxValueSize:     1024,
		MetadataMaxBytes:      1 * 1024 * 1024,
		ContentReadMode:       "auto",
		StreamChunkSize:       256 * 1024,
		MmapMinSize:           128 * 1024,
		CheckUpdates:          true,
		ReputationTimeout:     5 * time.Second,
		SandboxTimeout:        30 * time.Second,
		OtelHeaders:           map[string]string{},
		OtelServiceName:       "vakta",
		OtelTimeout:           5 * time.Second,
		TraceFlightFile:       "trace-flight.out",
		DiagSlowScanThreshold: 0,
		DiagDir:               ".",
	}

	startPath := flag.String("path", strings.Join(cfg.StartPaths, ","), fmt.Sprintf("Comma-separated list of files or directories to scan (default: %s).", strings.Join(cfg.StartPaths, ",")))
	threatLevel := flag.String("threat-level", cfg.ThreatLevel, fmt.Sprintf("Scrutiny level: low, medium, high, or critical (default: %s).", cfg.ThreatLevel))
	signatureFiles := flag.String("signatures", "", "Comma-separated list of signature files (JSON or YAML hash-to-label maps) merged over the built-in table (default: none).")
	rulesFile := flag.String("rules", "", "Path to a YAML file of custom detection patterns (default: none).")
	format := flag.String("format", cfg.OutputFormat, fmt.Sprintf("Output format: json or ndjson (default: %s).", cfg.OutputFormat))
	outputName := flag.String("output", cfg.OutputFileName, "Output file name (default: vakta-<timestamp>-<unix>.json).")
	maxOutputFileSize := flag.Int64("max-output-file-size", cfg.MaxOutputFileSize, fmt.Sprintf("Maximum output file size before rotation in bytes (default: %d).", cfg.MaxOutputFileSize))
	concurrency := flag.Int("concurrency", cfg.ConcurrencyLevel, fmt.Sprintf("Number of scan workers (default: %d).", cfg.ConcurrencyLevel))
	nice := flag.String("nice", cfg.NiceLevel, fmt.Sprintf("Nice level: high, medium, or low (default: %s).", cfg.NiceLevel))
	hashes := flag.String("hashes", strings.Join(cfg.HashAlgorithms, ","), fmt.Sprintf("Comma-separated list of report hash algorithms (default: %s).", strings.Join(cfg.HashAlgorithms, ",")))
	fuzzyHash := flag.Bool("fuzzy-hash", cfg.FuzzyHash, fmt.Sprintf("Enable fuzzy hashing (default: %t).", cfg.FuzzyHash))
	fuzzyAlgorithms := flag.String("fuzzy-algorithms", strings.Join(cfg.FuzzyAlgorithms, ","), "Comma-separated list of fuzzy hash algorithms (default: tlsh when fuzzy hashing enabled).")
	fuzzyMinSize := flag.Int64("fuzzy-min-size", cfg.FuzzyMinSize, fmt.Sprintf("Minimum file size in bytes for fuzzy hashing (default: %d).", cfg.FuzzyMinSize))
	fuzzyMaxSize := flag.Int64("fuzzy-max-size", cfg.FuzzyMaxSize, fmt.Sprintf("Maximum file size in bytes for fuzzy hashing (default: %d).", cfg.FuzzyMaxSize))
	includes := flag.String("include", "", "Comma-separated list of include patterns (default: none).")
	excludes := flag.String("exclude", "", "Comma-separated list of exclude patterns (default: none).")
	maxFileSize := flag.Int64("max-file-size", cfg.MaxFileSize, fmt.Sprintf("Maximum file size to scan in bytes (default: %d).", cfg.MaxFileSize))
	maxFilesPerSecond := flag.Int("max-files-per-second", cfg.MaxFilesPerSecond, "Maximum files queued for scanning per second, 0 for unlimited (default: 0).")
	adaptiveRate := flag.Bool("adaptive-rate", cfg.AdaptiveRate, fmt.Sprintf("Throttle the scan when host CPU pressure is high (default: %t).", cfg.AdaptiveRate))
	adaptiveInterval := flag.Duration("adaptive-interval", cfg.AdaptiveInterval, "Adaptive throttle sampling interval (default: 5s).")
	adaptiveTargetCPU := flag.Float64("adaptive-target-cpu", cfg.AdaptiveTargetCPU, "Adaptive throttle target CPU percent (default: 70).")
	skipCount := flag.Bool("skip-count", cfg.SkipCount, "Skip initial file counting to start scanning immediately.")
	skipHidden := flag.Bool("skip-hidden", cfg.SkipHidden, fmt.Sprintf("Skip dot-hidden files and directories (default: %t).", cfg.SkipHidden))
	logLevel := flag.String("log-level", cfg.LogLevel, fmt.Sprintf("Log level: debug, info, warn, error, fatal, or panic (default: %s).", cfg.LogLevel))
	configFile := flag.String("config", "", "Path to JSON configuration file (default: none).")
	collectSystemInfo := flag.Bool("collect-system-info", cfg.CollectSystemInfo, fmt.Sprintf("Record host context in the session header (default: %t).", cfg.CollectSystemInfo))
	collectXattrs := flag.Bool("collect-xattrs", cfg.CollectXattrs, fmt.Sprintf("Collect extended attributes per file (default: %t).", cfg.CollectXattrs))
	xattrMaxValueSize := flag.Int("xattr-max-value-size", cfg.XattrMaxValueSize, fmt.Sprintf("Max bytes of xattr values to capture (default: %d).", cfg.XattrMaxValueSize))
	metadataMaxBytes := flag.Int64("metadata-max-bytes", cfg.MetadataMaxBytes, fmt.Sprintf("Maximum bytes content probes may read per file (default: %d, 0 means unlimited).", cfg.MetadataMaxBytes))
	contentReadMode := flag.String("content-read-mode", cfg.ContentReadMode, "Content read mode: auto, stream, or mmap (default: auto).")
	streamChunkSize := flag.Int("stream-chunk-size", cfg.StreamChunkSize, "Streaming chunk size in bytes (default: 262144).")
	mmapMinSize := flag.Int64("mmap-min-size", cfg.MmapMinSize, "Minimum file size in bytes for the mmap content read path (default: 131072).")
	checkUpdates := flag.Bool("check-updates", cfg.CheckUpdates, fmt.Sprintf("Check for a newer release at startup (default: %t).", cfg.CheckUpdates))
	reputationEndpoint := flag.String("reputation-endpoint", cfg.ReputationEndpoint, "Hash reputation service base URL, empty to disable (default: none).")
	reputationAPIKey := flag.String("reputation-api-key", cfg.ReputationAPIKey, "API key for the reputation service (default: none).")
	reputationTimeout := flag.Duration("reputation-timeout", cfg.ReputationTimeout, "Reputation lookup timeout (default: 5s).")
	sandboxEndpoint := flag.String("sandbox-endpoint", cfg.SandboxEndpoint, "Sandboxed document converter URL, empty to disable previews (default: none).")
	sandboxTimeout := flag.Duration("sandbox-timeout", cfg.SandboxTimeout, "Sandbox conversion timeout (default: 30s).")
	otelEndpoint := flag.String("otel-endpoint", cfg.OtelEndpoint, "OTLP/HTTP logs endpoint (default: none).")
	otelFromEnv := flag.Bool("otel-from-env", cfg.OtelFromEnv, "Allow OTEL endpoint fallback from OTEL environment variables (default: false).")
	otelHeaders := flag.String("otel-headers", "", "Comma-separated OTEL headers (key=value) for export (default: none).")
	otelServiceName := flag.String("otel-service-name", cfg.OtelServiceName, "OTEL service name for export (default: vakta).")
	otelTimeout := flag.Duration("otel-timeout", cfg.OtelTimeout, "OTEL export timeout (default: 5s).")
	otelExportPaths := flag.Bool("otel-export-paths", cfg.OtelExportPaths, "Include raw file paths in OTEL payloads (default: false).")
	traceFlight := flag.Bool("trace-flight", cfg.TraceFlight, fmt.Sprintf("Enable flight recorder tracing (default: %t).", cfg.TraceFlight))
	traceFlightFile := flag.String("trace-flight-file", cfg.TraceFlightFile, fmt.Sprintf("Flight recorder output file (default: %s).", cfg.TraceFlightFile))
	traceFlightMaxBytes := flag.Uint64("trace-flight-max-bytes", cfg.TraceFlightMaxBytes, "Max bytes for flight recorder buffer (default: 0 for runtime default).")
	traceFlightMinAge := flag.Duration("trace-flight-min-age", cfg.TraceFlightMinAge, "Minimum age of trace events to retain (default: 0).")
	diagSlowScanThreshold := flag.Duration("diag-slow-scan-threshold", cfg.DiagSlowScanThreshold, "If positive, emit diagnostics when scan progress stalls for this duration (default: 0/off).")
	diagDir := flag.String("diag-dir", cfg.DiagDir, "Diagnostics output directory (default: current directory).")
	diagGoroutineLeak := flag.Bool("diag-goroutine-leak", cfg.DiagGoroutineLeak, "Write goroutine leak profile on shutdown (default: false).")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = displayHelp
	flag.Parse()

	if *showVersion {
		fmt.Printf("vakta version %s\n", version.Version)
		os.Exit(0)
	}

	if *configFile != "" {
		cfg.ConfigFile = *configFile
		if err := cfg.loadFromFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.StartPaths = parseCommaSeparated(*startPath)
		case "threat-level":
			cfg.ThreatLevel = strings.ToLower(strings.TrimSpace(*threatLevel))
		case "signatures":
			cfg.SignatureFiles = parseCommaSeparated(*signatureFiles)
		case "rules":
			cfg.RulesFile = strings.TrimSpace(*rulesFile)
		case "format":
			cfg.OutputFormat = strings.ToLower(*format)
		case "output":
			cfg.OutputFileName = *outputName
		case "max-output-file-size":
			cfg.MaxOutputFileSize = *maxOutputFileSize
		case "concurrency":
			cfg.ConcurrencyLevel = *concurrency
			cfg.ConcurrencySet = true
		case "nice":
			cfg.NiceLevel = *nice
		case "hashes":
			cfg.HashAlgorithms = parseCommaSeparated(*hashes)
		case "fuzzy-hash":
			cfg.FuzzyHash = *fuzzyHash
		case "fuzzy-algorithms":
			cfg.FuzzyAlgorithms = parseCommaSeparated(*fuzzyAlgorithms)
		case "fuzzy-min-size":
			cfg.FuzzyMinSize = *fuzzyMinSize
		case "fuzzy-max-size":
			cfg.FuzzyMaxSize = *fuzzyMaxSize
		case "include":
			cfg.IncludePatterns = parseCommaSeparated(*includes)
		case "exclude":
			cfg.ExcludePatterns = parseCommaSeparated(*excludes)
		case "max-file-size":
			cfg.MaxFileSize = *maxFileSize
		case "max-files-per-second":
			cfg.MaxFilesPerSecond = *maxFilesPerSecond
		case "adaptive-rate":
			cfg.AdaptiveRate = *adaptiveRate
		case "adaptive-interval":
			cfg.AdaptiveInterval = *adaptiveInterval
		case "adaptive-target-cpu":
			cfg.AdaptiveTargetCPU = *adaptiveTargetCPU
		case "skip-count":
			cfg.SkipCount = *skipCount
		case "skip-hidden":
			cfg.SkipHidden = *skipHidden
		case "log-level":
			cfg.LogLevel = *logLevel
		case "collect-system-info":
			cfg.CollectSystemInfo = *collectSystemInfo
		case "collect-xattrs":
			cfg.CollectXattrs = *collectXattrs
		case "xattr-max-value-size":
			cfg.XattrMaxValueSize = *xattrMaxValueSize
		case "metadata-max-bytes":
			cfg.MetadataMaxBytes = *metadataMaxBytes
		case "content-read-mode":
			cfg.ContentReadMode = strings.ToLower(strings.TrimSpace(*contentReadMode))
		case "stream-chunk-size":
			cfg.StreamChunkSize = *streamChunkSize
		case "mmap-min-size":
			cfg.MmapMinSize = *mmapMinSize
		case "check-updates":
			cfg.CheckUpdates = *checkUpdates
		case "reputation-endpoint":
			cfg.ReputationEndpoint = strings.TrimSpace(*reputationEndpoint)
		case "reputation-api-key":
			cfg.ReputationAPIKey = strings.TrimSpace(*reputationAPIKey)
		case "reputation-timeout":
			cfg.ReputationTimeout = *reputationTimeout
		case "sandbox-endpoint":
			cfg.SandboxEndpoint = strings.TrimSpace(*sandboxEndpoint)
		case "sandbox-timeout":
			cfg.SandboxTimeout = *sandboxTimeout
		case "otel-endpoint":
			cfg.OtelEndpoint = strings.TrimSpace(*otelEndpoint)
		case "otel-from-env":
			cfg.OtelFromEnv = *otelFromEnv
		case "otel-headers":
			cfg.OtelHeaders = parseHeaders(*otelHeaders)
		case "otel-service-name":
			cfg.OtelServiceName = strings.TrimSpace(*otelServiceName)
		case "otel-timeout":
			cfg.OtelTimeout = *otelTimeout
		case "otel-export-paths":
			cfg.OtelExportPaths = *otelExportPaths
		case "trace-flight":
			cfg.TraceFlight = *traceFlight
		case "trace-flight-file":
			cfg.TraceFlightFile = *traceFlightFile
		case "trace-flight-max-bytes":
			cfg.TraceFlightMaxBytes = *traceFlightMaxBytes
		case "trace-flight-min-age":
			cfg.TraceFlightMinAge = *traceFlightMinAge
		case "diag-slow-scan-threshold":
			cfg.DiagSlowScanThreshold = *diagSlowScanThreshold
		case "diag-dir":
			cfg.DiagDir = strings.TrimSpace(*diagDir)
		case "diag-goroutine-leak":
			cfg.DiagGoroutineLeak = *diagGoroutineLeak
		}
	})

	cfg.ThreatLevel = strings.ToLower(strings.TrimSpace(cfg.ThreatLevel))
	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	cfg.ContentReadMode = strings.ToLower(strings.TrimSpace(cfg.ContentReadMode))
	if cfg.ThreatLevel == "" {
		cfg.ThreatLevel = "medium"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "json"
	}
	if cfg.ContentReadMode == "" {
		cfg.ContentReadMode = "auto"
	}
	if cfg.StreamChunkSize <= 0 {
		cfg.StreamChunkSize = 256 * 1024
	}
	if cfg.MmapMinSize <= 0 {
		cfg.MmapMinSize = 128 * 1024
	}
	if cfg.DiagDir == "" {
		cfg.DiagDir = "."
	}
	cfg.FuzzyAlgorithms = normalizeAlgorithms(cfg.FuzzyAlgorithms)
	if cfg.FuzzyHash && len(cfg.FuzzyAlgorithms) == 0 {
		cfg.FuzzyAlgorithms = []string{"tlsh"}
	}
	if len(cfg.FuzzyAlgorithms) > 0 {
		cfg.FuzzyHash = true
	}
	if cfg.FuzzyMaxSize > 0 && cfg.FuzzyMaxSize < cfg.FuzzyMinSize {
		cfg.FuzzyMaxSize = cfg.FuzzyMinSize
	}
	cfg.HashAlgorithms = normalizeAlgorithms(cfg.HashAlgorithms)
	// Signature detection and reputation lookups key on sha256.
	if !containsString(cfg.HashAlgorithms, "sha256") {
		cfg.HashAlgorithms = append(cfg.HashAlgorithms, "sha256")
	}
	if cfg.TraceFlight && cfg.TraceFlightFile == "" {
		cfg.TraceFlightFile = "trace-flight.out"
	}
	if len(cfg.StartPaths) == 0 {
		cfg.StartPaths = []string{"."}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func displayHelp() {
	fmt.Println("vakta - File Threat Scanner")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vakta [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  vakta --path \"/srv/uploads\"")
	fmt.Println("  vakta --path suspect.exe --threat-level critical")
	fmt.Println("  vakta --path \"/home,/var\" --signatures feeds/known-bad.json --format ndjson")
}

func (cfg *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid config file format: %v", err)
	}
	if _, ok := raw["concurrency_level"]; ok {
		cfg.ConcurrencySet = true
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid config file format: %v", err)
	}
	return nil
}

func (cfg *Config) validate() error {
	if len(cfg.StartPaths) == 0 {
		return fmt.Errorf("at least one start path must be specified")
	}
	switch cfg.ThreatLevel {
	case "low", "medium", "high", "critical":
	default:
		return fmt.Errorf("invalid threat level: %s", cfg.ThreatLevel)
	}
	if cfg.OutputFormat != "json" && cfg.OutputFormat != "ndjson" {
		return fmt.Errorf("invalid output format: %s (json or ndjson)", cfg.OutputFormat)
	}
	if cfg.ConcurrencyLevel <= 0 {
		return fmt.Errorf("concurrency level must be positive")
	}
	if cfg.NiceLevel != "high" && cfg.NiceLevel != "medium" && cfg.NiceLevel != "low" {
		return fmt.Errorf("invalid nice level: %s", cfg.NiceLevel)
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "info" && cfg.LogLevel != "warn" &&
		cfg.LogLevel != "error" && cfg.LogLevel != "fatal" && cfg.LogLevel != "panic" {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if cfg.ContentReadMode != "stream" && cfg.ContentReadMode != "mmap" && cfg.ContentReadMode != "auto" {
		return fmt.Errorf("invalid content-read-mode value: %s", cfg.ContentReadMode)
	}
	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("max-file-size must be zero or positive")
	}
	if cfg.MaxFilesPerSecond < 0 {
		return fmt.Errorf("max-files-per-second must be zero or positive")
	}
	if cfg.AdaptiveRate {
		if cfg.AdaptiveInterval <= 0 {
			return fmt.Errorf("adaptive-interval must be positive")
		}
		if cfg.AdaptiveTargetCPU <= 0 || cfg.AdaptiveTargetCPU > 100 {
			return fmt.Errorf("adaptive-target-cpu must be between 1 and 100")
		}
	}
	if cfg.FuzzyMinSize < 0 || cfg.FuzzyMaxSize < 0 {
		return fmt.Errorf("fuzzy size limits must be zero or positive")
	}
	if cfg.StreamChunkSize <= 0 {
		return fmt.Errorf("stream-chunk-size must be positive")
	}
	if cfg.MmapMinSize < 0 {
		return fmt.Errorf("mmap-min-size must be zero or positive")
	}
	if cfg.XattrMaxValueSize < 0 {
		return fmt.Errorf("xattr-max-value-size must be zero or positive")
	}
	if cfg.MetadataMaxBytes < 0 {
		return fmt.Errorf("metadata-max-bytes must be zero or positive")
	}
	if cfg.ReputationTimeout < 0 {
		return fmt.Errorf("reputation-timeout must be zero or positive")
	}
	if cfg.ReputationEndpoint != "" && !hasHTTPScheme(cfg.ReputationEndpoint) {
		return fmt.Errorf("reputation-endpoint must include scheme (http or https)")
	}
	if cfg.SandboxTimeout < 0 {
		return fmt.Errorf("sandbox-timeout must be zero or positive")
	}
	if cfg.SandboxEndpoint != "" && !hasHTTPScheme(cfg.SandboxEndpoint) {
		return fmt.Errorf("sandbox-endpoint must include scheme (http or https)")
	}
	if cfg.OtelTimeout < 0 {
		return fmt.Errorf("otel-timeout must be zero or positive")
	}
	if cfg.OtelEndpoint != "" && !hasHTTPScheme(cfg.OtelEndpoint) {
		return fmt.Errorf("otel-endpoint must include scheme (http or https)")
	}
	if cfg.TraceFlightMinAge < 0 {
		return fmt.Errorf("trace-flight-min-age must be zero or positive")
	}
	if cfg.DiagSlowScanThreshold < 0 {
		return fmt.Errorf("diag-slow-scan-threshold must be zero or positive")
	}
	return nil
}

func hasHTTPScheme(endpoint string) bool {
	return strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://")
}

func parseCommaSeparated(input string) []string {
	if input == "" {
		return []string{}
	}
	items := strings.Split(input, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

func parseHeaders(input string) map[string]string {
	headers := make(map[string]string)
	if input == "" {
		return headers
	}
	items := strings.Split(input, ",")
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		headers[key] = value
	}
	return headers
}

func normalizeAlgorithms(items []string) []string {
	normalized := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		normalized = append(normalized, item)
	}
	return normalized
}

func containsString(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
