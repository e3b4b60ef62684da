package output

import (
	"strings"
	"testing"

	"vakta/config"
	"vakta/scanner"

	otelLog "go.opentelemetry.io/otel/log"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

func findAttr(kvs []otelLog.KeyValue, key string) (otelLog.Value, bool) {
	for _, kv := range kvs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return otelLog.Value{}, false
}

func TestResolveOtelEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_LOGS_ENDPOINT", "https://logs.example.test/v1/logs")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://fallback.example.test")

	cfg := &config.Config{OtelEndpoint: "  https://explicit.example.test  ", OtelFromEnv: true}
	if got := resolveOtelEndpoint(cfg); got != "https://explicit.example.test" {
		t.Fatalf("expected explicit endpoint, got %q", got)
	}

	cfg = &config.Config{OtelFromEnv: true}
	if got := resolveOtelEndpoint(cfg); got != "https://logs.example.test/v1/logs" {
		t.Fatalf("expected logs env endpoint, got %q", got)
	}

	t.Setenv("OTEL_EXPORTER_OTLP_LOGS_ENDPOINT", "")
	cfg = &config.Config{OtelFromEnv: true}
	if got := resolveOtelEndpoint(cfg); got != "https://fallback.example.test" {
		t.Fatalf("expected fallback env endpoint, got %q", got)
	}

	cfg = &config.Config{OtelFromEnv: false}
	if got := resolveOtelEndpoint(cfg); got != "" {
		t.Fatalf("expected empty endpoint when env fallback disabled, got %q", got)
	}
}

func TestNewOtelLoggerDisabledWithoutEndpoint(t *testing.T) {
	o, err := newOtelLogger(&config.Config{})
	if err != nil {
		t.Fatalf("no endpoint should not error: %v", err)
	}
	if o != nil {
		t.Fatal("expected nil logger without endpoint")
	}
}

func TestOtelLoggerEndpoint(t *testing.T) {
	var nilLogger *otelLogger
	if got := nilLogger.Endpoint(); got != "" {
		t.Fatalf("nil logger should report no endpoint, got %q", got)
	}
	ol := &otelLogger{endpoint: "https://otel.example.test"}
	if got := ol.Endpoint(); got != "https://otel.example.test" {
		t.Fatalf("unexpected endpoint: %q", got)
	}
}

func TestNewOtelLoggerRejectsBareHost(t *testing.T) {
	_, err := newOtelLogger(&config.Config{OtelEndpoint: "collector.example.test:4318"})
	if err == nil || !strings.Contains(err.Error(), "scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestSanitizeReportPayload(t *testing.T) {
	payload := map[string]interface{}{
		"path":    "/home/user/secret.txt",
		"name":    "secret.txt",
		"preview": map[string]interface{}{"text": "contents"},
		"xattrs":  map[string]interface{}{"user.xdg.origin.url": "aHR0cA=="},
	}

	sanitized, ok := sanitizePayload("report", payload, otelPolicy{}).(map[string]interface{})
	if !ok {
		t.Fatal("expected sanitized map")
	}
	for _, key := range []string{"path", "preview", "xattrs"} {
		if _, present := sanitized[key]; present {
			t.Fatalf("expected %s stripped, got %+v", key, sanitized)
		}
	}
	if sanitized["name"] != "secret.txt" {
		t.Fatalf("name should survive, got %+v", sanitized)
	}
	if _, present := payload["path"]; !present {
		t.Fatal("original payload must stay untouched")
	}

	opened, ok := sanitizePayload("report", payload, otelPolicy{includePaths: true}).(map[string]interface{})
	if !ok {
		t.Fatal("expected sanitized map")
	}
	if _, present := opened["path"]; !present {
		t.Fatal("path should survive when the policy allows it")
	}
	if _, present := opened["preview"]; present {
		t.Fatal("preview never leaves the host")
	}
}

func TestReportSemanticAttributes(t *testing.T) {
	report := &scanner.Report{
		Path:               "/tmp/sample.exe",
		Name:               "sample.exe",
		Size:               1234,
		Category:           "executable",
		ThreatLevel:        "high",
		Engines:            []string{"signature_scan", "entropy_analysis"},
		Hashes:             map[string]string{"sha256": "abc123"},
		OverallThreatScore: 85,
		Classification:     scanner.VerdictMalware,
		RiskRating:         scanner.RiskCritical,
		Threats: []scanner.Finding{
			{Engine: "signature_detection", Type: "test_trojan", Confidence: 95},
		},
	}

	data := payloadToMap(report)
	kvs := reportSemanticAttributes(data)

	if v, ok := findAttr(kvs, string(semconv.FileNameKey)); !ok || v.AsString() != "sample.exe" {
		t.Fatalf("missing file name attribute: %v", kvs)
	}
	if v, ok := findAttr(kvs, string(semconv.FileSizeKey)); !ok || v.AsInt64() != 1234 {
		t.Fatalf("missing file size attribute: %v", kvs)
	}
	if v, ok := findAttr(kvs, "vakta.report.score"); !ok || v.AsInt64() != 85 {
		t.Fatalf("missing score attribute: %v", kvs)
	}
	if v, ok := findAttr(kvs, "vakta.report.classification"); !ok || v.AsString() != "MALWARE" {
		t.Fatalf("missing classification attribute: %v", kvs)
	}
	if v, ok := findAttr(kvs, "vakta.report.risk_rating"); !ok || v.AsString() != "CRITICAL" {
		t.Fatalf("missing risk attribute: %v", kvs)
	}
	if v, ok := findAttr(kvs, "vakta.file.hash.sha256"); !ok || v.AsString() != "abc123" {
		t.Fatalf("missing hash attribute: %v", kvs)
	}
	if v, ok := findAttr(kvs, "vakta.report.finding_count"); !ok || v.AsInt64() != 1 {
		t.Fatalf("missing finding count: %v", kvs)
	}
	if _, ok := findAttr(kvs, string(semconv.FilePathKey)); !ok {
		t.Fatalf("path attribute should follow the payload: %v", kvs)
	}
}

func TestReportSemanticAttributesRedacted(t *testing.T) {
	report := &scanner.Report{Path: "/tmp/sample.exe", Name: "sample.exe"}
	data := payloadToMap(report)
	sanitized, _ := sanitizePayload("report", data, otelPolicy{}).(map[string]interface{})

	kvs := reportSemanticAttributes(sanitized)
	if _, ok := findAttr(kvs, string(semconv.FilePathKey)); ok {
		t.Fatalf("redacted payload must not yield a path attribute: %v", kvs)
	}
	if _, ok := findAttr(kvs, string(semconv.FileNameKey)); !ok {
		t.Fatalf("name attribute should survive redaction: %v", kvs)
	}
}

func TestHostSemanticAttributes(t *testing.T) {
	data := map[string]interface{}{
		"hostname":         "scanner-01",
		"arch":             "amd64",
		"platform":         "debian",
		"platform_version": "12",
		"kernel_version":   "6.1.0",
		"cpu_count":        16,
		"total_memory":     float64(68719476736),
		"scanner_version":  "0.3.0",
	}
	kvs := hostSemanticAttributes(data)

	if v, ok := findAttr(kvs, string(semconv.HostNameKey)); !ok || v.AsString() != "scanner-01" {
		t.Fatalf("missing hostname: %v", kvs)
	}
	if v, ok := findAttr(kvs, string(semconv.OSDescriptionKey)); !ok || !strings.Contains(v.AsString(), "6.1.0") {
		t.Fatalf("os description should include the kernel: %v", kvs)
	}
	if v, ok := findAttr(kvs, "vakta.host.cpu_count"); !ok || v.AsInt64() != 16 {
		t.Fatalf("missing cpu count: %v", kvs)
	}
}

func TestMetricsSemanticAttributes(t *testing.T) {
	data := payloadToMap(&Metrics{
		StartTime:      "2026-01-02T03:04:05Z",
		TotalFiles:     100,
		FilesScanned:   90,
		FilesProcessed: 90,
		ThreatsFound:   2,
	})
	kvs := metricsSemanticAttributes(data)

	if v, ok := findAttr(kvs, "vakta.metrics.total_files"); !ok || v.AsInt64() != 100 {
		t.Fatalf("missing total files: %v", kvs)
	}
	if v, ok := findAttr(kvs, "vakta.metrics.threats_found"); !ok || v.AsInt64() != 2 {
		t.Fatalf("missing threat count: %v", kvs)
	}
}

func TestToLogValueShapes(t *testing.T) {
	if v := toLogValue("s"); v.Kind() != otelLog.KindString {
		t.Fatalf("string kind: %v", v.Kind())
	}
	if v := toLogValue(map[string]interface{}{"k": 1}); v.Kind() != otelLog.KindMap {
		t.Fatalf("map kind: %v", v.Kind())
	}
	if v := toLogValue([]interface{}{"a", 1}); v.Kind() != otelLog.KindSlice {
		t.Fatalf("slice kind: %v", v.Kind())
	}
	if v := toLogValue(struct{}{}); v.Kind() != otelLog.KindEmpty {
		t.Fatalf("unknown types fall back to empty: %v", v.Kind())
	}
}
