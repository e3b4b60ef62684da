package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vakta/config"
	"vakta/logger"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	otelLog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

// otelLogger mirrors the file output to an OTLP logs collector. Records
// pass through a redaction policy first: raw paths and xattr values stay
// local unless the operator opts in, and sandbox previews never leave
// the host.
type otelLogger struct {
	provider *sdklog.LoggerProvider
	logger   otelLog.Logger
	timeout  time.Duration
	endpoint string
	policy   otelPolicy
}

type otelPolicy struct {
	includePaths bool
}

func newOtelLogger(cfg *config.Config) (*otelLogger, error) {
	if cfg == nil {
		return nil, nil
	}
	endpoint := resolveOtelEndpoint(cfg)
	if endpoint == "" {
		return nil, nil
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("otel endpoint must include scheme (http or https)")
	}

	opts := []otlploghttp.Option{otlploghttp.WithEndpointURL(endpoint)}
	if len(cfg.OtelHeaders) > 0 {
		opts = append(opts, otlploghttp.WithHeaders(cfg.OtelHeaders))
	}
	if cfg.OtelTimeout > 0 {
		opts = append(opts, otlploghttp.WithTimeout(cfg.OtelTimeout))
	}

	exp, err := otlploghttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.OtelServiceName),
	)
	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
		sdklog.WithResource(res),
	)

	return &otelLogger{
		provider: provider,
		logger:   provider.Logger("vakta"),
		timeout:  cfg.OtelTimeout,
		endpoint: endpoint,
		policy:   otelPolicy{includePaths: cfg.OtelExportPaths},
	}, nil
}

// resolveOtelEndpoint prefers the explicit config endpoint; the
// standard OTEL environment variables apply only when the operator
// allows the fallback.
func resolveOtelEndpoint(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	if endpoint := strings.TrimSpace(cfg.OtelEndpoint); endpoint != "" {
		return endpoint
	}
	if !cfg.OtelFromEnv {
		return ""
	}
	if endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_LOGS_ENDPOINT")); endpoint != "" {
		return endpoint
	}
	return strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
}

func (o *otelLogger) Endpoint() string {
	if o == nil {
		return ""
	}
	return o.endpoint
}

func (o *otelLogger) Emit(recordType string, payload interface{}) {
	if o == nil || o.logger == nil {
		return
	}
	safePayload := sanitizePayload(recordType, payload, o.policy)

	var record otelLog.Record
	record.SetTimestamp(time.Now())
	record.SetObservedTimestamp(time.Now())
	record.SetEventName("vakta.record")
	record.AddAttributes(
		otelLog.String("record_type", recordType),
		otelLog.String("schema_version", SchemaVersion),
	)
	if attrs := semanticAttributes(recordType, safePayload); len(attrs) > 0 {
		record.AddAttributes(attrs...)
	}

	value := toLogValue(safePayload)
	if value.Kind() == otelLog.KindEmpty {
		if data, err := json.Marshal(safePayload); err == nil {
			record.SetBody(otelLog.StringValue(string(data)))
		}
	} else {
		record.SetBody(value)
	}

	o.logger.Emit(context.Background(), record)
}

func (o *otelLogger) Shutdown() {
	if o == nil || o.provider == nil {
		return
	}
	timeout := o.timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := o.provider.Shutdown(ctx); err != nil {
		logger.Debugf("OTLP shutdown failed: %v", err)
	}
}

func sanitizePayload(recordType string, payload interface{}, policy otelPolicy) interface{} {
	data := payloadToMap(payload)
	if len(data) == 0 {
		return payload
	}
	if recordType != "report" {
		return data
	}

	sanitized := cloneMap(data)
	delete(sanitized, "preview")
	if !policy.includePaths {
		delete(sanitized, "path")
		delete(sanitized, "xattrs")
	}
	return sanitized
}

func semanticAttributes(recordType string, payload interface{}) []otelLog.KeyValue {
	data := payloadToMap(payload)
	if len(data) == 0 {
		return nil
	}

	switch recordType {
	case "report":
		return reportSemanticAttributes(data)
	case "system_info":
		return hostSemanticAttributes(data)
	case "metrics":
		return metricsSemanticAttributes(data)
	default:
		return nil
	}
}

// reportSemanticAttributes lifts the fields a collector queries on into
// flat attributes. The payload body carries everything else.
func reportSemanticAttributes(data map[string]interface{}) []otelLog.KeyValue {
	var kvs []otelLog.KeyValue

	path := getStringField(data, "path")
	name := getStringField(data, "name")
	if name == "" && path != "" {
		name = filepath.Base(path)
	}
	if path != "" {
		kvs = append(kvs, otelLog.String(string(semconv.FilePathKey), path))
		kvs = append(kvs, otelLog.String(string(semconv.FileDirectoryKey), filepath.Dir(path)))
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			kvs = append(kvs, otelLog.String(string(semconv.FileExtensionKey), ext))
		}
	}
	if name != "" {
		kvs = append(kvs, otelLog.String(string(semconv.FileNameKey), name))
	}
	if size, ok := getInt64Field(data, "size"); ok {
		kvs = append(kvs, otelLog.Int64(string(semconv.FileSizeKey), size))
	}

	kvs = appendStringAttr(kvs, "vakta.report.classification", getStringField(data, "classification"))
	kvs = appendStringAttr(kvs, "vakta.report.risk_rating", getStringField(data, "risk_rating"))
	kvs = appendStringAttr(kvs, "vakta.report.threat_level", getStringField(data, "threat_level"))
	kvs = appendStringAttr(kvs, "vakta.report.category", getStringField(data, "category"))
	kvs = appendStringAttr(kvs, "vakta.report.mime_type", getStringField(data, "mime_type"))
	kvs = appendStringAttr(kvs, "vakta.report.error", getStringField(data, "error"))

	if score, ok := getInt64Field(data, "overall_threat_score"); ok {
		kvs = append(kvs, otelLog.Int64("vakta.report.score", score))
	}
	if entropyVal, ok := getFloat64Field(data, "entropy"); ok {
		kvs = append(kvs, otelLog.Float64("vakta.report.entropy", entropyVal))
	}
	if duration, ok := getFloat64Field(data, "scan_duration"); ok {
		kvs = append(kvs, otelLog.Float64("vakta.report.scan_duration", duration))
	}

	if engines := getStringSliceField(data, "engines"); len(engines) > 0 {
		values := make([]otelLog.Value, 0, len(engines))
		for _, engine := range engines {
			values = append(values, otelLog.StringValue(engine))
		}
		kvs = append(kvs, otelLog.KeyValue{Key: "vakta.report.engines", Value: otelLog.SliceValue(values...)})
	}
	if findings, ok := getFieldValue(data, "threats").([]interface{}); ok {
		kvs = append(kvs, otelLog.Int64("vakta.report.finding_count", int64(len(findings))))
	}

	if hashes := getStringMapField(data, "hashes"); len(hashes) > 0 {
		for algo, value := range hashes {
			if value == "" {
				continue
			}
			kvs = append(kvs, otelLog.String(fmt.Sprintf("vakta.file.hash.%s", algo), value))
		}
	}
	if hashes := getStringMapField(data, "fuzzy_hashes"); len(hashes) > 0 {
		for algo, value := range hashes {
			if value == "" {
				continue
			}
			kvs = append(kvs, otelLog.String(fmt.Sprintf("vakta.file.fuzzy_hash.%s", algo), value))
		}
	}

	return kvs
}

func hostSemanticAttributes(data map[string]interface{}) []otelLog.KeyValue {
	var kvs []otelLog.KeyValue

	kvs = appendStringAttr(kvs, string(semconv.HostNameKey), getStringField(data, "hostname"))
	kvs = appendStringAttr(kvs, string(semconv.HostArchKey), getStringField(data, "arch"))
	kvs = appendStringAttr(kvs, string(semconv.OSVersionKey), getStringField(data, "platform_version"))

	platform := getStringField(data, "platform")
	if kernel := getStringField(data, "kernel_version"); kernel != "" && platform != "" {
		kvs = append(kvs, otelLog.String(string(semconv.OSDescriptionKey), fmt.Sprintf("%s (%s)", platform, kernel)))
	} else {
		kvs = appendStringAttr(kvs, string(semconv.OSDescriptionKey), platform)
	}

	if count, ok := getInt64Field(data, "cpu_count"); ok {
		kvs = append(kvs, otelLog.Int64("vakta.host.cpu_count", count))
	}
	if total, ok := getInt64Field(data, "total_memory"); ok {
		kvs = append(kvs, otelLog.Int64("vakta.host.total_memory", total))
	}
	kvs = appendStringAttr(kvs, "vakta.scanner.version", getStringField(data, "scanner_version"))

	return kvs
}

func metricsSemanticAttributes(data map[string]interface{}) []otelLog.KeyValue {
	var kvs []otelLog.KeyValue

	kvs = appendStringAttr(kvs, "vakta.metrics.start_time", getStringField(data, "start_time"))
	kvs = appendStringAttr(kvs, "vakta.metrics.end_time", getStringField(data, "end_time"))
	if totalFiles, ok := getInt64Field(data, "total_files"); ok {
		kvs = append(kvs, otelLog.Int64("vakta.metrics.total_files", totalFiles))
	}
	if filesScanned, ok := getInt64Field(data, "files_scanned"); ok {
		kvs = append(kvs, otelLog.Int64("vakta.metrics.files_scanned", filesScanned))
	}
	if filesProcessed, ok := getInt64Field(data, "files_processed"); ok {
		kvs = append(kvs, otelLog.Int64("vakta.metrics.files_processed", filesProcessed))
	}
	if threatsFound, ok := getInt64Field(data, "threats_found"); ok {
		kvs = append(kvs, otelLog.Int64("vakta.metrics.threats_found", threatsFound))
	}

	return kvs
}

func payloadToMap(payload interface{}) map[string]interface{} {
	switch v := payload.(type) {
	case map[string]interface{}:
		return v
	case map[string]string:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			out[key] = value
		}
		return out
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil
		}
		var decoded map[string]interface{}
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil
		}
		return decoded
	}
}

func cloneMap(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func getFieldValue(values map[string]interface{}, key string) interface{} {
	if values == nil {
		return nil
	}
	return values[key]
}

func getStringField(values map[string]interface{}, key string) string {
	value, ok := values[key]
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

func getInt64Field(values map[string]interface{}, key string) (int64, bool) {
	value, ok := values[key]
	if !ok || value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func getFloat64Field(values map[string]interface{}, key string) (float64, bool) {
	value, ok := values[key]
	if !ok || value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func getStringSliceField(values map[string]interface{}, key string) []string {
	value, ok := values[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

func getStringMapField(values map[string]interface{}, key string) map[string]string {
	value, ok := values[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case map[string]string:
		return v
	case map[string]interface{}:
		out := make(map[string]string, len(v))
		for k, val := range v {
			if val == nil {
				continue
			}
			out[k] = fmt.Sprint(val)
		}
		return out
	default:
		return nil
	}
}

func toLogValue(value interface{}) otelLog.Value {
	switch v := value.(type) {
	case nil:
		return otelLog.Value{}
	case string:
		return otelLog.StringValue(v)
	case []byte:
		return otelLog.BytesValue(v)
	case bool:
		return otelLog.BoolValue(v)
	case int:
		return otelLog.IntValue(v)
	case int64:
		return otelLog.Int64Value(v)
	case float64:
		return otelLog.Float64Value(v)
	case float32:
		return otelLog.Float64Value(float64(v))
	case map[string]interface{}:
		return otelLog.MapValue(toLogKeyValues(v)...)
	case map[string]string:
		kvs := make([]otelLog.KeyValue, 0, len(v))
		for k, val := range v {
			kvs = append(kvs, otelLog.String(k, val))
		}
		return otelLog.MapValue(kvs...)
	case []string:
		values := make([]otelLog.Value, 0, len(v))
		for _, item := range v {
			values = append(values, otelLog.StringValue(item))
		}
		return otelLog.SliceValue(values...)
	case []interface{}:
		values := make([]otelLog.Value, 0, len(v))
		for _, item := range v {
			values = append(values, toLogValue(item))
		}
		return otelLog.SliceValue(values...)
	default:
		return otelLog.Value{}
	}
}

func toLogKeyValues(values map[string]interface{}) []otelLog.KeyValue {
	kvs := make([]otelLog.KeyValue, 0, len(values))
	for key, value := range values {
		kvs = append(kvs, otelLog.KeyValue{Key: key, Value: toLogValue(value)})
	}
	return kvs
}

func appendStringAttr(kvs []otelLog.KeyValue, key, value string) []otelLog.KeyValue {
	if value == "" {
		return kvs
	}
	return append(kvs, otelLog.String(key, value))
}
