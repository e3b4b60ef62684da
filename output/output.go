package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"vakta/config"
	"vakta/logger"
	"vakta/scanner"
	"vakta/systeminfo"
)

// SchemaVersion tags every output file and exported record. Consumers
// key their parsers on it.
const SchemaVersion = "2.0"

// fsync throttling: the first record of a file is made durable
// immediately, after that every flushEveryRecords records or
// flushMaxInterval, whichever comes first.
const (
	flushEveryRecords = 128
	flushMaxInterval  = 2 * time.Second
)

// Metrics is the session footer. Start/end times and the traversal
// total come from the caller; the counters are owned by the Writer.
type Metrics struct {
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	TotalFiles     int64  `json:"total_files"`
	FilesScanned   int64  `json:"files_scanned"`
	FilesProcessed int64  `json:"files_processed"`
	ThreatsFound   int64  `json:"threats_found"`
}

// record is the ndjson envelope. One line per record, self-describing.
type record struct {
	RecordType    string      `json:"record_type"`
	SchemaVersion string      `json:"schema_version"`
	Payload       interface{} `json:"payload"`
}

// Writer streams scan reports to disk and, when configured, to an OTLP
// collector. The json format produces one document per file (session
// header, reports array, metrics footer); ndjson produces enveloped
// lines. Files rotate at the configured size, each rotation
// self-contained.
type Writer struct {
	mu      sync.Mutex
	file    *os.File
	buf     *bufio.Writer
	first   bool
	cfg     *config.Config
	sysInfo *systeminfo.SystemInfo
	metrics *Metrics
	otel    *otelLogger
	base    string
	ext     string
	index   int
	format  string

	recordsSinceSync int
	lastSyncAt       time.Time

	filesScanned   atomic.Int64
	filesProcessed atomic.Int64
	threatsFound   atomic.Int64
}

func New(cfg *config.Config, sysInfo *systeminfo.SystemInfo, m *Metrics) (*Writer, error) {
	ext := filepath.Ext(cfg.OutputFileName)
	base := strings.TrimSuffix(cfg.OutputFileName, ext)
	format := strings.ToLower(cfg.OutputFormat)
	if format == "" {
		format = "json"
	}
	if sysInfo == nil {
		sysInfo = &systeminfo.SystemInfo{}
	}

	w := &Writer{
		first:   true,
		cfg:     cfg,
		sysInfo: sysInfo,
		metrics: m,
		base:    base,
		ext:     ext,
		format:  format,
	}
	otel, err := newOtelLogger(cfg)
	if err != nil {
		logger.Warnf("OTLP export disabled: %v", err)
	} else {
		w.otel = otel
	}

	if err := w.openFile(); err != nil {
		return nil, err
	}
	w.emitRecord("system_info", w.sysInfo)
	return w, nil
}

// WriteReport satisfies scanner.ReportSink. Reports from concurrent
// workers interleave in arrival order.
func (w *Writer) WriteReport(report *scanner.Report) error {
	w.filesProcessed.Add(1)
	if report.HasThreat() {
		w.threatsFound.Add(1)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.format {
	case "ndjson":
		if err := w.writeRecordLocked("report", report); err != nil {
			return err
		}
	default:
		if !w.first {
			if _, err := w.buf.WriteString(",\n"); err != nil {
				return err
			}
		}
		data, err := marshalJSONIndent(report, "    ", "  ")
		if err != nil {
			return err
		}
		if _, err := w.buf.WriteString("    "); err != nil {
			return err
		}
		if _, err := w.buf.Write(data); err != nil {
			return err
		}
		w.first = false
	}
	w.emitRecord("report", report)

	w.recordsSinceSync++
	w.flushLocked()
	if w.shouldSync() {
		_ = w.file.Sync()
		w.recordsSinceSync = 0
		w.lastSyncAt = time.Now()
	}

	if w.cfg.MaxOutputFileSize > 0 {
		if info, err := w.file.Stat(); err == nil && info.Size() >= w.cfg.MaxOutputFileSize {
			w.rotateLocked()
		}
	}
	return nil
}

// IncrementFilesScanned counts files the traversal admitted for
// scanning, before any worker picks them up.
func (w *Writer) IncrementFilesScanned() { w.filesScanned.Add(1) }

func (w *Writer) FilesScanned() int64   { return w.filesScanned.Load() }
func (w *Writer) FilesProcessed() int64 { return w.filesProcessed.Load() }
func (w *Writer) ThreatsFound() int64   { return w.threatsFound.Load() }

// SetMetrics installs the caller-owned fields of the footer; counter
// fields come from the Writer's own tallies.
func (w *Writer) SetMetrics(m Metrics) {
	m.FilesScanned = w.filesScanned.Load()
	m.FilesProcessed = w.filesProcessed.Load()
	m.ThreatsFound = w.threatsFound.Load()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.metrics = &m
}

func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.emitRecord("metrics", w.metricsSnapshotLocked())
	w.closeFileLocked()
	if w.otel != nil {
		w.otel.Shutdown()
	}
}

func (w *Writer) shouldSync() bool {
	if w.recordsSinceSync <= 1 {
		return true
	}
	if w.recordsSinceSync >= flushEveryRecords {
		return true
	}
	return time.Since(w.lastSyncAt) > flushMaxInterval
}

func (w *Writer) openFile() error {
	name := w.base + w.ext
	if w.index > 0 {
		name = fmt.Sprintf("%s.%d%s", w.base, w.index, w.ext)
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	w.file = f
	w.buf = bufio.NewWriterSize(f, 1024*1024)
	w.first = true
	w.recordsSinceSync = 0
	w.lastSyncAt = time.Now()

	switch w.format {
	case "ndjson":
		if err := w.writeRecordLocked("system_info", w.sysInfo); err != nil {
			return err
		}
	default:
		if err := w.writeJSONHeader(); err != nil {
			return err
		}
	}
	return w.buf.Flush()
}

func (w *Writer) writeJSONHeader() error {
	if _, err := fmt.Fprintf(w.buf, "{\n  \"schema_version\": %q", SchemaVersion); err != nil {
		return err
	}
	sysBytes, err := marshalJSONIndent(w.sysInfo, "  ", "  ")
	if err != nil {
		return err
	}
	if _, err := w.buf.WriteString(",\n  \"system_info\": "); err != nil {
		return err
	}
	if _, err := w.buf.Write(sysBytes); err != nil {
		return err
	}
	if _, err := w.buf.WriteString(",\n  \"reports\": [\n"); err != nil {
		return err
	}
	return nil
}

func (w *Writer) writeRecordLocked(recordType string, payload interface{}) error {
	data, err := marshalJSON(record{
		RecordType:    recordType,
		SchemaVersion: SchemaVersion,
		Payload:       payload,
	})
	if err != nil {
		return err
	}
	if _, err := w.buf.Write(data); err != nil {
		return err
	}
	_, err = w.buf.WriteString("\n")
	return err
}

func (w *Writer) rotateLocked() {
	w.closeFileLocked()
	w.index++
	if err := w.openFile(); err != nil {
		logger.Errorf("Failed to rotate output file: %v", err)
	}
}

func (w *Writer) closeFileLocked() {
	if w.file == nil {
		return
	}
	metrics := w.metricsSnapshotLocked()
	switch w.format {
	case "ndjson":
		_ = w.writeRecordLocked("metrics", metrics)
	default:
		_, _ = w.buf.WriteString("\n  ]")
		if mBytes, err := marshalJSONIndent(metrics, "  ", "  "); err == nil {
			_, _ = w.buf.WriteString(",\n  \"metrics\": ")
			_, _ = w.buf.Write(mBytes)
		}
		_, _ = w.buf.WriteString("\n}\n")
	}
	w.flushLocked()
	_ = w.file.Sync()
	_ = w.file.Close()
	w.file = nil
}

func (w *Writer) metricsSnapshotLocked() *Metrics {
	m := Metrics{}
	if w.metrics != nil {
		m = *w.metrics
	}
	m.FilesScanned = w.filesScanned.Load()
	m.FilesProcessed = w.filesProcessed.Load()
	m.ThreatsFound = w.threatsFound.Load()
	return &m
}

func (w *Writer) flushLocked() {
	if w.buf != nil {
		_ = w.buf.Flush()
	}
}

func (w *Writer) emitRecord(recordType string, payload interface{}) {
	if w.otel == nil {
		return
	}
	w.otel.Emit(recordType, payload)
}
