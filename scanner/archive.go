package scanner

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vakta/signatures"
	"vakta/utils"
)

// Archive inspection bounds. Package constants, not options: the caps
// are the defense against decompression bombs and deep nesting.
const (
	maxArchiveEntries    = 50
	maxArchiveEntryBytes = 2 << 20

	embeddedThreatWeight     = 30
	nestedArchiveWeight      = 10
	unscannableArchiveWeight = 5
)

// nestedArchiveSuffixes flag archives-in-archives. Flagged entries are
// never expanded; inspection stops at depth one.
var nestedArchiveSuffixes = []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz"}

// archiveTechnique extracts the leading entries of a zip-family container
// into a scoped temp directory and signature-checks each one. Containers
// the zip reader cannot open still score a flat penalty: an unreadable
// archive is exactly where a payload would hide.
type archiveTechnique struct {
	store *signatures.Store
}

func (a *archiveTechnique) Name() string { return "archive" }

func (a *archiveTechnique) Analyze(ctx context.Context, fc *FileContext) (*TechResult, error) {
	result := newTechResult(a.Name())

	reader, err := zip.OpenReader(fc.Path())
	if err != nil {
		result.Score = unscannableArchiveWeight
		result.Data["scannable"] = false
		result.Data["reason"] = fmt.Sprintf("not a zip container: %v", err)
		return result, nil
	}
	defer reader.Close()

	tempDir, err := os.MkdirTemp("", "vakta-archive-*")
	if err != nil {
		return nil, fmt.Errorf("archive temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)
	guard := utils.NewPathGuard([]string{tempDir})

	entries := reader.File
	totalEntries := len(entries)
	truncated := false
	if len(entries) > maxArchiveEntries {
		entries = entries[:maxArchiveEntries]
		truncated = true
	}

	var nested []string
	var threats []string
	inspected := 0

	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}

		name := entry.Name
		if hasNestedArchiveSuffix(name) {
			result.Score += nestedArchiveWeight
			nested = append(nested, name)
		}
		if entry.FileInfo().IsDir() {
			continue
		}

		dst := filepath.Join(tempDir, name)
		if !guard.Contains(dst) {
			continue
		}
		if err := extractEntry(entry, dst); err != nil {
			continue
		}
		inspected++

		detection, err := a.store.DetectFile(dst)
		if err != nil || !detection.Detected {
			continue
		}
		result.Score += embeddedThreatWeight
		threats = append(threats, fmt.Sprintf("%s: %s", name, detection.Label))
		result.addFinding(Finding{
			Engine:     "archive_analysis",
			Type:       detection.Label,
			Confidence: detection.Confidence,
			Pattern:    name,
		})
	}

	result.Data["scannable"] = true
	result.Data["entries"] = totalEntries
	result.Data["inspected"] = inspected
	result.Data["truncated"] = truncated
	result.Data["nested_archives"] = nested
	result.Data["embedded_threats"] = threats
	return result, nil
}

func hasNestedArchiveSuffix(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range nestedArchiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// extractEntry writes one archive member to dst, capped at
// maxArchiveEntryBytes. Oversized members are truncated rather than
// refused; a truncated bomb hashes to nothing interesting and costs a
// bounded amount of disk.
func extractEntry(entry *zip.File, dst string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, io.LimitReader(rc, maxArchiveEntryBytes))
	return err
}
