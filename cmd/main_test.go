package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"vakta/config"
	"vakta/logger"
	"vakta/output"
	"vakta/scanner"
	"vakta/systeminfo"
)

func TestHandleSignalEventCancelsContextAndSetsMetrics(t *testing.T) {
	logger.Init("error")

	outPath := filepath.Join(t.TempDir(), "signal.json")
	cfg := &config.Config{OutputFileName: outPath, OutputFormat: "json"}
	sysInfo := &systeminfo.SystemInfo{Hostname: "testhost"}
	metrics := &output.Metrics{StartTime: time.Now().UTC().Format(time.RFC3339)}
	w, err := output.New(cfg, sysInfo, metrics)
	if err != nil {
		t.Fatalf("output init: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)

	done := make(chan struct{})
	go func() {
		handleSignalEvent(cancel, metrics, w, false, "", sigChan)
		close(done)
	}()

	sigChan <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("expected context to be canceled")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("signal handler did not return")
	}

	if metrics.EndTime == "" {
		t.Fatal("expected EndTime to be set")
	}
	if _, err := time.Parse(time.RFC3339, metrics.EndTime); err != nil {
		t.Fatalf("invalid EndTime format: %v", err)
	}
}

func TestScanPipelineWritesReports(t *testing.T) {
	logger.Init("error")
	t.Setenv("VAKTA_DISABLE_PROGRESS", "1")

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("quarterly summary, nothing unusual"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "deploy.sh"), []byte("#!/bin/sh\necho done\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "scan.json")
	cfg := &config.Config{
		StartPaths:       []string{root},
		OutputFileName:   outPath,
		OutputFormat:     "json",
		ThreatLevel:      "medium",
		HashAlgorithms:   []string{"sha256"},
		ContentReadMode:  "auto",
		StreamChunkSize:  256 * 1024,
		MmapMinSize:      128 * 1024,
		ConcurrencyLevel: 2,
		ConcurrencySet:   true,
		SkipCount:        true,
	}

	metrics := &output.Metrics{StartTime: time.Now().UTC().Format(time.RFC3339)}
	w, err := output.New(cfg, systeminfo.Collect(cfg), metrics)
	if err != nil {
		t.Fatalf("output init: %v", err)
	}

	s, err := scanner.New(cfg)
	if err != nil {
		t.Fatalf("scanner init: %v", err)
	}
	if err := s.ScanDir(context.Background(), w); err != nil {
		t.Fatalf("scan: %v", err)
	}

	metrics.EndTime = time.Now().UTC().Format(time.RFC3339)
	w.SetMetrics(*metrics)
	w.Close()

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc struct {
		SchemaVersion string            `json:"schema_version"`
		Reports       []json.RawMessage `json:"reports"`
		Metrics       output.Metrics    `json:"metrics"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if doc.SchemaVersion != output.SchemaVersion {
		t.Fatalf("unexpected schema version: %q", doc.SchemaVersion)
	}
	if len(doc.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(doc.Reports))
	}
	if doc.Metrics.FilesProcessed != 2 {
		t.Fatalf("expected 2 files processed, got %d", doc.Metrics.FilesProcessed)
	}
	if doc.Metrics.EndTime == "" {
		t.Fatal("expected metrics end time in output")
	}
}
