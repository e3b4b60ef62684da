package diag

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeProfileWriter struct {
	content string
}

func (f fakeProfileWriter) WriteTo(w io.Writer, debug int) error {
	_, err := io.WriteString(w, f.content)
	return err
}

func TestRunProbeEmitsStallArtifacts(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	controller := NewController(Options{
		SlowScanThreshold: 2 * time.Second,
		Dir:               dir,
		ProgressCountFn:   func() int64 { return 42 },
		DumpFlightRecorder: func(path string) error {
			return os.WriteFile(path, []byte("flight"), 0600)
		},
		NowFn: func() time.Time { return now },
	})
	controller.lastProgress = 42
	controller.lastProgressAt = now

	controller.runProbe(now.Add(3 * time.Second))

	events, err := filepath.Glob(filepath.Join(dir, "vakta-slow-scan-*.json"))
	if err != nil {
		t.Fatalf("glob events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 stall event, got %d", len(events))
	}
	raw, err := os.ReadFile(events[0])
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var event map[string]interface{}
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event["event"] != "slow_scan_threshold_exceeded" {
		t.Fatalf("unexpected event type: %v", event["event"])
	}
	if event["progress_count"] != float64(42) {
		t.Fatalf("unexpected progress count: %v", event["progress_count"])
	}
	if event["threshold_ms"] != float64(2000) {
		t.Fatalf("unexpected threshold: %v", event["threshold_ms"])
	}
	if event["observed_stalled_ms"] != float64(3000) {
		t.Fatalf("unexpected stall duration: %v", event["observed_stalled_ms"])
	}

	flights, err := filepath.Glob(filepath.Join(dir, "vakta-flight-*.out"))
	if err != nil {
		t.Fatalf("glob flights: %v", err)
	}
	if len(flights) != 1 {
		t.Fatalf("expected 1 flight recorder dump, got %d", len(flights))
	}
}

func TestRunProbeDedupsWhileStalled(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	progress := int64(7)

	controller := NewController(Options{
		SlowScanThreshold: 2 * time.Second,
		Dir:               dir,
		ProgressCountFn:   func() int64 { return progress },
		NowFn:             func() time.Time { return now },
	})
	controller.lastProgress = progress
	controller.lastProgressAt = now

	controller.runProbe(now.Add(3 * time.Second))
	controller.runProbe(now.Add(4 * time.Second))

	events, err := filepath.Glob(filepath.Join(dir, "vakta-slow-scan-*.json"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected repeat dump suppressed within threshold, got %d events", len(events))
	}

	progress = 8
	controller.runProbe(now.Add(5 * time.Second))
	controller.runProbe(now.Add(6 * time.Second))

	events, err = filepath.Glob(filepath.Join(dir, "vakta-slow-scan-*.json"))
	if err != nil {
		t.Fatalf("glob after progress: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected no dump after progress resumed, got %d events", len(events))
	}
}

func TestWriteProfileAvailableAndUnavailable(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	controller := NewController(Options{
		Dir:   dir,
		NowFn: func() time.Time { return now },
		ProfileLookupFn: func(name string) profileWriter {
			if name == "goroutine" {
				return fakeProfileWriter{content: "goroutine-dump"}
			}
			return nil
		},
	})

	path, err := controller.writeProfile("goroutine", 0)
	if err != nil {
		t.Fatalf("write available profile: %v", err)
	}
	if base := filepath.Base(path); !strings.HasPrefix(base, "vakta-goroutine-profile-") {
		t.Fatalf("unexpected profile name: %s", base)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written profile: %v", err)
	}
	if string(data) != "goroutine-dump" {
		t.Fatalf("unexpected profile content: %q", string(data))
	}

	if _, err := controller.writeProfile("heap-missing", 0); err == nil {
		t.Fatal("expected unavailable profile to return error")
	}
}

func TestCloseWritesGoroutineLeakProfileWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	controller := NewController(Options{
		Dir:           dir,
		GoroutineLeak: true,
		NowFn: func() time.Time {
			return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
		},
		ProfileLookupFn: func(name string) profileWriter {
			if name == "goroutine" {
				return fakeProfileWriter{content: "leak-profile"}
			}
			return nil
		},
	})

	controller.Close()

	matches, err := filepath.Glob(filepath.Join(dir, "vakta-goroutine-profile-*.pprof"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 goroutine profile file, got %d", len(matches))
	}
}

func TestStartDisabledWithoutThreshold(t *testing.T) {
	controller := NewController(Options{
		ProgressCountFn: func() int64 { return 0 },
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller.Start(ctx)
	if controller.stopCh != nil {
		t.Fatal("expected probe to stay disabled without a threshold")
	}
	controller.Close()
}
