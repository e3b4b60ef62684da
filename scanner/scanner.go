package scanner

import (
	"context"
	"io/fs"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"vakta/catalog"
	"vakta/config"
	"vakta/logger"
	"vakta/utils"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

// ReportSink receives finished scan reports. The output writer
// implements it; tests substitute their own.
type ReportSink interface {
	WriteReport(*Report) error
	IncrementFilesScanned()
}

type fileScanTask struct {
	path string
}

// ScanDir walks the configured start paths and scans every matching
// regular file through a bounded worker pool. Traversal, scanning and
// writing overlap; ctx cancels the whole pipeline.
func (s *Scanner) ScanDir(ctx context.Context, sink ReportSink) error {
	cfg := s.cfg
	adjustConcurrency(cfg)

	level, err := catalog.ParseThreatLevel(cfg.ThreatLevel)
	if err != nil {
		level = catalog.ThreatMedium
	}

	matcher := utils.NewPatternMatcher(cfg.IncludePatterns, cfg.ExcludePatterns)
	w := fastWalker{}

	var total int64 = -1
	if !cfg.SkipCount {
		total = countTotalFiles(ctx, w, cfg, matcher)
	}
	bar := newProgressBar(cfg, total)

	limiter := newScanLimiter(cfg)
	filesChan := make(chan fileScanTask, cfg.ConcurrencyLevel*2)
	var processed atomic.Int64

	if limiter != nil && cfg.AdaptiveRate {
		startAdaptiveLoop(ctx, cfg, limiter, adaptiveTelemetry{
			queueDepthFn:     func() int { return len(filesChan) },
			queueCapacityFn:  func() int { return cap(filesChan) },
			processedCountFn: processed.Load,
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < cfg.ConcurrencyLevel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range filesChan {
				if ctx.Err() != nil {
					continue
				}
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						continue
					}
				}
				report := s.ScanFile(ctx, task.path, level)
				if report.HasThreat() {
					logger.Warnf("Threat in %s: %s (score %d)", report.Path, report.Classification, report.OverallThreatScore)
				}
				if err := sink.WriteReport(report); err != nil {
					logger.Errorf("Failed to write report for %s: %v", task.path, err)
				}
				processed.Add(1)
				if bar != nil {
					bar.Add(1)
				}
			}
		}()
	}

	var walkErr error
	go func() {
		defer close(filesChan)
		for _, root := range cfg.StartPaths {
			err := w.Walk(ctx, root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					logger.Debugf("Walk error at %s: %v", path, err)
					return nil
				}
				if d == nil {
					return nil
				}
				// Hidden filtering never applies to the start path itself:
				// scanning a dot-directory explicitly is a deliberate ask.
				if cfg.SkipHidden && path != root && isHiddenName(d.Name()) {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if d.IsDir() || !d.Type().IsRegular() {
					return nil
				}
				if !matcher.ShouldInclude(path) {
					return nil
				}
				if cfg.MaxFileSize > 0 {
					if info, err := d.Info(); err == nil && info.Size() > cfg.MaxFileSize {
						logger.Debugf("Skipping %s: exceeds max file size", path)
						return nil
					}
				}
				sink.IncrementFilesScanned()
				select {
				case filesChan <- fileScanTask{path: path}:
				case <-ctx.Done():
					return ctx.Err()
				}
				return nil
			})
			if err != nil && walkErr == nil && err != context.Canceled {
				walkErr = err
			}
		}
	}()

	wg.Wait()
	if bar != nil {
		bar.Finish()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return walkErr
}

// adjustConcurrency derates the worker count by nice level unless the
// user pinned it explicitly.
func adjustConcurrency(cfg *config.Config) {
	if cfg.ConcurrencySet {
		return
	}
	switch cfg.NiceLevel {
	case "low":
		cfg.ConcurrencyLevel = 1
	case "medium":
		cfg.ConcurrencyLevel = max(1, runtime.NumCPU()/2)
	default:
		cfg.ConcurrencyLevel = runtime.NumCPU()
	}
}

// newScanLimiter builds the files-per-second limiter. An explicit
// max-files-per-second pins the rate; otherwise adaptive mode starts
// from a nice-level default that the throttle loop adjusts.
func newScanLimiter(cfg *config.Config) *rate.Limiter {
	if cfg.MaxFilesPerSecond > 0 {
		return rate.NewLimiter(rate.Limit(cfg.MaxFilesPerSecond), cfg.MaxFilesPerSecond)
	}
	if cfg.AdaptiveRate {
		initial := defaultScanRate(cfg.NiceLevel, detectDiskType())
		return rate.NewLimiter(rate.Limit(initial), initial)
	}
	return nil
}

// countTotalFiles pre-walks the roots so the progress bar can show a
// total. Only runs when the user disables skip-count. The filters here
// must mirror the scan walk or the bar total drifts.
func countTotalFiles(ctx context.Context, w walker, cfg *config.Config, matcher *utils.PatternMatcher) int64 {
	var count int64
	for _, root := range cfg.StartPaths {
		_ = w.Walk(ctx, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d == nil {
				return nil
			}
			if cfg.SkipHidden && path != root && isHiddenName(d.Name()) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !matcher.ShouldInclude(path) {
				return nil
			}
			if cfg.MaxFileSize > 0 {
				if info, err := d.Info(); err == nil && info.Size() > cfg.MaxFileSize {
					return nil
				}
			}
			count++
			return nil
		})
	}
	return count
}

// progressVisible reports whether the progress bar should render.
// VAKTA_DISABLE_PROGRESS suppresses it for scripted runs.
func progressVisible() bool {
	return os.Getenv("VAKTA_DISABLE_PROGRESS") == ""
}

func newProgressBar(cfg *config.Config, total int64) *progressbar.ProgressBar {
	if !progressVisible() {
		return nil
	}
	if cfg.SkipCount || total < 0 {
		return progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Scanning files..."),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
		)
	}
	return progressbar.NewOptions(int(total),
		progressbar.OptionSetDescription("Scanning files..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetWriter(os.Stderr),
	)
}
