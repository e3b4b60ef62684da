package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"vakta/config"
	"vakta/diag"
	"vakta/logger"
	"vakta/output"
	"vakta/scanner"
	"vakta/systeminfo"
	"vakta/tracing"
	"vakta/update"
	"vakta/version"
)

func main() {
	if err := tracing.Start("trace.out"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start trace: %v\n", err)
	} else {
		defer tracing.Stop()
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.LogLevel)

	if cfg.TraceFlight {
		if err := tracing.StartFlightRecorder(cfg.TraceFlightMaxBytes, cfg.TraceFlightMinAge); err != nil {
			logger.Warnf("Failed to start flight recorder: %v", err)
		} else {
			defer func() {
				if err := tracing.WriteFlightRecorder(cfg.TraceFlightFile); err != nil {
					logger.Warnf("Failed to write flight recorder: %v", err)
				}
				tracing.StopFlightRecorder()
			}()
		}
	}

	if cfg.CheckUpdates {
		if latest, notes, newer, err := update.CheckForUpdate(version.Version); err == nil && newer {
			if strings.Contains(strings.ToLower(notes), "security") {
				logger.Warnf("Update available: %s -> %s (refreshed signatures included)", version.Version, latest)
			} else {
				logger.Infof("Update available: %s -> %s", version.Version, latest)
			}
		}
	}

	// Record start time
	startTime := time.Now()

	// Prepare metrics
	metrics := output.Metrics{
		StartTime: startTime.Format(time.RFC3339),
	}

	// Gather host context for the session header
	sysInfo := systeminfo.Collect(cfg)

	// Prepare output
	writer, err := output.New(cfg, sysInfo, &metrics)
	if err != nil {
		logger.Fatalf("Failed to initialize output: %v", err)
	}
	defer writer.Close()

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go handleSignalEvent(cancel, &metrics, writer, cfg.TraceFlight, cfg.TraceFlightFile, sigChan)

	diagController := diag.NewController(diag.Options{
		SlowScanThreshold:  cfg.DiagSlowScanThreshold,
		Dir:                cfg.DiagDir,
		GoroutineLeak:      cfg.DiagGoroutineLeak,
		ProgressCountFn:    writer.FilesProcessed,
		DumpFlightRecorder: tracing.WriteFlightRecorder,
	})
	diagController.Start(ctx)
	defer diagController.Close()

	// Start scanning
	s, err := scanner.New(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize scanner: %v", err)
	}
	logger.Debugf("Signature store loaded with %d entries.", s.Store().Len())
	if err := s.ScanDir(ctx, writer); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Scan interrupted before completion.")
		} else {
			logger.Fatalf("Scanning failed: %v", err)
		}
	}

	// Record end time
	metrics.EndTime = time.Now().Format(time.RFC3339)

	// Update output with final metrics
	writer.SetMetrics(metrics)

	logger.Info("Scan completed.")
}

// handleSignalEvent blocks until a signal arrives, then snapshots
// metrics, flushes the flight recorder and cancels the scan.
func handleSignalEvent(cancelFunc context.CancelFunc, metrics *output.Metrics, w *output.Writer, traceFlight bool, traceFlightFile string, sigChan chan os.Signal) {
	<-sigChan
	logger.Info("Interrupt signal received. Shutting down...")

	// Record end time upon interruption
	metrics.EndTime = time.Now().Format(time.RFC3339)
	w.SetMetrics(*metrics)

	if traceFlight {
		if err := tracing.WriteFlightRecorder(traceFlightFile); err != nil {
			logger.Warnf("Failed to write flight recorder: %v", err)
		}
		tracing.StopFlightRecorder()
	}

	cancelFunc()
}
