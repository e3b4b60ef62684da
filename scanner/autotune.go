package scanner

import (
	"context"
	"math"
	"time"

	"vakta/config"
	"vakta/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"golang.org/x/time/rate"
)

// minScanRate is the floor the throttle never drops below; a stalled
// scan helps nobody.
const minScanRate = 25

type adaptiveTelemetry struct {
	queueDepthFn     func() int
	queueCapacityFn  func() int
	processedCountFn func() int64
}

func (t adaptiveTelemetry) queueDepth() int {
	if t.queueDepthFn == nil {
		return 0
	}
	return max(0, t.queueDepthFn())
}

func (t adaptiveTelemetry) queueCapacity() int {
	if t.queueCapacityFn == nil {
		return 0
	}
	return max(0, t.queueCapacityFn())
}

func (t adaptiveTelemetry) processedCount() int64 {
	if t.processedCountFn == nil {
		return 0
	}
	return max(0, t.processedCountFn())
}

type adaptiveState struct {
	rateLimit      int
	maxRate        int
	cpuEWMA        float64
	throughputEWMA float64
	queueWaitEWMA  float64
	lastProcessed  int64
	cpuPID         pidController
}

func newAdaptiveState(cfg *config.Config, limiter *rate.Limiter) *adaptiveState {
	maxRate := maxScanRate(cfg.NiceLevel, detectDiskType())
	if cfg.MaxFilesPerSecond > 0 && cfg.MaxFilesPerSecond < maxRate {
		maxRate = cfg.MaxFilesPerSecond
	}
	current := int(limiter.Limit())
	if current <= 0 || current > maxRate {
		current = maxRate
	}
	return &adaptiveState{
		rateLimit: current,
		maxRate:   maxRate,
		cpuPID:    newRatePIDController(cfg.NiceLevel),
	}
}

// startAdaptiveLoop adjusts the files-per-second limiter from host CPU
// pressure and queue backlog. The loop owns the limiter's limit; workers
// only Wait on it.
func startAdaptiveLoop(ctx context.Context, cfg *config.Config, limiter *rate.Limiter, telemetry adaptiveTelemetry) {
	if limiter == nil || !cfg.AdaptiveRate {
		return
	}
	state := newAdaptiveState(cfg, limiter)
	go func() {
		ticker := time.NewTicker(cfg.AdaptiveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			sample := currentCPUPercent()
			if sample <= 0 {
				continue
			}
			delta := computeRateDelta(cfg, state, sample, telemetry)
			applyRateAdjustment(limiter, state, delta)
		}
	}()
}

// computeRateDelta blends the CPU control term with queue pressure.
// Positive queue error means backlog is growing and the scan can speed
// up despite the CPU target; a hot CPU pulls the rate down.
func computeRateDelta(cfg *config.Config, state *adaptiveState, cpuSample float64, telemetry adaptiveTelemetry) int {
	const (
		ewmaAlpha = 0.30
		deadband  = 2.0
	)
	state.cpuEWMA = ewma(state.cpuEWMA, cpuSample, ewmaAlpha)

	dt := cfg.AdaptiveInterval.Seconds()
	if dt <= 0 {
		dt = 1
	}
	cpuError := cfg.AdaptiveTargetCPU - state.cpuEWMA
	control := state.cpuPID.Update(cpuError, dt)

	queueError, waitError, hasQueueSignal := queueSignals(state, telemetry, dt)
	if hasQueueSignal {
		control += queueError*2.2 + waitError*1.4
	}

	if math.Abs(cpuError) <= deadband &&
		(!hasQueueSignal || (math.Abs(queueError) <= 0.05 && math.Abs(waitError) <= 0.20)) {
		state.cpuPID.integral *= 0.85
		return 0
	}

	// Dampen reactions to one-off CPU spikes.
	noise := math.Abs(cpuSample - state.cpuEWMA)
	switch {
	case noise > 35:
		control *= 0.25
	case noise > 20:
		control *= 0.5
	}

	return boundedIntStep(int(math.Round(control*rateControlScale(cfg.NiceLevel))), 250)
}

func applyRateAdjustment(limiter *rate.Limiter, state *adaptiveState, delta int) {
	if limiter == nil || delta == 0 {
		return
	}
	next := clampInt(state.rateLimit+delta, minScanRate, state.maxRate)
	if next == state.rateLimit {
		return
	}
	state.rateLimit = next
	limiter.SetLimit(rate.Limit(next))
	limiter.SetBurst(next)
}

// queueSignals derives backlog pressure: how full the task channel is
// and how long, at current throughput, the backlog would take to drain.
func queueSignals(state *adaptiveState, telemetry adaptiveTelemetry, dt float64) (float64, float64, bool) {
	capacity := telemetry.queueCapacity()
	if capacity <= 0 {
		return 0, 0, false
	}
	depth := float64(telemetry.queueDepth())
	queueRatio := clampFloat(depth/float64(capacity), 0, 2)

	processed := telemetry.processedCount()
	deltaProcessed := max(int64(0), processed-state.lastProcessed)
	state.lastProcessed = processed
	state.throughputEWMA = ewma(state.throughputEWMA, float64(deltaProcessed)/dt, 0.35)

	waitSeconds := 0.0
	if depth > 0 {
		if state.throughputEWMA > 0.01 {
			waitSeconds = depth / state.throughputEWMA
		} else {
			// Backlog with no throughput reads as strong pressure.
			waitSeconds = 5.0
		}
	}
	state.queueWaitEWMA = ewma(state.queueWaitEWMA, waitSeconds, 0.35)

	targetRatio, targetWait := queueTargets(state.maxRate)
	queueError := queueRatio - targetRatio
	waitError := 0.0
	if targetWait > 0 {
		waitError = (state.queueWaitEWMA - targetWait) / targetWait
	}
	return queueError, waitError, true
}

func queueTargets(maxRate int) (float64, float64) {
	if maxRate <= 600 {
		return 0.20, 0.60
	}
	return 0.40, 0.35
}

func currentCPUPercent() float64 {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		logger.Debugf("Adaptive throttle CPU sample unavailable: %v", err)
		return 0
	}
	return percents[0]
}

func defaultScanRate(nice, diskType string) int {
	base := 800
	switch diskType {
	case "ssd":
		base = 1200
	case "hdd":
		base = 400
	}
	switch nice {
	case "low":
		return min(base, 250)
	case "medium":
		return min(base, 600)
	default:
		return base
	}
}

func maxScanRate(nice, diskType string) int {
	base := 5000
	switch diskType {
	case "ssd":
		base = 7000
	case "hdd":
		base = 3000
	}
	switch nice {
	case "low":
		return min(base, 1500)
	case "medium":
		return min(base, 3500)
	default:
		return base
	}
}

func rateControlScale(nice string) float64 {
	switch nice {
	case "low":
		return 60
	case "medium":
		return 130
	default:
		return 170
	}
}

type pidController struct {
	kp float64
	ki float64
	kd float64

	integral    float64
	prevError   float64
	hasPrev     bool
	minIntegral float64
	maxIntegral float64
	minOutput   float64
	maxOutput   float64
}

func newRatePIDController(nice string) pidController {
	controller := pidController{
		kp:          0.07,
		ki:          0.012,
		kd:          0.03,
		minIntegral: -200,
		maxIntegral: 200,
		minOutput:   -3.5,
		maxOutput:   3.5,
	}
	switch nice {
	case "low":
		controller.kp = 0.05
		controller.ki = 0.009
		controller.kd = 0.02
	case "high":
		controller.kp = 0.085
		controller.ki = 0.015
		controller.kd = 0.04
	}
	return controller
}

func (p *pidController) Update(err, dt float64) float64 {
	if dt <= 0 {
		dt = 1
	}
	p.integral = clampFloat(p.integral+err*dt, p.minIntegral, p.maxIntegral)

	derivative := 0.0
	if p.hasPrev {
		derivative = (err - p.prevError) / dt
	}
	p.prevError = err
	p.hasPrev = true

	return clampFloat(p.kp*err+p.ki*p.integral+p.kd*derivative, p.minOutput, p.maxOutput)
}

func ewma(current, sample, alpha float64) float64 {
	if current == 0 {
		return sample
	}
	return alpha*sample + (1-alpha)*current
}

func boundedIntStep(value, maxStep int) int {
	return clampInt(value, -maxStep, maxStep)
}

func clampInt(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

func clampFloat(value, minValue, maxValue float64) float64 {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
