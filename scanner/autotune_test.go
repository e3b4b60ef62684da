package scanner

import (
	"math"
	"testing"
	"time"

	"vakta/config"

	"golang.org/x/time/rate"
)

func adaptiveTestConfig(nice string) *config.Config {
	return &config.Config{
		NiceLevel:         nice,
		AdaptiveRate:      true,
		AdaptiveInterval:  time.Second,
		AdaptiveTargetCPU: 70,
	}
}

func TestComputeRateDeltaScaleUpWhenIdle(t *testing.T) {
	cfg := adaptiveTestConfig("high")
	state := &adaptiveState{rateLimit: 800, maxRate: 5000, cpuPID: newRatePIDController("high")}

	delta := computeRateDelta(cfg, state, 20, adaptiveTelemetry{})
	if delta <= 0 {
		t.Fatalf("idle CPU should raise the rate, got delta %d", delta)
	}
	if delta > 250 {
		t.Fatalf("delta must stay step-bounded, got %d", delta)
	}
}

func TestComputeRateDeltaScaleDownWhenHot(t *testing.T) {
	cfg := adaptiveTestConfig("high")
	state := &adaptiveState{rateLimit: 800, maxRate: 5000, cpuPID: newRatePIDController("high")}

	delta := computeRateDelta(cfg, state, 95, adaptiveTelemetry{})
	if delta >= 0 {
		t.Fatalf("hot CPU should lower the rate, got delta %d", delta)
	}
	if delta < -250 {
		t.Fatalf("delta must stay step-bounded, got %d", delta)
	}
}

func TestComputeRateDeltaDeadband(t *testing.T) {
	cfg := adaptiveTestConfig("medium")
	state := &adaptiveState{rateLimit: 600, maxRate: 3500, cpuPID: newRatePIDController("medium")}

	if delta := computeRateDelta(cfg, state, 70, adaptiveTelemetry{}); delta != 0 {
		t.Fatalf("on-target CPU should hold steady, got delta %d", delta)
	}
}

func TestComputeRateDeltaQueuePressure(t *testing.T) {
	cfg := adaptiveTestConfig("high")
	state := &adaptiveState{rateLimit: 800, maxRate: 5000, cpuPID: newRatePIDController("high")}
	telemetry := adaptiveTelemetry{
		queueDepthFn:     func() int { return 90 },
		queueCapacityFn:  func() int { return 100 },
		processedCountFn: func() int64 { return 0 },
	}

	// CPU exactly on target, so any push must come from the backlog.
	delta := computeRateDelta(cfg, state, 70, telemetry)
	if delta <= 0 {
		t.Fatalf("full queue should raise the rate, got delta %d", delta)
	}
}

func TestApplyRateAdjustmentClamps(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(100), 100)
	state := &adaptiveState{rateLimit: 100, maxRate: 500}

	applyRateAdjustment(limiter, state, 100000)
	if state.rateLimit != 500 || limiter.Limit() != rate.Limit(500) {
		t.Fatalf("expected clamp to maxRate 500, got state=%d limiter=%v", state.rateLimit, limiter.Limit())
	}

	applyRateAdjustment(limiter, state, -100000)
	if state.rateLimit != minScanRate || limiter.Limit() != rate.Limit(minScanRate) {
		t.Fatalf("expected clamp to floor %d, got state=%d limiter=%v", minScanRate, state.rateLimit, limiter.Limit())
	}
	if limiter.Burst() != minScanRate {
		t.Fatalf("burst should track the limit, got %d", limiter.Burst())
	}
}

func TestRatePIDOutputBounded(t *testing.T) {
	p := newRatePIDController("medium")
	for _, err := range []float64{500, -500, 1000, -1000, 250} {
		out := p.Update(err, 1)
		if math.Abs(out) > 3.5 {
			t.Fatalf("PID output escaped its bounds: %f for error %f", out, err)
		}
	}
}

func TestQueueTargetsByRate(t *testing.T) {
	ratio, wait := queueTargets(600)
	if ratio != 0.20 || wait != 0.60 {
		t.Fatalf("small-rate targets wrong: %f %f", ratio, wait)
	}
	ratio, wait = queueTargets(601)
	if ratio != 0.40 || wait != 0.35 {
		t.Fatalf("large-rate targets wrong: %f %f", ratio, wait)
	}
}

func TestScanRatesRespectNice(t *testing.T) {
	if got := defaultScanRate("low", "ssd"); got != 250 {
		t.Fatalf("low nice on ssd should cap at 250, got %d", got)
	}
	if got := defaultScanRate("high", "hdd"); got != 400 {
		t.Fatalf("high nice on hdd should follow disk base 400, got %d", got)
	}
	if got := maxScanRate("low", "ssd"); got != 1500 {
		t.Fatalf("low nice ceiling should be 1500, got %d", got)
	}
	if got := maxScanRate("medium", "hdd"); got != 3000 {
		t.Fatalf("medium nice on hdd ceiling should be 3000, got %d", got)
	}
}
