package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the counters cpick records. A nil *Metrics is valid and
// records nothing, so packages can be used without telemetry.
type Metrics struct {
	CaptureAttempts metric.Int64Counter
	SamplingTicks   metric.Int64Counter
	SamplingCache   metric.Int64Counter
	Commits         metric.Int64Counter
	PaletteOps      metric.Int64Counter
}

// NewMetrics creates the instruments from the global MeterProvider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(ScopeName)
	m := &Metrics{}
	var err error

	m.CaptureAttempts, err = meter.Int64Counter("capture.attempts",
		metric.WithDescription("Capture strategy attempts by strategy and outcome (success, failure)"))
	if err != nil {
		return nil, err
	}

	m.SamplingTicks, err = meter.Int64Counter("sampling.ticks",
		metric.WithDescription("Sampling loop ticks by result (skipped, acted)"))
	if err != nil {
		return nil, err
	}

	m.SamplingCache, err = meter.Int64Counter("sampling.cache",
		metric.WithDescription("Representation cache lookups by result (hit, miss)"))
	if err != nil {
		return nil, err
	}

	m.Commits, err = meter.Int64Counter("history.commits",
		metric.WithDescription("Colours committed to history"))
	if err != nil {
		return nil, err
	}

	m.PaletteOps, err = meter.Int64Counter("history.palette_ops",
		metric.WithDescription("Palette file operations by op (save, load) and outcome"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCapture records one strategy attempt.
func (m *Metrics) RecordCapture(ctx context.Context, strategy, outcome string) {
	if m == nil {
		return
	}
	m.CaptureAttempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("capture.strategy", strategy),
		attribute.String("capture.outcome", outcome),
	))
}

// RecordTick records whether a tick was skipped by the rate limiter.
func (m *Metrics) RecordTick(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.SamplingTicks.Add(ctx, 1, metric.WithAttributes(attribute.String("sampling.result", result)))
}

// RecordCache records a change-detection cache hit or miss.
func (m *Metrics) RecordCache(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SamplingCache.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.result", result)))
}

// RecordCommit records a history commit.
func (m *Metrics) RecordCommit(ctx context.Context) {
	if m == nil {
		return
	}
	m.Commits.Add(ctx, 1)
}

// RecordPalette records a palette save or load.
func (m *Metrics) RecordPalette(ctx context.Context, op string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.PaletteOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("palette.op", op),
		attribute.String("palette.outcome", outcome),
	))
}
