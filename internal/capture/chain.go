package capture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/cpick/internal/colorspace"
	telem "github.com/timvw/cpick/internal/otel"
)

var captureTracer = otel.Tracer(telem.ScopeName + "/capture")

// Chain tries its members in order and returns the first success. It never
// retries a member within one call and never returns an error.
type Chain struct {
	members []PixelSampler
	logger  *slog.Logger
	metrics *telem.Metrics
}

// NewChain builds a chain over members. logger and metrics may be nil.
func NewChain(logger *slog.Logger, metrics *telem.Metrics, members ...PixelSampler) *Chain {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Chain{members: members, logger: logger, metrics: metrics}
}

// Name lists the members, e.g. "chain(imagemagick,x11,fallback)".
func (c *Chain) Name() string {
	names := make([]string, len(c.members))
	for i, m := range c.members {
		names[i] = m.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// Members returns the strategies in the order they are tried.
func (c *Chain) Members() []PixelSampler {
	return append([]PixelSampler(nil), c.members...)
}

func (c *Chain) Sample(ctx context.Context) (colorspace.Sample, error) {
	ctx, span := captureTracer.Start(ctx, "capture.sample",
		trace.WithAttributes(attribute.Int("capture.members", len(c.members))))
	defer span.End()

	for _, m := range c.members {
		s, err := Attempt(ctx, m)
		if err != nil {
			c.logger.Debug("capture strategy failed", "strategy", m.Name(), "err", err)
			c.metrics.RecordCapture(ctx, m.Name(), "failure")
			continue
		}
		c.metrics.RecordCapture(ctx, m.Name(), "success")
		span.SetAttributes(attribute.String("capture.strategy", m.Name()))
		return s, nil
	}

	c.logger.Debug("all capture strategies failed, using black")
	span.SetAttributes(attribute.String("capture.strategy", "none"))
	return colorspace.Black, nil
}

// Attempt runs one strategy, turning a panic into an error.
func Attempt(ctx context.Context, p PixelSampler) (s colorspace.Sample, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = colorspace.Black, fmt.Errorf("%s panicked: %v", p.Name(), r)
		}
	}()
	return p.Sample(ctx)
}
