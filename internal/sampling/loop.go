// Package sampling drives live colour sampling: a rate-limited tick, a
// freeze toggle and a one-entry change-detection cache in front of the
// ten-way conversion.
package sampling

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/timvw/cpick/internal/capture"
	"github.com/timvw/cpick/internal/colorspace"
	telem "github.com/timvw/cpick/internal/otel"
)

const (
	// DefaultMinInterval is the shortest gap between two effective ticks.
	DefaultMinInterval = 50 * time.Millisecond

	// DefaultTitle is the window title while live.
	DefaultTitle = "Advanced Color Picker"

	frozenSuffix = " - Frozen"
)

// Options configures a Loop. Zero values pick the defaults.
type Options struct {
	MinInterval time.Duration
	Title       string
	Logger      *slog.Logger
	Metrics     *telem.Metrics
}

// Frame is what one effective tick emits for display.
type Frame struct {
	Sample colorspace.Sample `json:"sample"`
	Values colorspace.Set    `json:"values"`
	Frozen bool              `json:"frozen"`
	Title  string            `json:"title"`
}

// Loop is the LIVE/FROZEN state machine. The sampler is never called with
// the lock held, so Current stays cheap while a capture is in flight.
type Loop struct {
	sampler     capture.PixelSampler
	minInterval time.Duration
	title       string
	logger      *slog.Logger
	metrics     *telem.Metrics
	convert     func(colorspace.Sample) colorspace.Set

	// toggleMu serializes ToggleFreeze, capture included.
	toggleMu sync.Mutex

	mu           sync.Mutex
	frozen       bool
	frozenSample colorspace.Sample
	lastSample   colorspace.Sample
	haveLast     bool
	lastSet      colorspace.Set
	lastPoll     time.Time
	polled       bool
	frame        Frame
}

// New creates a Loop in the LIVE state.
func New(sampler capture.PixelSampler, opts Options) *Loop {
	if opts.MinInterval <= 0 {
		opts.MinInterval = DefaultMinInterval
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		sampler:     sampler,
		minInterval: opts.MinInterval,
		title:       opts.Title,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		convert:     colorspace.Convert,
		frame: Frame{
			Sample: colorspace.Black,
			Values: colorspace.Convert(colorspace.Black),
			Title:  opts.Title,
		},
	}
}

// Tick acts at most once per MinInterval. It reports false, and returns the
// current frame unchanged, when now is too close to the last effective tick.
// A failed capture is logged and the previous frame is returned; the caller
// keeps ticking either way.
func (l *Loop) Tick(ctx context.Context, now time.Time) (Frame, bool) {
	l.mu.Lock()
	if l.polled && now.Sub(l.lastPoll) < l.minInterval {
		f := l.frame
		l.mu.Unlock()
		l.metrics.RecordTick(ctx, "skipped")
		return f, false
	}
	l.lastPoll = now
	l.polled = true
	l.metrics.RecordTick(ctx, "acted")
	if l.frozen {
		l.frame = l.frozenFrameLocked()
		f := l.frame
		l.mu.Unlock()
		return f, true
	}
	l.mu.Unlock()

	s, err := l.sampler.Sample(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.frozen {
		// Frozen while the capture was running.
		l.frame = l.frozenFrameLocked()
		return l.frame, true
	}
	if err != nil {
		l.logger.Debug("sampling tick failed", "err", err)
		return l.frame, true
	}

	hit := l.haveLast && s == l.lastSample
	if !hit {
		l.lastSample = s
		l.haveLast = true
		l.lastSet = l.convert(s)
	}
	l.metrics.RecordCache(ctx, hit)
	l.frame = Frame{Sample: s, Values: l.lastSet, Title: l.title}
	return l.frame, true
}

// ToggleFreeze flips between LIVE and FROZEN. Freezing samples the pointer
// once and pins that sample; unfreezing discards it and lets the next tick
// act immediately. Concurrent calls run one after the other, so each one
// flips the state.
func (l *Loop) ToggleFreeze(ctx context.Context) Frame {
	l.toggleMu.Lock()
	defer l.toggleMu.Unlock()

	l.mu.Lock()
	if l.frozen {
		defer l.mu.Unlock()
		l.frozen = false
		l.frozenSample = colorspace.Black
		l.polled = false
		if l.haveLast {
			l.frame = Frame{Sample: l.lastSample, Values: l.lastSet, Title: l.title}
		} else {
			l.frame.Frozen = false
			l.frame.Title = l.title
		}
		l.logger.Debug("sampling resumed")
		return l.frame
	}
	l.mu.Unlock()

	s, err := l.sampler.Sample(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.logger.Debug("freeze capture failed, pinning last sample", "err", err)
		s = l.frame.Sample
	}
	l.frozen = true
	l.frozenSample = s
	l.frame = l.frozenFrameLocked()
	l.logger.Debug("sampling frozen", "colour", s.Hex())
	return l.frame
}

// Current returns the latest frame. While frozen it is rebuilt from the
// pinned sample.
func (l *Loop) Current() Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.frozen {
		return l.frozenFrameLocked()
	}
	return l.frame
}

func (l *Loop) frozenFrameLocked() Frame {
	return Frame{
		Sample: l.frozenSample,
		Values: l.convert(l.frozenSample),
		Frozen: true,
		Title:  l.title + frozenSuffix,
	}
}
