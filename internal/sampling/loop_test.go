package sampling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/timvw/cpick/internal/colorspace"
)

// scriptedSampler returns queued samples in order, repeating the last one.
type scriptedSampler struct {
	mu      sync.Mutex
	samples []colorspace.Sample
	errs    []error
	calls   int
}

func (s *scriptedSampler) Name() string { return "scripted" }

func (s *scriptedSampler) Sample(context.Context) (colorspace.Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return colorspace.Black, s.errs[i]
	}
	if i >= len(s.samples) {
		i = len(s.samples) - 1
	}
	return s.samples[i], nil
}

// countConversions wraps the loop's converter.
func countConversions(l *Loop) *int {
	n := new(int)
	l.convert = func(s colorspace.Sample) colorspace.Set {
		*n++
		return colorspace.Convert(s)
	}
	return n
}

var (
	red   = colorspace.Sample{R: 255}
	green = colorspace.Sample{G: 255}
	blue  = colorspace.Sample{B: 255}
)

func TestLoop_RateLimit(t *testing.T) {
	s := &scriptedSampler{samples: []colorspace.Sample{red}}
	l := New(s, Options{})
	t0 := time.Now()

	if _, acted := l.Tick(context.Background(), t0); !acted {
		t.Fatal("first tick should act")
	}
	for _, d := range []time.Duration{20 * time.Millisecond, 40 * time.Millisecond, 49 * time.Millisecond} {
		if _, acted := l.Tick(context.Background(), t0.Add(d)); acted {
			t.Errorf("tick at +%v acted, want no-op", d)
		}
	}
	if s.calls != 1 {
		t.Errorf("sampler calls = %d, want 1", s.calls)
	}
	if _, acted := l.Tick(context.Background(), t0.Add(50*time.Millisecond)); !acted {
		t.Error("tick at +50ms should act")
	}
	// The window restarts from the last effective tick, not the last call.
	if _, acted := l.Tick(context.Background(), t0.Add(90*time.Millisecond)); acted {
		t.Error("tick at +90ms should be skipped")
	}
	if _, acted := l.Tick(context.Background(), t0.Add(100*time.Millisecond)); !acted {
		t.Error("tick at +100ms should act")
	}
	if s.calls != 3 {
		t.Errorf("sampler calls = %d, want 3", s.calls)
	}
}

func TestLoop_CustomMinInterval(t *testing.T) {
	l := New(&scriptedSampler{samples: []colorspace.Sample{red}}, Options{MinInterval: 200 * time.Millisecond})
	t0 := time.Now()
	l.Tick(context.Background(), t0)
	if _, acted := l.Tick(context.Background(), t0.Add(150*time.Millisecond)); acted {
		t.Error("tick inside custom interval acted")
	}
}

func TestLoop_ChangeDetectionCache(t *testing.T) {
	s := &scriptedSampler{samples: []colorspace.Sample{red, red, red, green, green, red}}
	l := New(s, Options{})
	conversions := countConversions(l)

	t0 := time.Now()
	var last Frame
	for i := 0; i < 6; i++ {
		f, acted := l.Tick(context.Background(), t0.Add(time.Duration(i)*DefaultMinInterval))
		if !acted {
			t.Fatalf("tick %d skipped", i)
		}
		last = f
	}
	// red (miss), red, red, green (miss), green, red (miss)
	if *conversions != 3 {
		t.Errorf("conversions = %d, want 3", *conversions)
	}
	if last.Values != colorspace.Convert(red) {
		t.Errorf("final values = %v, want red's", last.Values.Primary())
	}
}

func TestLoop_FrozenIgnoresPointer(t *testing.T) {
	s := &scriptedSampler{samples: []colorspace.Sample{red, green, blue, green, blue}}
	l := New(s, Options{})
	conversions := countConversions(l)
	t0 := time.Now()

	l.Tick(context.Background(), t0)
	frozen := l.ToggleFreeze(context.Background())
	if !frozen.Frozen || frozen.Sample != green {
		t.Fatalf("ToggleFreeze() = %+v, want frozen on green", frozen)
	}
	if frozen.Title != "Advanced Color Picker - Frozen" {
		t.Errorf("Title = %q", frozen.Title)
	}
	callsAtFreeze := s.calls
	before := *conversions

	for i := 1; i <= 4; i++ {
		f, acted := l.Tick(context.Background(), t0.Add(time.Duration(i)*DefaultMinInterval))
		if !acted {
			t.Fatalf("frozen tick %d skipped", i)
		}
		if f.Values != colorspace.Convert(green) || !f.Frozen {
			t.Errorf("frozen tick %d = %s, want green", i, f.Values.Primary())
		}
	}
	if s.calls != callsAtFreeze {
		t.Errorf("sampler called %d times while frozen", s.calls-callsAtFreeze)
	}
	if got := *conversions - before; got != 4 {
		t.Errorf("frozen conversions = %d, want one per effective tick (4)", got)
	}
	if cur := l.Current(); cur.Sample != green || !cur.Frozen {
		t.Errorf("Current() = %+v, want frozen green", cur)
	}
}

func TestLoop_UnfreezeDiscardsFrozenSample(t *testing.T) {
	s := &scriptedSampler{samples: []colorspace.Sample{red, green, blue, red}}
	l := New(s, Options{})
	t0 := time.Now()

	l.Tick(context.Background(), t0)          // red
	l.ToggleFreeze(context.Background())      // pins green
	f := l.ToggleFreeze(context.Background()) // live again
	if f.Frozen || f.Title != DefaultTitle {
		t.Errorf("after unfreeze frame = %+v", f)
	}
	if l.Current().Frozen {
		t.Fatal("still frozen after second toggle")
	}

	// Next tick acts immediately even inside the interval.
	f, acted := l.Tick(context.Background(), t0.Add(time.Millisecond))
	if !acted {
		t.Fatal("first tick after unfreeze should act")
	}
	if f.Sample != blue {
		t.Errorf("live tick = %v, want blue", f.Sample)
	}

	// Freezing again pins a fresh sample, not the old green.
	refrozen := l.ToggleFreeze(context.Background())
	if refrozen.Sample != red {
		t.Errorf("refreeze pinned %v, want red", refrozen.Sample)
	}
}

func TestLoop_CaptureErrorKeepsPreviousFrame(t *testing.T) {
	s := &scriptedSampler{
		samples: []colorspace.Sample{red, red, green},
		errs:    []error{nil, errors.New("exit status 1"), nil},
	}
	l := New(s, Options{})
	t0 := time.Now()

	first, _ := l.Tick(context.Background(), t0)
	second, acted := l.Tick(context.Background(), t0.Add(DefaultMinInterval))
	if !acted {
		t.Fatal("failed tick should still count as acted")
	}
	if second.Values != first.Values {
		t.Errorf("failed tick emitted %s, want previous %s", second.Values.Primary(), first.Values.Primary())
	}
	third, _ := l.Tick(context.Background(), t0.Add(2*DefaultMinInterval))
	if third.Sample != green {
		t.Errorf("tick after failure = %v, want green", third.Sample)
	}
}

func TestLoop_FreezeErrorPinsCurrent(t *testing.T) {
	s := &scriptedSampler{
		samples: []colorspace.Sample{blue, blue},
		errs:    []error{nil, errors.New("timeout")},
	}
	l := New(s, Options{})
	l.Tick(context.Background(), time.Now())
	f := l.ToggleFreeze(context.Background())
	if !f.Frozen || f.Sample != blue {
		t.Errorf("ToggleFreeze() = %+v, want frozen on last live sample", f)
	}
}

func TestLoop_InitialFrame(t *testing.T) {
	l := New(&scriptedSampler{samples: []colorspace.Sample{red}}, Options{Title: "picker"})
	f := l.Current()
	if f.Frozen || f.Title != "picker" {
		t.Errorf("Current() = %+v", f)
	}
	if f.Values.Primary() != "#000000" {
		t.Errorf("initial colour = %q, want #000000", f.Values.Primary())
	}
}

// slowSampler blocks for delay on every capture.
type slowSampler struct {
	delay time.Duration
}

func (s slowSampler) Name() string { return "slow" }

func (s slowSampler) Sample(context.Context) (colorspace.Sample, error) {
	time.Sleep(s.delay)
	return red, nil
}

func TestLoop_ConcurrentTogglesEachFlip(t *testing.T) {
	l := New(slowSampler{delay: 50 * time.Millisecond}, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.ToggleFreeze(context.Background())
		}()
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	if f := l.Current(); f.Frozen || f.Title != DefaultTitle {
		t.Errorf("Current() = %+v, two toggles should leave the loop LIVE", f)
	}
}
