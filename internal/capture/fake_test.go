package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/timvw/cpick/internal/colorspace"
)

// fakeRunner answers commands from a table keyed by program name.
type fakeRunner struct {
	handlers map[string]func(args []string) ([]byte, error)
	onPath   map[string]bool
	calls    []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, name)
	h, ok := f.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%s: executable file not found in $PATH", name)
	}
	return h(args)
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.onPath[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func (f *fakeRunner) called(name string) bool {
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func reply(out string) func([]string) ([]byte, error) {
	return func([]string) ([]byte, error) { return []byte(out), nil }
}

func fail(msg string) func([]string) ([]byte, error) {
	return func([]string) ([]byte, error) { return nil, errors.New(msg) }
}

// writePNG returns a handler that writes a size×size PNG filled with c to the
// last argument, the way screencapture and import do.
func writePNG(t *testing.T, size int, c color.NRGBA) func([]string) ([]byte, error) {
	t.Helper()
	return func(args []string) ([]byte, error) {
		img := imaging.New(size, size, c)
		if err := imaging.Save(img, args[len(args)-1]); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

// writeCentered writes a 3x3 image whose centre pixel differs from the border.
func writeCentered(t *testing.T, center color.NRGBA) func([]string) ([]byte, error) {
	t.Helper()
	return func(args []string) ([]byte, error) {
		img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
		img.SetNRGBA(1, 1, center)
		if err := imaging.Save(img, args[len(args)-1]); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

// assertEmptyDir fails if any capture file was left behind.
func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("temp files left behind: %s", strings.Join(names, ", "))
	}
}

// stubSampler is a scripted PixelSampler.
type stubSampler struct {
	name  string
	s     colorspace.Sample
	err   error
	panic bool
	calls int
}

func (s *stubSampler) Name() string { return s.name }

func (s *stubSampler) Sample(context.Context) (colorspace.Sample, error) {
	s.calls++
	if s.panic {
		panic("boom")
	}
	return s.s, s.err
}
