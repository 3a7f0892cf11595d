// Package capture reads the colour of the screen pixel under the pointer.
//
// Each platform mechanism is a PixelSampler. They are tried in a fixed order
// by a Chain; any failure (error, panic, non-zero exit, missing tool,
// timeout, unparseable output) moves on to the next member, and a Chain whose
// members all fail yields black. Sampling never fails from the caller's
// point of view.
package capture

import (
	"context"
	"errors"

	"github.com/timvw/cpick/internal/colorspace"
)

// PixelSampler captures one pixel.
type PixelSampler interface {
	// Name identifies the strategy in logs, metrics and `cpick doctor`.
	Name() string

	// Sample returns the colour under the pointer.
	Sample(ctx context.Context) (colorspace.Sample, error)
}

var (
	// ErrUnsupported is returned by a strategy built for another OS.
	ErrUnsupported = errors.New("capture strategy not supported on this platform")

	// ErrNoDisplay means a Linux/BSD session has no graphical display to read.
	ErrNoDisplay = errors.New("no graphical display: neither DISPLAY nor WAYLAND_DISPLAY is set")

	// ErrMalformed means a helper tool produced output that could not be parsed.
	ErrMalformed = errors.New("malformed output")
)

// Fallback always returns black. It is the terminal member of every chain.
type Fallback struct{}

func (Fallback) Name() string { return "fallback" }

func (Fallback) Sample(context.Context) (colorspace.Sample, error) {
	return colorspace.Black, nil
}

// Windows reads the pixel through user32/gdi32. Sample lives in windows.go
// and, off Windows, in windows_other.go.
type Windows struct{}

func (w *Windows) Name() string { return "windows" }
