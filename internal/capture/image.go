package capture

import (
	"errors"
	"fmt"
	"os"

	"github.com/disintegration/imaging"

	"github.com/timvw/cpick/internal/colorspace"
)

// tempCapture reserves a temporary PNG path for a helper tool to write into.
// The returned cleanup removes it and must be deferred on every path.
func tempCapture(dir string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp(dir, "cpick-*.png")
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp capture: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("create temp capture: %w", err)
	}
	return path, cleanup, nil
}

// checkWritten fails when the helper left the capture file empty.
func checkWritten(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("capture file: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("capture file is empty")
	}
	return nil
}

// centerPixel decodes an image file and returns its middle pixel.
func centerPixel(path string) (colorspace.Sample, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return colorspace.Black, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return colorspace.Black, fmt.Errorf("decode %s: empty image", path)
	}
	r, g, bl, _ := img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2).RGBA()
	return colorspace.Sample{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}, nil
}
