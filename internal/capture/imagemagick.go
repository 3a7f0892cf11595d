package capture

import (
	"context"
	"fmt"

	"github.com/timvw/cpick/internal/colorspace"
)

// ImageMagick captures on X11 desktops with xdotool and ImageMagick's
// import/convert. When convert's output cannot be used, the captured file is
// decoded directly.
type ImageMagick struct {
	Runner  Runner
	TempDir string
}

func (m *ImageMagick) Name() string { return "imagemagick" }

func (m *ImageMagick) Sample(ctx context.Context) (colorspace.Sample, error) {
	out, err := m.Runner.Run(ctx, "xdotool", "getmouselocation")
	if err != nil {
		return colorspace.Black, fmt.Errorf("pointer location: %w", err)
	}
	x, y, err := parseXdotool(out)
	if err != nil {
		return colorspace.Black, err
	}

	path, cleanup, err := tempCapture(m.TempDir)
	if err != nil {
		return colorspace.Black, err
	}
	defer cleanup()

	crop := fmt.Sprintf("1x1+%d+%d", x, y)
	if _, err := m.Runner.Run(ctx, "import", "-window", "root", "-crop", crop, "+repage", path); err != nil {
		return colorspace.Black, fmt.Errorf("screen grab: %w", err)
	}
	if err := checkWritten(path); err != nil {
		return colorspace.Black, err
	}

	out, convErr := m.Runner.Run(ctx, "convert", path, "-format", "%[pixel:p{0,0}]", "info:-")
	if convErr == nil {
		s, perr := parseMagickPixel(out)
		if perr == nil {
			return s, nil
		}
		convErr = perr
	}
	s, err := centerPixel(path)
	if err != nil {
		return colorspace.Black, fmt.Errorf("convert: %v; %w", convErr, err)
	}
	return s, nil
}
