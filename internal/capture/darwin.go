package capture

import (
	"context"
	"fmt"

	"github.com/timvw/cpick/internal/colorspace"
)

const pointerScript = `tell application "System Events"
	set mousePosition to (get current location of mouse)
	return (item 1 of mousePosition as string) & ", " & (item 2 of mousePosition as string)
end tell`

// Darwin captures through the stock macOS tools: osascript for the pointer,
// screencapture for a 3x3 region around it, then sips (or an image decode)
// for the centre pixel.
type Darwin struct {
	Runner  Runner
	TempDir string // "" means os.TempDir()
}

func (d *Darwin) Name() string { return "darwin" }

func (d *Darwin) Sample(ctx context.Context) (colorspace.Sample, error) {
	out, err := d.Runner.Run(ctx, "osascript", "-e", pointerScript)
	if err != nil {
		return colorspace.Black, fmt.Errorf("pointer location: %w", err)
	}
	x, y, err := parseAppleScriptPoint(out)
	if err != nil {
		return colorspace.Black, err
	}

	path, cleanup, err := tempCapture(d.TempDir)
	if err != nil {
		return colorspace.Black, err
	}
	defer cleanup()

	region := fmt.Sprintf("%d,%d,3,3", x-1, y-1)
	if _, err := d.Runner.Run(ctx, "screencapture", "-x", "-R", region, "-t", "png", path); err != nil {
		return colorspace.Black, fmt.Errorf("screen region: %w", err)
	}
	if err := checkWritten(path); err != nil {
		return colorspace.Black, err
	}

	out, sipsErr := d.Runner.Run(ctx, "sips", "-g", "pixelColor", path)
	if sipsErr == nil {
		s, perr := parseSips(out)
		if perr == nil {
			return s, nil
		}
		sipsErr = perr
	}
	s, err := centerPixel(path)
	if err != nil {
		return colorspace.Black, fmt.Errorf("sips: %v; %w", sipsErr, err)
	}
	return s, nil
}
