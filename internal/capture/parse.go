package capture

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/timvw/cpick/internal/colorspace"
)

var (
	xdotoolXRe    = regexp.MustCompile(`x:(-?\d+)`)
	xdotoolYRe    = regexp.MustCompile(`y:(-?\d+)`)
	appleXYRe     = regexp.MustCompile(`^\s*(-?\d+)(?:\.\d+)?\s*,\s*(-?\d+)(?:\.\d+)?\s*$`)
	sipsPixelRe   = regexp.MustCompile(`(?is)pixelcolor.*?(\d+).*?(\d+).*?(\d+)`)
	magickPixelRe = regexp.MustCompile(`(?i)rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)
)

// parseXdotool reads "x:812 y:451 screen:0 window:..." from
// `xdotool getmouselocation`.
func parseXdotool(out []byte) (x, y int, err error) {
	mx := xdotoolXRe.FindSubmatch(out)
	my := xdotoolYRe.FindSubmatch(out)
	if mx == nil || my == nil {
		return 0, 0, fmt.Errorf("xdotool %q: %w", strings.TrimSpace(string(out)), ErrMalformed)
	}
	x, _ = strconv.Atoi(string(mx[1]))
	y, _ = strconv.Atoi(string(my[1]))
	return x, y, nil
}

// parseAppleScriptPoint reads the "x, y" pair printed by osascript.
func parseAppleScriptPoint(out []byte) (x, y int, err error) {
	m := appleXYRe.FindSubmatch(out)
	if m == nil {
		return 0, 0, fmt.Errorf("osascript %q: %w", strings.TrimSpace(string(out)), ErrMalformed)
	}
	x, _ = strconv.Atoi(string(m[1]))
	y, _ = strconv.Atoi(string(m[2]))
	return x, y, nil
}

// parseSips reads the first three integers after "pixelColor" in
// `sips -g pixelColor` output.
func parseSips(out []byte) (colorspace.Sample, error) {
	m := sipsPixelRe.FindSubmatch(out)
	if m == nil {
		return colorspace.Black, fmt.Errorf("sips: %w", ErrMalformed)
	}
	return channels(m[1], m[2], m[3])
}

// parseMagickPixel reads "srgb(255,128,0)" as printed by
// `convert FILE -format %[pixel:p{0,0}] info:-`.
func parseMagickPixel(out []byte) (colorspace.Sample, error) {
	m := magickPixelRe.FindSubmatch(out)
	if m == nil {
		return colorspace.Black, fmt.Errorf("convert %q: %w", strings.TrimSpace(string(out)), ErrMalformed)
	}
	return channels(m[1], m[2], m[3])
}

func channels(r, g, b []byte) (colorspace.Sample, error) {
	var c [3]uint8
	for i, raw := range [][]byte{r, g, b} {
		v, err := strconv.Atoi(string(raw))
		if err != nil || v > 255 {
			return colorspace.Black, fmt.Errorf("channel %q out of range: %w", raw, ErrMalformed)
		}
		c[i] = uint8(v)
	}
	return colorspace.Sample{R: c[0], G: c[1], B: c[2]}, nil
}

// fromCOLORREF unpacks a Win32 COLORREF (0x00BBGGRR).
func fromCOLORREF(c uint32) colorspace.Sample {
	return colorspace.Sample{R: uint8(c), G: uint8(c >> 8), B: uint8(c >> 16)}
}

// fromZPixmap reads the first pixel of a ZPixmap image at depth 24 or 32,
// which the X server lays out as B, G, R, pad.
func fromZPixmap(data []byte, depth byte) (colorspace.Sample, error) {
	if depth < 24 || len(data) < 3 {
		return colorspace.Black, fmt.Errorf("unsupported pixmap (depth %d, %d bytes): %w", depth, len(data), ErrMalformed)
	}
	return colorspace.Sample{R: data[2], G: data[1], B: data[0]}, nil
}
