// Package colorspace converts 8-bit sRGB samples into the ten textual
// representations shown by the picker.
//
// All conversions are pure and total over [0,255]³. Every model has a
// structured result type holding exact float components; rounding and
// formatting happen once, in the String methods, so nothing is re-parsed
// from text internally.
package colorspace

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Sample is an immutable 8-bit RGB triple.
type Sample struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Black is the deterministic fallback sample.
var Black = Sample{}

// Hex returns "#RRGGBB" with uppercase digits.
func (s Sample) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", s.R, s.G, s.B)
}

// String returns the RGB representation, e.g. "RGB(255, 0, 0)".
func (s Sample) String() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", s.R, s.G, s.B)
}

// normalized returns the channels scaled into [0,1].
func (s Sample) normalized() (r, g, b float64) {
	return float64(s.R) / 255.0, float64(s.G) / 255.0, float64(s.B) / 255.0
}

// ParseHex parses "#RRGGBB", "RRGGBB" or the short "#RGB" form.
func ParseHex(s string) (Sample, error) {
	if s == "" {
		return Sample{}, fmt.Errorf("empty colour")
	}
	if s[0] != '#' {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Sample{}, fmt.Errorf("invalid hex colour %q: want #RGB or #RRGGBB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Sample{R: r, G: g, B: b}, nil
}
