package capture

import (
	"errors"
	"testing"

	"github.com/timvw/cpick/internal/colorspace"
)

func TestParseXdotool(t *testing.T) {
	tests := []struct {
		in      string
		x, y    int
		wantErr bool
	}{
		{"x:812 y:451 screen:0 window:65011719\n", 812, 451, false},
		{"x:0 y:0 screen:1 window:1", 0, 0, false},
		{"y:7 x:3", 3, 7, false},
		{"", 0, 0, true},
		{"x:12", 0, 0, true},
		{"Error: Can't open display", 0, 0, true},
	}
	for _, tt := range tests {
		x, y, err := parseXdotool([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("parseXdotool(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("parseXdotool(%q) error = %v, want ErrMalformed", tt.in, err)
			}
			continue
		}
		if x != tt.x || y != tt.y {
			t.Errorf("parseXdotool(%q) = %d,%d want %d,%d", tt.in, x, y, tt.x, tt.y)
		}
	}
}

func TestParseAppleScriptPoint(t *testing.T) {
	tests := []struct {
		in      string
		x, y    int
		wantErr bool
	}{
		{"640, 400\n", 640, 400, false},
		{"12,34", 12, 34, false},
		{"812.5, 451.0", 812, 451, false},
		{"-20, 5", -20, 5, false},
		{"", 0, 0, true},
		{"missing value", 0, 0, true},
	}
	for _, tt := range tests {
		x, y, err := parseAppleScriptPoint([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAppleScriptPoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (x != tt.x || y != tt.y) {
			t.Errorf("parseAppleScriptPoint(%q) = %d,%d want %d,%d", tt.in, x, y, tt.x, tt.y)
		}
	}
}

func TestParseSips(t *testing.T) {
	tests := []struct {
		in      string
		want    colorspace.Sample
		wantErr bool
	}{
		{"/tmp/a.png\n  pixelColor: 255 128 64 255\n", colorspace.Sample{R: 255, G: 128, B: 64}, false},
		{"PIXELCOLOR\n 1\n 2\n 3", colorspace.Sample{R: 1, G: 2, B: 3}, false},
		{"/tmp/a.png\n  pixelWidth: 3\n", colorspace.Black, true},
		{"pixelColor: 300 0 0", colorspace.Black, true},
	}
	for _, tt := range tests {
		got, err := parseSips([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSips(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSips(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMagickPixel(t *testing.T) {
	tests := []struct {
		in      string
		want    colorspace.Sample
		wantErr bool
	}{
		{"srgb(255,128,0)", colorspace.Sample{R: 255, G: 128}, false},
		{"rgb(18,52,86)\n", colorspace.Sample{R: 18, G: 52, B: 86}, false},
		{"RGBA(1, 2, 3, 1)", colorspace.Sample{R: 1, G: 2, B: 3}, false},
		{"white", colorspace.Black, true},
		{"srgb(256,0,0)", colorspace.Black, true},
		{"", colorspace.Black, true},
	}
	for _, tt := range tests {
		got, err := parseMagickPixel([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMagickPixel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseMagickPixel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromCOLORREF(t *testing.T) {
	// COLORREF is 0x00BBGGRR.
	got := fromCOLORREF(0x00563412)
	if got != (colorspace.Sample{R: 0x12, G: 0x34, B: 0x56}) {
		t.Errorf("fromCOLORREF = %v", got)
	}
}

func TestFromZPixmap(t *testing.T) {
	got, err := fromZPixmap([]byte{0x56, 0x34, 0x12, 0x00}, 24)
	if err != nil {
		t.Fatalf("fromZPixmap error = %v", err)
	}
	if got != (colorspace.Sample{R: 0x12, G: 0x34, B: 0x56}) {
		t.Errorf("fromZPixmap = %v, want BGR order decoded", got)
	}
	if _, err := fromZPixmap([]byte{1, 2}, 16); err == nil {
		t.Error("16-bit pixmap should be rejected")
	}
	if _, err := fromZPixmap(nil, 24); err == nil {
		t.Error("empty pixmap should be rejected")
	}
}
