package colorspace

import (
	"fmt"
	"math"
)

// D65 reference white, scaled to Y=100.
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883
)

// round rounds half to even and returns an int, so -0.3 formats as "0".
func round(x float64) int {
	return int(math.RoundToEven(x))
}

// floorMod is a modulo whose result takes the sign of the divisor.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// hexHue returns the hexagonal hue in degrees shared by HSL and HSV.
func hexHue(r, g, b, cmax, delta float64) float64 {
	var h float64
	switch {
	case delta == 0:
		return 0
	case cmax == r:
		h = floorMod((g-b)/delta, 6)
	case cmax == g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	return h * 60
}

// HSL holds hue in degrees and saturation/lightness in [0,1].
type HSL struct {
	H, S, L float64
}

func (c HSL) String() string {
	return fmt.Sprintf("HSL(%d°, %d%%, %d%%)", round(c.H), round(c.S*100), round(c.L*100))
}

// ToHSL converts using the hexagonal chroma model. Achromatic inputs get H=S=0.
func ToHSL(s Sample) HSL {
	r, g, b := s.normalized()
	cmax := math.Max(r, math.Max(g, b))
	cmin := math.Min(r, math.Min(g, b))
	delta := cmax - cmin
	l := (cmax + cmin) / 2
	if delta == 0 {
		return HSL{L: l}
	}
	var sat float64
	if l > 0.5 {
		sat = delta / (2 - cmax - cmin)
	} else {
		sat = delta / (cmax + cmin)
	}
	return HSL{H: hexHue(r, g, b, cmax, delta), S: sat, L: l}
}

// HSV holds hue in degrees and saturation/value in [0,1].
type HSV struct {
	H, S, V float64
}

func (c HSV) String() string {
	return fmt.Sprintf("HSV(%d°, %d%%, %d%%)", round(c.H), round(c.S*100), round(c.V*100))
}

// ToHSV converts to hue/saturation/value.
func ToHSV(s Sample) HSV {
	r, g, b := s.normalized()
	cmax := math.Max(r, math.Max(g, b))
	cmin := math.Min(r, math.Min(g, b))
	delta := cmax - cmin
	var sat float64
	if cmax != 0 {
		sat = delta / cmax
	}
	return HSV{H: hexHue(r, g, b, cmax, delta), S: sat, V: cmax}
}

// HSI holds hue in degrees and saturation/intensity in [0,1].
type HSI struct {
	H, S, I float64
}

func (c HSI) String() string {
	return fmt.Sprintf("HSI(%d°, %d%%, %d%%)", round(c.H), round(c.S*100), round(c.I*100))
}

// ToHSI converts with the geometric arccosine hue formula.
func ToHSI(s Sample) HSI {
	r, g, b := s.normalized()
	intensity := (r + g + b) / 3
	var sat float64
	if intensity != 0 {
		sat = 1 - math.Min(r, math.Min(g, b))/intensity
	}

	num := 0.5 * ((r - g) + (r - b))
	den := math.Sqrt((r-g)*(r-g) + (r-b)*(g-b))
	var hue float64
	if den != 0 {
		// num/den may overshoot [-1,1] by an ulp.
		theta := math.Acos(math.Max(-1, math.Min(1, num/den)))
		if b <= g {
			hue = theta
		} else {
			hue = 2*math.Pi - theta
		}
	}
	return HSI{H: hue * (180 / math.Pi), S: sat, I: intensity}
}

// CMYK holds the four ink fractions in [0,1].
type CMYK struct {
	C, M, Y, K float64
}

func (c CMYK) String() string {
	return fmt.Sprintf("CMYK(%d%%, %d%%, %d%%, %d%%)",
		round(c.C*100), round(c.M*100), round(c.Y*100), round(c.K*100))
}

// ToCMYK converts subtractively. Pure black is (0,0,0,1).
func ToCMYK(s Sample) CMYK {
	r, g, b := s.normalized()
	k := 1 - math.Max(r, math.Max(g, b))
	if k == 1 {
		return CMYK{K: 1}
	}
	return CMYK{
		C: (1 - r - k) / (1 - k),
		M: (1 - g - k) / (1 - k),
		Y: (1 - b - k) / (1 - k),
		K: k,
	}
}

// toLinear undoes the sRGB transfer curve.
func toLinear(c float64) float64 {
	if c > 0.04045 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

// labXYZ is the sRGB→XYZ path feeding Lab and LCh. Its matrix is rounded to
// four digits and must stay distinct from ToXYZ.
func labXYZ(s Sample) (x, y, z float64) {
	r, g, b := s.normalized()
	rl, gl, bl := toLinear(r), toLinear(g), toLinear(b)
	x = rl*0.4124 + gl*0.3576 + bl*0.1805
	y = rl*0.2126 + gl*0.7152 + bl*0.0722
	z = rl*0.0193 + gl*0.1192 + bl*0.9505
	return x * 100, y * 100, z * 100
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Pow(t, 1.0/3)
	}
	return 7.787*t + 16.0/116
}

// Lab holds CIE L*a*b* components referenced to D65.
type Lab struct {
	L, A, B float64
}

func (c Lab) String() string {
	return fmt.Sprintf("CIE LAB(%d, %d, %d)", round(c.L), round(c.A), round(c.B))
}

// ToLab converts via labXYZ.
func ToLab(s Sample) Lab {
	x, y, z := labXYZ(s)
	fx, fy, fz := labF(x/whiteX), labF(y/whiteY), labF(z/whiteZ)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LCh holds CIE LCh(ab) components, hue in degrees within [0,360).
type LCh struct {
	L, C, H float64
}

func (c LCh) String() string {
	return fmt.Sprintf("CIELCh(%d, %d, %d°)", round(c.L), round(c.C), round(c.H))
}

// ToLCh is the polar form of ToLab.
func ToLCh(s Sample) LCh {
	lab := ToLab(s)
	h := math.Atan2(lab.B, lab.A) * (180 / math.Pi)
	if h < 0 {
		h += 360
	}
	return LCh{
		L: lab.L,
		C: math.Sqrt(lab.A*lab.A + lab.B*lab.B),
		H: h,
	}
}

// YCbCr holds BT.601 studio-swing components.
type YCbCr struct {
	Y, Cb, Cr float64
}

func (c YCbCr) String() string {
	return fmt.Sprintf("YCbCr(%d, %d, %d)", round(c.Y), round(c.Cb), round(c.Cr))
}

// ToYCbCr applies the BT.601 integer-input formula with offsets 16/128/128.
func ToYCbCr(s Sample) YCbCr {
	r, g, b := float64(s.R), float64(s.G), float64(s.B)
	return YCbCr{
		Y:  16 + (65.738*r+129.057*g+25.064*b)/256,
		Cb: 128 + (-37.945*r-74.494*g+112.439*b)/256,
		Cr: 128 + (112.439*r-94.154*g-18.285*b)/256,
	}
}

// XYZ holds CIE XYZ tristimulus values scaled to Y=100 for white.
type XYZ struct {
	X, Y, Z float64
}

func (c XYZ) String() string {
	return fmt.Sprintf("CIE XYZ(%d, %d, %d)", round(c.X), round(c.Y), round(c.Z))
}

// ToXYZ uses the seven-digit sRGB D65 matrix.
func ToXYZ(s Sample) XYZ {
	r, g, b := s.normalized()
	rl, gl, bl := toLinear(r), toLinear(g), toLinear(b)
	return XYZ{
		X: (rl*0.4124564 + gl*0.3575761 + bl*0.1804375) * 100,
		Y: (rl*0.2126729 + gl*0.7151522 + bl*0.0721750) * 100,
		Z: (rl*0.0193339 + gl*0.1191920 + bl*0.9503041) * 100,
	}
}
