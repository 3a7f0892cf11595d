package colorspace

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tags one of the ten representations. The declaration order is the
// canonical display and serialization order.
type Kind int

const (
	KindHex Kind = iota
	KindRGB
	KindHSL
	KindHSV
	KindHSI
	KindCMYK
	KindLab
	KindLCh
	KindYCbCr
	KindXYZ

	numKinds
)

var kindNames = [numKinds]string{
	KindHex:   "HEX/HTML",
	KindRGB:   "RGB",
	KindHSL:   "HSL",
	KindHSV:   "HSV",
	KindHSI:   "HSI",
	KindCMYK:  "CMYK",
	KindLab:   "CIE LAB",
	KindLCh:   "CIELCh",
	KindYCbCr: "YCbCr",
	KindXYZ:   "CIE XYZ",
}

// Kinds returns every representation tag in canonical order.
func Kinds() []Kind {
	ks := make([]Kind, numKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// String returns the display name used in the UI and in palette files.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a display name back to its tag.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Set holds one formatted value per Kind. It is a value type; copies are
// independent.
type Set [numKinds]string

// Convert derives all ten representations from s.
func Convert(s Sample) Set {
	return Set{
		KindHex:   s.Hex(),
		KindRGB:   s.String(),
		KindHSL:   ToHSL(s).String(),
		KindHSV:   ToHSV(s).String(),
		KindHSI:   ToHSI(s).String(),
		KindCMYK:  ToCMYK(s).String(),
		KindLab:   ToLab(s).String(),
		KindLCh:   ToLCh(s).String(),
		KindYCbCr: ToYCbCr(s).String(),
		KindXYZ:   ToXYZ(s).String(),
	}
}

// Get returns the value for k, or "" for an unknown tag.
func (s Set) Get(k Kind) string {
	if k < 0 || k >= numKinds {
		return ""
	}
	return s[k]
}

// Primary is the value copied to the clipboard on commit.
func (s Set) Primary() string {
	return s[KindHex]
}

// MarshalJSON writes an object with keys in canonical order.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for k, v := range s {
		if v == "" {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		name, _ := json.Marshal(Kind(k).String())
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by display name. Unknown names are
// ignored.
func (s *Set) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Set
	for name, v := range m {
		if k, ok := ParseKind(name); ok {
			out[k] = v
		}
	}
	*s = out
	return nil
}
