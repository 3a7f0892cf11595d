//go:build windows

package capture

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/timvw/cpick/internal/colorspace"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procGetCursorPos = user32.NewProc("GetCursorPos")
	procGetDC        = user32.NewProc("GetDC")
	procReleaseDC    = user32.NewProc("ReleaseDC")
	procGetPixel     = gdi32.NewProc("GetPixel")
)

const clrInvalid = 0xFFFFFFFF

type point struct {
	X, Y int32
}

func (w *Windows) Sample(ctx context.Context) (colorspace.Sample, error) {
	if err := ctx.Err(); err != nil {
		return colorspace.Black, err
	}

	var pt point
	if ok, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); ok == 0 {
		return colorspace.Black, fmt.Errorf("GetCursorPos: %w", err)
	}

	hdc, _, err := procGetDC.Call(0)
	if hdc == 0 {
		return colorspace.Black, fmt.Errorf("GetDC: %w", err)
	}
	defer procReleaseDC.Call(0, hdc)

	c, _, _ := procGetPixel.Call(hdc, uintptr(pt.X), uintptr(pt.Y))
	if uint32(c) == clrInvalid {
		return colorspace.Black, fmt.Errorf("GetPixel(%d, %d): CLR_INVALID", pt.X, pt.Y)
	}
	return fromCOLORREF(uint32(c)), nil
}
