//go:build !windows

package capture

import (
	"context"

	"github.com/timvw/cpick/internal/colorspace"
)

func (w *Windows) Sample(context.Context) (colorspace.Sample, error) {
	return colorspace.Black, ErrUnsupported
}
