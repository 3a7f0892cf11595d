package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/timvw/cpick/internal/colorspace"
)

func init() {
	// xgb logs protocol errors to stderr, which would draw over the TUI.
	xgb.Logger = log.New(io.Discard, "", 0)
}

// ErrReadPending is returned while an earlier X server read that timed out
// has not finished yet.
var ErrReadPending = errors.New("previous X server read still pending")

// X11 talks to the X server directly: QueryPointer on the root window, then a
// 1x1 GetImage at the pointer. Without a caller deadline the read is bounded
// by DefaultCommandTimeout.
//
// xgb offers no way to abort a handshake or reply in progress, so a read
// against a hung server keeps running after Sample gives up. At most one such
// read exists per X11 value: until it ends, Sample fails fast with
// ErrReadPending instead of opening another connection.
type X11 struct {
	Display string // "" means $DISPLAY

	mu      sync.Mutex
	pending bool
}

func (x *X11) Name() string { return "x11" }

func (x *X11) Sample(ctx context.Context) (colorspace.Sample, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	x.mu.Lock()
	if x.pending {
		x.mu.Unlock()
		return colorspace.Black, fmt.Errorf("x11: %w", ErrReadPending)
	}
	x.pending = true
	x.mu.Unlock()

	type result struct {
		s   colorspace.Sample
		err error
	}
	done := make(chan result, 1)
	go func() {
		s, err := x.read()
		x.mu.Lock()
		x.pending = false
		x.mu.Unlock()
		done <- result{s, err}
	}()

	select {
	case r := <-done:
		return r.s, r.err
	case <-ctx.Done():
		return colorspace.Black, fmt.Errorf("x11: %w", ctx.Err())
	}
}

func (x *X11) read() (colorspace.Sample, error) {
	conn, err := xgb.NewConnDisplay(x.Display)
	if err != nil {
		return colorspace.Black, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	ptr, err := xproto.QueryPointer(conn, screen.Root).Reply()
	if err != nil {
		return colorspace.Black, fmt.Errorf("query pointer: %w", err)
	}
	img, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		ptr.RootX, ptr.RootY, 1, 1, 0xffffffff).Reply()
	if err != nil {
		return colorspace.Black, fmt.Errorf("get image: %w", err)
	}
	return fromZPixmap(img.Data, img.Depth)
}
