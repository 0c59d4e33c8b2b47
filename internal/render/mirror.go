package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/framerelay/internal/logging"
	"github.com/rook-computer/framerelay/internal/render/layout"
	"github.com/rook-computer/framerelay/internal/state"
)

var ErrMirrorUnsupported = errors.New("framebuffer mirror is only supported on linux")

const defaultMirrorInterval = time.Second / 10

// FrameSource is the read side of the frame store.
type FrameSource interface {
	Snapshot() state.FrameSnapshot
}

// FBMirror paints the current frame onto a local framebuffer device. Until the
// first frame arrives it shows IdleQR, typically the client download URL.
type FBMirror struct {
	Device   string
	Width    int
	Source   FrameSource
	Logger   logging.Logger
	Interval time.Duration
	IdleQR   string
}

func (m *FBMirror) interval() time.Duration {
	if m.Interval <= 0 {
		return defaultMirrorInterval
	}
	return m.Interval
}

func (m *FBMirror) logger() logging.Logger {
	if m.Logger == nil {
		return logging.NoopLogger{}
	}
	return m.Logger
}

// paintFrame draws snap onto dst, centred at the largest integer scale that fits.
func (m *FBMirror) paintFrame(dst draw.Image, snap state.FrameSnapshot) error {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	var src image.Image
	if snap.Writes == 0 {
		qr, err := GenerateQRCodeImage(m.IdleQR, bounds.Dy()/2)
		if err != nil {
			return err
		}
		if qr == nil {
			return nil
		}
		src = qr
	} else {
		img, err := FrameImage(snap.Frame, m.Width)
		if err != nil {
			return err
		}
		src = img
	}

	size := src.Bounds().Size()
	scale := layout.FitScale(size, bounds)
	target := bounds
	if scale > 0 {
		target = layout.CenterIn(image.Pt(size.X*scale, size.Y*scale), bounds)
	}
	xdraw.NearestNeighbor.Scale(dst, target, src, src.Bounds(), xdraw.Src, nil)
	return nil
}
