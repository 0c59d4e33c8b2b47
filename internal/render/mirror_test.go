package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/rook-computer/framerelay/internal/palette"
	"github.com/rook-computer/framerelay/internal/state"
)

func TestMirrorPaintFrameCentersScaledFrame(t *testing.T) {
	m := &FBMirror{Width: 2}
	dst := image.NewRGBA(image.Rect(0, 0, 100, 60))

	// 2x1 frame scales 50x to 100x50, leaving a 5px band above and below.
	if err := m.paintFrame(dst, state.FrameSnapshot{Frame: "e1", Writes: 1}); err != nil {
		t.Fatalf("paint failed: %v", err)
	}
	if got := dst.RGBAAt(26, 20); got != palette.Red.RGBA() {
		t.Fatalf("left cell=%v, want red", got)
	}
	if got := dst.RGBAAt(74, 40); got != palette.Orange.RGBA() {
		t.Fatalf("right cell=%v, want orange", got)
	}
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{A: 0xFF}) {
		t.Fatalf("border=%v, want black", got)
	}
}

func TestMirrorIdleShowsQR(t *testing.T) {
	m := &FBMirror{Width: 2, IdleQR: "http://relay.local/"}
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	if err := m.paintFrame(dst, state.FrameSnapshot{}); err != nil {
		t.Fatalf("paint failed: %v", err)
	}
	white := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			if dst.RGBAAt(x, y) == (color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}) {
				white++
			}
		}
	}
	if white == 0 {
		t.Fatalf("expected QR code pixels on the idle screen")
	}
}

func TestMirrorRejectsBadWidth(t *testing.T) {
	m := &FBMirror{}
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if err := m.paintFrame(dst, state.FrameSnapshot{Frame: "00", Writes: 1}); err == nil {
		t.Fatalf("expected an error for zero width")
	}
}
