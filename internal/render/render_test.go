package render

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/rook-computer/framerelay/internal/palette"
	"github.com/rook-computer/framerelay/internal/validate"
)

func TestTestFramePatterns(t *testing.T) {
	tests := []struct {
		pattern Pattern
		width   int
		height  int
		want    string
	}{
		{PatternCheckerboard, 4, 2, "f0f00f0f"},
		{PatternRainbow, 4, 2, "01231234"},
		{PatternGradient, 4, 1, "037b"},
		{PatternVertical, 1, 4, "037b"},
		{PatternNoise, 3, 2, "07ed4b"},
		{Pattern("unknown"), 3, 2, "07ed4b"},
	}
	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			got := TestFrame(tt.width, tt.height, tt.pattern)
			if got != tt.want {
				t.Fatalf("TestFrame=%q, want %q", got, tt.want)
			}
		})
	}
}

func TestTestFrameDefaultsAreValidPayloads(t *testing.T) {
	for _, p := range []Pattern{PatternGradient, PatternVertical, PatternCheckerboard, PatternRainbow, PatternNoise} {
		frame := TestFrame(DefaultTestWidth, DefaultTestHeight, p)
		if len(frame) != DefaultTestWidth*DefaultTestHeight {
			t.Fatalf("%s: len=%d", p, len(frame))
		}
		if err := validate.FramePayload(frame, validate.DefaultMaxFrameSize); err != nil {
			t.Fatalf("%s: invalid payload: %v", p, err)
		}
	}
	if TestFrame(0, 10, PatternRainbow) != "" {
		t.Fatalf("zero width should produce an empty frame")
	}
}

func TestTestFrameShifted(t *testing.T) {
	if got := TestFrameShifted(4, 1, PatternRainbow, 1); got != "1234" {
		t.Fatalf("shifted=%q, want 1234", got)
	}
}

func TestFrameImage(t *testing.T) {
	img, err := FrameImage("0123e", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 3 {
		t.Fatalf("bounds=%v, want 2x3", b)
	}
	if got := palette.Color(img.ColorIndexAt(0, 2)); got != palette.Red {
		t.Fatalf("cell(0,2)=%v, want red", got)
	}
	if got := palette.Color(img.ColorIndexAt(1, 2)); got != palette.Black {
		t.Fatalf("padding cell=%v, want black", got)
	}
	if got := palette.Color(img.ColorIndexAt(1, 0)); got != palette.Orange {
		t.Fatalf("cell(1,0)=%v, want orange", got)
	}
}

func TestFrameImageErrors(t *testing.T) {
	if _, err := FrameImage("00", 0); !errors.Is(err, ErrBadDimensions) {
		t.Fatalf("expected ErrBadDimensions, got: %v", err)
	}
	if _, err := FrameImage("0g", 2); !errors.Is(err, validate.ErrInvalidCharset) {
		t.Fatalf("expected ErrInvalidCharset, got: %v", err)
	}
	img, err := FrameImage("", 5)
	if err != nil {
		t.Fatalf("empty frame: %v", err)
	}
	if img.Bounds().Dy() != 1 {
		t.Fatalf("empty frame height=%d, want 1", img.Bounds().Dy())
	}
}

func TestPreviewPNG(t *testing.T) {
	var buf bytes.Buffer
	frame := TestFrame(8, 4, PatternRainbow)
	if err := PreviewPNG(&buf, frame, PreviewOptions{Width: 8, Scale: 3}); err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 12 {
		t.Fatalf("bounds=%v, want 24x12", b)
	}
	r, g, b, _ := img.At(4, 1).RGBA()
	want := palette.Orange.RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("pixel at cell (1,0) is not orange")
	}
}

func TestPreviewCaptionAddsBand(t *testing.T) {
	img, err := Preview(strings.Repeat("0", 80), PreviewOptions{Width: 40, Scale: 2, Caption: true})
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if got, want := img.Bounds().Dy(), 2*2+captionHeightPx; got != want {
		t.Fatalf("height=%d, want %d", got, want)
	}
}

func TestPreviewClampsScale(t *testing.T) {
	img, err := Preview(strings.Repeat("f", 4), PreviewOptions{Width: 2, Scale: 1000})
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if img.Bounds().Dx() != 2*MaxPreviewScale {
		t.Fatalf("width=%d, want %d", img.Bounds().Dx(), 2*MaxPreviewScale)
	}
}

func TestQRCodePNG(t *testing.T) {
	data, err := QRCodePNG("http://relay.local/api/v1/download-client?monitorSide=top", 128)
	if err != nil {
		t.Fatalf("qr failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Fatalf("width=%d, want 128", img.Bounds().Dx())
	}
	if _, err := QRCodePNG("", 128); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if img, err := GenerateQRCodeImage("", 0); img != nil || err != nil {
		t.Fatalf("empty payload should return nil, nil")
	}
}
