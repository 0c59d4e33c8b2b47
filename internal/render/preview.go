package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/rook-computer/framerelay/internal/render/layout"
)

const (
	DefaultPreviewScale = 4
	MaxPreviewScale     = 32

	// maxPreviewPixels caps the encoded canvas.
	maxPreviewPixels = 4096 * 4096

	captionHeightPx = 24
	captionFontSize = 13
	captionPadPx    = 4
)

var (
	captionBackground = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}
	captionForeground = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
)

type PreviewOptions struct {
	// Width is the frame row width in cells.
	Width int
	// Scale is the number of pixels per cell edge; 0 means DefaultPreviewScale.
	Scale int
	// Caption draws a band above the frame describing its size.
	Caption bool
}

var (
	captionFontOnce sync.Once
	captionFont     *truetype.Font
	captionFontErr  error
)

func loadCaptionFont() (*truetype.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = truetype.Parse(goregular.TTF)
	})
	return captionFont, captionFontErr
}

// Preview decodes frame and scales it up into an RGBA canvas.
func Preview(frame string, opts PreviewOptions) (*image.RGBA, error) {
	cells, err := FrameImage(frame, opts.Width)
	if err != nil {
		return nil, err
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultPreviewScale
	}
	if scale > MaxPreviewScale {
		scale = MaxPreviewScale
	}
	size := cells.Bounds().Size()
	for scale > 1 && size.X*scale*size.Y*scale > maxPreviewPixels {
		scale--
	}

	bandHeight := 0
	if opts.Caption {
		bandHeight = captionHeightPx
	}
	canvas := image.NewRGBA(image.Rect(0, 0, size.X*scale, size.Y*scale+bandHeight))
	band, body := layout.SplitHorizontal(canvas.Bounds(), bandHeight)

	xdraw.NearestNeighbor.Scale(canvas, body, cells, cells.Bounds(), xdraw.Src, nil)

	if opts.Caption {
		draw.Draw(canvas, band, &image.Uniform{C: captionBackground}, image.Point{}, draw.Src)
		text := fmt.Sprintf("%dx%d cells, %d chars", size.X, size.Y, len(frame))
		if err := drawCaption(canvas, layout.Inset(band, captionPadPx), text); err != nil {
			return nil, err
		}
	}
	return canvas, nil
}

// PreviewPNG writes the preview of frame as PNG.
func PreviewPNG(w io.Writer, frame string, opts PreviewOptions) error {
	img, err := Preview(frame, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func drawCaption(dst *image.RGBA, rect image.Rectangle, text string) error {
	if rect.Empty() {
		return nil
	}
	fnt, err := loadCaptionFont()
	if err != nil {
		return fmt.Errorf("caption font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fnt)
	ctx.SetFontSize(captionFontSize)
	ctx.SetClip(rect)
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(captionForeground))

	// Baseline sits at the bottom of the padded band.
	_, err = ctx.DrawString(text, freetype.Pt(rect.Min.X, rect.Max.Y-2))
	return err
}
