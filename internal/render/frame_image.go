package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/rook-computer/framerelay/internal/palette"
	"github.com/rook-computer/framerelay/internal/validate"
)

var ErrBadDimensions = errors.New("bad frame dimensions")

// FrameImage decodes frame into a paletted image width cells wide. The last row
// is padded with black when the frame doesn't fill it. An empty frame decodes
// to a single black row.
func FrameImage(frame string, width int) (*image.Paletted, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width %d", ErrBadDimensions, width)
	}
	height := (len(frame) + width - 1) / width
	if height == 0 {
		height = 1
	}
	img := image.NewPaletted(image.Rect(0, 0, width, height), palette.Palette())
	for i := range img.Pix {
		img.Pix[i] = uint8(palette.Black)
	}
	for i := 0; i < len(frame); i++ {
		c, ok := palette.FromDigit(frame[i])
		if !ok {
			return nil, fmt.Errorf("%w: byte %q at offset %d is not a hex digit", validate.ErrInvalidCharset, frame[i], i)
		}
		img.Pix[(i/width)*img.Stride+i%width] = uint8(c)
	}
	return img, nil
}
