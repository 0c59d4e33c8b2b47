package render

import "strings"

// Pattern selects a synthetic test frame.
type Pattern string

const (
	PatternGradient     Pattern = "gradient"
	PatternVertical     Pattern = "vertical"
	PatternCheckerboard Pattern = "checkerboard"
	PatternRainbow      Pattern = "rainbow"
	PatternNoise        Pattern = "noise"
)

// Default test frame size, matching a full-width 0.5 scale monitor wall.
const (
	DefaultTestWidth  = 82
	DefaultTestHeight = 40
)

const hexDigits = "0123456789abcdef"

// TestFrame builds a width*height frame for manual verification of clients.
// Unknown patterns fall back to PatternNoise.
func TestFrame(width, height int, pattern Pattern) string {
	return TestFrameShifted(width, height, pattern, 0)
}

// TestFrameShifted is TestFrame with the pattern moved shift cells to the
// right, used to animate the simulator feed.
func TestFrameShifted(width, height int, pattern Pattern, shift int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(width * height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.WriteByte(hexDigits[cellColor(x+shift, y, width, height, pattern)&0x0F])
		}
	}
	return b.String()
}

func cellColor(x, y, width, height int, pattern Pattern) int {
	switch pattern {
	case PatternGradient:
		return int(float32(x%width) / float32(width) * 15)
	case PatternVertical:
		return int(float32(y) / float32(height) * 15)
	case PatternCheckerboard:
		if (x+y)%2 == 0 {
			return 0xf
		}
		return 0
	case PatternRainbow:
		return (x + y) % 16
	default:
		return (x*7 + y*13) % 16
	}
}
