// Package palette is the fixed 16-color monitor palette. Each frame cell is one
// hex digit naming a Color.
package palette

import "image/color"

type Color uint8

const (
	White Color = iota
	Orange
	Magenta
	LightBlue
	Yellow
	Lime
	Pink
	Gray
	LightGray
	Cyan
	Purple
	Blue
	Brown
	Green
	Red
	Black
)

const digits = "0123456789abcdef"

var names = [16]string{
	"white", "orange", "magenta", "lightBlue",
	"yellow", "lime", "pink", "gray",
	"lightGray", "cyan", "purple", "blue",
	"brown", "green", "red", "black",
}

// Default monitor RGB values.
var rgb = [16]color.RGBA{
	{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF},
	{R: 0xF2, G: 0xB2, B: 0x33, A: 0xFF},
	{R: 0xE5, G: 0x7F, B: 0xD8, A: 0xFF},
	{R: 0x99, G: 0xB2, B: 0xF2, A: 0xFF},
	{R: 0xDE, G: 0xDE, B: 0x6C, A: 0xFF},
	{R: 0x7F, G: 0xCC, B: 0x19, A: 0xFF},
	{R: 0xF2, G: 0xB2, B: 0xCC, A: 0xFF},
	{R: 0x4C, G: 0x4C, B: 0x4C, A: 0xFF},
	{R: 0x99, G: 0x99, B: 0x99, A: 0xFF},
	{R: 0x4C, G: 0x99, B: 0xB2, A: 0xFF},
	{R: 0xB2, G: 0x66, B: 0xE5, A: 0xFF},
	{R: 0x33, G: 0x66, B: 0xCC, A: 0xFF},
	{R: 0x7F, G: 0x66, B: 0x4C, A: 0xFF},
	{R: 0x57, G: 0xA6, B: 0x4E, A: 0xFF},
	{R: 0xCC, G: 0x4C, B: 0x4C, A: 0xFF},
	{R: 0x11, G: 0x11, B: 0x11, A: 0xFF},
}

// Digit is the lowercase hex digit encoding c in a frame.
func (c Color) Digit() byte { return digits[c&0x0F] }

func (c Color) String() string { return names[c&0x0F] }

func (c Color) RGBA() color.RGBA { return rgb[c&0x0F] }

// FromDigit decodes a frame cell. Upper and lower case are accepted.
func FromDigit(b byte) (Color, bool) {
	switch {
	case b >= '0' && b <= '9':
		return Color(b - '0'), true
	case b >= 'a' && b <= 'f':
		return Color(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return Color(b-'A') + 10, true
	}
	return 0, false
}

// Palette returns the colors indexed by digit value, for image.Paletted.
func Palette() color.Palette {
	p := make(color.Palette, len(rgb))
	for i, c := range rgb {
		p[i] = c
	}
	return p
}
