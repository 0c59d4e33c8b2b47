package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Inset shrinks rect by paddingPx on all sides. It never returns a rectangle
// with negative size; an over-padded rect collapses to its center.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	rect = Normalize(rect)
	if paddingPx <= 0 {
		return rect
	}
	if 2*paddingPx >= rect.Dx() || 2*paddingPx >= rect.Dy() {
		c := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
		return image.Rectangle{Min: c, Max: c}
	}
	return image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
}

// SplitHorizontal splits rect into a top band of topHeightPx and the remainder.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	if topHeightPx < 0 {
		topHeightPx = 0
	}
	if topHeightPx > rect.Dy() {
		topHeightPx = rect.Dy()
	}
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// FitScale returns the largest integer scale at which size fits inside bounds,
// or 0 if it doesn't fit even at 1:1.
func FitScale(size image.Point, bounds image.Rectangle) int {
	if size.X <= 0 || size.Y <= 0 {
		return 0
	}
	bounds = Normalize(bounds)
	sx := bounds.Dx() / size.X
	sy := bounds.Dy() / size.Y
	if sy < sx {
		return sy
	}
	return sx
}

// CenterIn places a rectangle of the given size at the center of bounds.
func CenterIn(size image.Point, bounds image.Rectangle) image.Rectangle {
	bounds = Normalize(bounds)
	x := bounds.Min.X + (bounds.Dx()-size.X)/2
	y := bounds.Min.Y + (bounds.Dy()-size.Y)/2
	return image.Rect(x, y, x+size.X, y+size.Y)
}
