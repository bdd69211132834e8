// Package render overlays detected differences on an image.
package render

import "image/color"

// StrokeWidth is the outline thickness in pixels.
const StrokeWidth = 3

// Stroke is the outline colour.
var Stroke = color.NRGBA{R: 0xFF, A: 0xFF}

// canonical orders the corners of an inclusive [x1, y1, x2, y2] box.
func canonical(box [4]int) (x1, y1, x2, y2 int) {
	x1, y1, x2, y2 = box[0], box[1], box[2], box[3]
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2, y2
}
