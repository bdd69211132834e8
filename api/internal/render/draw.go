//go:build !gocv
// +build !gocv

package render

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"diff-finder/api/internal/detector/types"
)

// Differences returns a copy of img with an unfilled red rectangle per box, in list order.
// Rectangles are drawn inward from the inclusive box and clipped to the canvas.
func Differences(img image.Image, diffs []types.ConvertedDifference) (*image.NRGBA, error) {
	dst := imaging.Clone(img)
	src := image.NewUniform(Stroke)
	for _, d := range diffs {
		for _, strip := range outline(d.BoundingBox) {
			r := strip.Intersect(dst.Bounds())
			if r.Empty() {
				continue
			}
			draw.Draw(dst, r, src, image.Point{}, draw.Src)
		}
	}
	return dst, nil
}

// outline splits the inclusive box into four strips of StrokeWidth.
func outline(box [4]int) []image.Rectangle {
	x1, y1, x2, y2 := canonical(box)
	// half-open bounds
	x2++
	y2++

	w := StrokeWidth
	return []image.Rectangle{
		image.Rect(x1, y1, x2, min(y1+w, y2)), // top
		image.Rect(x1, max(y2-w, y1), x2, y2), // bottom
		image.Rect(x1, y1, min(x1+w, x2), y2), // left
		image.Rect(max(x2-w, x1), y1, x2, y2), // right
	}
}
