//go:build gocv
// +build gocv

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"diff-finder/api/internal/detector/types"
)

// Differences returns a copy of img with an unfilled red rectangle per box, in list order.
// Rectangles are drawn inward from the inclusive box; OpenCV clips them to the canvas.
func Differences(img image.Image, diffs []types.ConvertedDifference) (*image.NRGBA, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("render: to mat: %w", err)
	}
	defer mat.Close()

	red := color.RGBA{R: Stroke.R, G: Stroke.G, B: Stroke.B, A: Stroke.A}
	for _, d := range diffs {
		x1, y1, x2, y2 := canonical(d.BoundingBox)
		// толщина наружу и внутрь у OpenCV симметрична, поэтому рисуем 1px кольца внутрь
		for i := 0; i < StrokeWidth; i++ {
			if x1+i > x2-i || y1+i > y2-i {
				break
			}
			ring := image.Rectangle{
				Min: image.Pt(x1+i, y1+i),
				Max: image.Pt(x2-i+1, y2-i+1),
			}
			gocv.Rectangle(&mat, ring, red, 1)
		}
	}

	out, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("render: from mat: %w", err)
	}
	return imaging.Clone(out), nil
}
