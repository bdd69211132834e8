// Package coords converts model boxes from the normalized 0..1000 grid to pixels.
package coords

import "diff-finder/api/internal/detector/types"

const (
	// GridSize is the side of the normalized grid the model reports boxes on.
	GridSize = 1000

	DefaultLabel      = "difference"
	DefaultConfidence = 1.0
)

// Convert maps every difference that carries a four-number box_2d onto a width x height image.
// Entries without a usable box are dropped, the order of the rest is kept.
// Values are truncated toward zero and are neither clamped nor reordered.
func Convert(diffs []types.Difference, width, height int) []types.ConvertedDifference {
	out := make([]types.ConvertedDifference, 0, len(diffs))
	for _, d := range diffs {
		if len(d.Box2D) != 4 {
			continue
		}
		ymin := scale(d.Box2D[0], height)
		xmin := scale(d.Box2D[1], width)
		ymax := scale(d.Box2D[2], height)
		xmax := scale(d.Box2D[3], width)

		label := DefaultLabel
		if d.Label != nil {
			label = *d.Label
		}
		confidence := DefaultConfidence
		if d.Confidence != nil {
			confidence = *d.Confidence
		}

		out = append(out, types.ConvertedDifference{
			Label:       label,
			Confidence:  confidence,
			BoundingBox: [4]int{xmin, ymin, xmax, ymax},
		})
	}
	return out
}

func scale(v float64, size int) int {
	return int(v / GridSize * float64(size))
}
