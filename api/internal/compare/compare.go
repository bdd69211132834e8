// Package compare runs the whole pipeline for one image pair.
package compare

import (
	"context"
	"fmt"
	"image"

	"diff-finder/api/internal/coords"
	"diff-finder/api/internal/detector/types"
	"diff-finder/api/internal/render"
)

// Detector returns the differences for a pair and never fails.
type Detector interface {
	Detect(ctx context.Context, img1, img2 image.Image) []types.Difference
}

type Service struct {
	detector Detector
}

func NewService(d Detector) *Service {
	return &Service{detector: d}
}

// Outcome holds the result for one pair. Annotated is nil when nothing was detected.
type Outcome struct {
	Differences []types.ConvertedDifference
	Width       int
	Height      int
	Annotated   *image.NRGBA
}

// Run detects the differences, converts the boxes against img1 and draws them on a copy of img1.
// A cancelled context stops the run before the model is called.
func (s *Service) Run(ctx context.Context, img1, img2 image.Image) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}

	b := img1.Bounds()
	out := &Outcome{
		Differences: []types.ConvertedDifference{},
		Width:       b.Dx(),
		Height:      b.Dy(),
	}

	diffs := s.detector.Detect(ctx, img1, img2)
	if len(diffs) == 0 {
		return out, nil
	}

	out.Differences = coords.Convert(diffs, out.Width, out.Height)
	annotated, err := render.Differences(img1, out.Differences)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	out.Annotated = annotated
	return out, nil
}
