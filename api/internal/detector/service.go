// Package detector asks a multimodal model for the differences between two images.
package detector

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"

	"diff-finder/api/internal/detector/types"
	"diff-finder/api/internal/imgproc"
)

// Service is the boundary around an Engine: it never fails outward.
type Service struct {
	engine Engine
	log    *zap.Logger
}

func NewService(engine Engine, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{engine: engine, log: log}
}

// Detect returns the differences reported for the pair in model order.
// Every failure is logged and presented as an empty list.
func (s *Service) Detect(ctx context.Context, img1, img2 image.Image) []types.Difference {
	log := s.log.With(zap.String("engine", s.engine.Name()), zap.String("model", s.engine.GetModel()))

	req, err := newRequest(img1, img2)
	if err != nil {
		log.Error("detect: encode images", zap.Error(err))
		return []types.Difference{}
	}

	start := time.Now()
	resp, err := s.engine.Detect(ctx, req)
	cost := time.Since(start)
	if err != nil {
		log.Error("detect failed", zap.Duration("cost", cost), zap.Error(err))
		return []types.Difference{}
	}
	if resp.Differences == nil {
		resp.Differences = []types.Difference{}
	}
	log.Info("detect done", zap.Duration("cost", cost), zap.Int("count", len(resp.Differences)))
	return resp.Differences
}

// newRequest encodes both images as PNG, a format every provider accepts.
func newRequest(img1, img2 image.Image) (types.DetectRequest, error) {
	b1, err := imgproc.EncodePNG(img1)
	if err != nil {
		return types.DetectRequest{}, err
	}
	b2, err := imgproc.EncodePNG(img2)
	if err != nil {
		return types.DetectRequest{}, err
	}
	return types.DetectRequest{
		Image1: types.Image{Data: b1, MIME: "image/png"},
		Image2: types.Image{Data: b2, MIME: "image/png"},
	}, nil
}
