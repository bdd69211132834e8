package compare

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"diff-finder/api/internal/detector/types"
	"diff-finder/api/internal/render"
)

type stubDetector struct {
	diffs []types.Difference
	calls int
}

func (s *stubDetector) Detect(context.Context, image.Image, image.Image) []types.Difference {
	s.calls++
	return s.diffs
}

func str(s string) *string { return &s }

func TestRun_Empty(t *testing.T) {
	d := &stubDetector{}
	out, err := NewService(d).Run(context.Background(), image.NewNRGBA(image.Rect(0, 0, 30, 20)), image.NewNRGBA(image.Rect(0, 0, 5, 5)))
	require.NoError(t, err)
	require.Equal(t, 1, d.calls)
	require.Nil(t, out.Annotated)
	require.NotNil(t, out.Differences)
	require.Empty(t, out.Differences)
	require.Equal(t, 30, out.Width)
	require.Equal(t, 20, out.Height)
}

func TestRun_ConvertsAgainstFirstImage(t *testing.T) {
	conf := 0.9
	d := &stubDetector{diffs: []types.Difference{
		{Label: str("x"), Box2D: []float64{0, 0, 500, 500}, Confidence: &conf},
		{Label: str("no box")},
	}}
	img1 := image.NewNRGBA(image.Rect(0, 0, 400, 400))
	img2 := image.NewNRGBA(image.Rect(0, 0, 100, 100))

	out, err := NewService(d).Run(context.Background(), img1, img2)
	require.NoError(t, err)
	require.Len(t, out.Differences, 1)
	require.Equal(t, [4]int{0, 0, 200, 200}, out.Differences[0].BoundingBox)
	require.NotNil(t, out.Annotated)
	require.Equal(t, img1.Bounds(), out.Annotated.Bounds())
	require.Equal(t, render.Stroke, out.Annotated.NRGBAAt(0, 0))
}

func TestRun_OnlyUnusableBoxes(t *testing.T) {
	d := &stubDetector{diffs: []types.Difference{{Label: str("no box")}}}
	out, err := NewService(d).Run(context.Background(), image.NewNRGBA(image.Rect(0, 0, 10, 10)), image.NewNRGBA(image.Rect(0, 0, 10, 10)))
	require.NoError(t, err)
	require.Empty(t, out.Differences)
	require.NotNil(t, out.Annotated)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &stubDetector{}
	_, err := NewService(d).Run(ctx, image.NewNRGBA(image.Rect(0, 0, 1, 1)), image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, d.calls)
}
