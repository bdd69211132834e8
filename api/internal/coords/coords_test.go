package coords

import (
	"testing"

	"github.com/stretchr/testify/require"

	"diff-finder/api/internal/detector/types"
)

func ptr(v float64) *float64 { return &v }

func str(s string) *string { return &s }

func TestConvert_FullGrid(t *testing.T) {
	out := Convert([]types.Difference{{Label: str("all"), Box2D: []float64{0, 0, 1000, 1000}, Confidence: ptr(0.5)}}, 800, 600)
	require.Len(t, out, 1)
	require.Equal(t, [4]int{0, 0, 800, 600}, out[0].BoundingBox)
	require.Equal(t, "all", out[0].Label)
	require.Equal(t, 0.5, out[0].Confidence)
}

func TestConvert_SwapsAxesIntoXYOrder(t *testing.T) {
	// box_2d is [ymin, xmin, ymax, xmax]
	out := Convert([]types.Difference{{Box2D: []float64{100, 250, 500, 750}}}, 400, 200)
	require.Equal(t, [4]int{100, 20, 300, 100}, out[0].BoundingBox)
}

func TestConvert_Defaults(t *testing.T) {
	out := Convert([]types.Difference{{Box2D: []float64{100, 100, 200, 200}}}, 1000, 1000)
	require.Len(t, out, 1)
	require.Equal(t, DefaultLabel, out[0].Label)
	require.Equal(t, 1.0, out[0].Confidence)
}

func TestConvert_EmptyLabelIsKept(t *testing.T) {
	out := Convert([]types.Difference{
		{Label: str(""), Box2D: []float64{0, 0, 10, 10}},
		{Box2D: []float64{0, 0, 10, 10}},
	}, 100, 100)
	require.Len(t, out, 2)
	require.Equal(t, "", out[0].Label)
	require.Equal(t, DefaultLabel, out[1].Label)
}

func TestConvert_DropsEntriesWithoutBox(t *testing.T) {
	in := []types.Difference{
		{Label: str("a"), Box2D: []float64{0, 0, 10, 10}},
		{Label: str("no box")},
		{Label: str("short"), Box2D: []float64{1, 2, 3}},
		{Label: str("b"), Box2D: []float64{10, 10, 20, 20}},
	}
	out := Convert(in, 100, 100)
	require.LessOrEqual(t, len(out), len(in))
	require.Len(t, out, 2)
	require.Equal(t, "a", out[0].Label)
	require.Equal(t, "b", out[1].Label)
}

func TestConvert_Truncates(t *testing.T) {
	out := Convert([]types.Difference{{Box2D: []float64{333, 333, 666, 666}}}, 10, 10)
	require.Equal(t, [4]int{3, 3, 6, 6}, out[0].BoundingBox)
}

func TestConvert_NoClampingOrReordering(t *testing.T) {
	out := Convert([]types.Difference{{Box2D: []float64{-100, 900, 1200, 100}}}, 100, 100)
	require.Equal(t, [4]int{90, -10, 10, 120}, out[0].BoundingBox)
}

func TestConvert_Empty(t *testing.T) {
	require.Empty(t, Convert(nil, 10, 10))
}
