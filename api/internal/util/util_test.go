package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSniffMimeHTTP(t *testing.T) {
	require.Equal(t, "image/jpeg", SniffMimeHTTP([]byte{0xFF, 0xD8, 0xFF}))
	require.Equal(t, "image/png", SniffMimeHTTP([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}))
	require.Equal(t, "image/webp", SniffMimeHTTP([]byte("RIFF\x00\x00\x00\x00WEBPVP8 ")))
	require.Equal(t, "application/octet-stream", SniffMimeHTTP(nil))
}

func TestMakeDataURL(t *testing.T) {
	require.Equal(t, "data:image/png;base64,AAAA", MakeDataURL("image/png", "AAAA"))
}

func TestFixJSONSchemaStrict(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"differences": map[string]any{
				"type": "array",
				"items": map[string]any{
					"properties": map[string]any{
						"label": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
	FixJSONSchemaStrict(schema)

	require.Equal(t, false, schema["additionalProperties"])
	require.Equal(t, []string{"differences"}, schema["required"])

	item := schema["properties"].(map[string]any)["differences"].(map[string]any)["items"].(map[string]any)
	require.Equal(t, "object", item["type"])
	require.Equal(t, false, item["additionalProperties"])
	require.Equal(t, []string{"label"}, item["required"])
}

func TestFixJSONSchemaStrict_RequiredIsSorted(t *testing.T) {
	for i := 0; i < 20; i++ {
		schema := map[string]any{"properties": map[string]any{
			"label": map[string]any{}, "box_2d": map[string]any{}, "confidence": map[string]any{},
			"area": map[string]any{}, "zone": map[string]any{},
		}}
		FixJSONSchemaStrict(schema)
		require.Equal(t, []string{"area", "box_2d", "confidence", "label", "zone"}, schema["required"])
		require.Equal(t, "object", schema["type"])
	}
}
