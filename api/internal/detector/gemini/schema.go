package gemini

import "google.golang.org/genai"

// DetectSchema describes the report_differences arguments in Gemini's OpenAPI subset.
func DetectSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"differences": {
				Type:        genai.TypeArray,
				Description: "Every visual difference found between the two images.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"label": {
							Type:        genai.TypeString,
							Description: "Short description of the difference.",
						},
						"box_2d": {
							Type:        genai.TypeArray,
							Description: "Bounding box on the first image as [ymin, xmin, ymax, xmax] normalized to 0-1000.",
							Items:       &genai.Schema{Type: genai.TypeNumber},
							MinItems:    genai.Ptr[int64](4),
							MaxItems:    genai.Ptr[int64](4),
						},
						"confidence": {
							Type:        genai.TypeNumber,
							Description: "Confidence between 0.1 and 1.0.",
							Minimum:     genai.Ptr(0.1),
							Maximum:     genai.Ptr(1.0),
						},
					},
					Required:         []string{"label", "box_2d", "confidence"},
					PropertyOrdering: []string{"label", "box_2d", "confidence"},
				},
			},
		},
		Required: []string{"differences"},
	}
}
