package types

// Image is one encoded picture handed to a provider.
type Image struct {
	Data []byte
	MIME string // "image/png" | "image/jpeg" | "image/webp"
}

// DetectRequest carries the pair to compare. Image1 is the reference, Image2 the altered copy.
type DetectRequest struct {
	Image1 Image
	Image2 Image
}

// DetectResponse mirrors the arguments of the report_differences function call.
type DetectResponse struct {
	Differences []Difference `json:"differences"`
}

// Difference is one entry reported by the model.
// Box2D is [ymin, xmin, ymax, xmax] on a 0..1000 grid, independent of the image resolution.
// Any field may be missing when the model ignores the schema; a missing label
// is nil, an empty one is kept as sent.
type Difference struct {
	Label      *string   `json:"label,omitempty"`
	Box2D      []float64 `json:"box_2d,omitempty"`
	Confidence *float64  `json:"confidence,omitempty"` // 0.1..1.0
}

// ConvertedDifference is a Difference rescaled to pixels of a concrete image.
type ConvertedDifference struct {
	Label       string  `json:"label"`
	Confidence  float64 `json:"confidence"`
	BoundingBox [4]int  `json:"bounding_box"` // [x1, y1, x2, y2]
}
