package label

// TextBlock is one consolidated line of recognized text with its pixel
// bounding box and mean recognition confidence (0-100). Blocks are produced
// once per pipeline run and treated as immutable afterwards.
type TextBlock struct {
	Text       string      `json:"text"`
	BBox       BoundingBox `json:"bbox"`
	Confidence float64     `json:"confidence"`
}

// Word is a single word-level token from one recognition pass, before line
// consolidation. Pass distinguishes tokens from different recognition passes
// so identical hierarchy ids never collide across passes; Block, Paragraph
// and Line are the engine's layout hierarchy ids.
type Word struct {
	Text       string
	BBox       BoundingBox
	Confidence float64
	Pass       int
	Block      int
	Paragraph  int
	Line       int
}
