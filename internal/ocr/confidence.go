package ocr

import "github.com/joseph-ayodele/label-verifier/internal/label"

// MeanConfidence is the mean engine confidence (0-100) across consolidated
// blocks, 0 when there are none.
func MeanConfidence(blocks []label.TextBlock) float64 {
	if len(blocks) == 0 {
		return 0
	}
	var sum float64
	for _, b := range blocks {
		sum += b.Confidence
	}
	return sum / float64(len(blocks))
}
