// Package consolidate merges word-level recognition output from one or more
// passes into deduplicated line-level text blocks.
package consolidate

import (
	"sort"
	"strings"

	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/match"
)

const (
	// gapFactor scales the median inter-word gap; a wider gap splits the
	// line so side-by-side panels never merge into one block.
	gapFactor = 2.5
	// gapFloorPx is the minimum split distance regardless of the median.
	gapFloorPx = 40.0

	dedupeIoU        = 0.4
	dedupeSimilarity = 0.85
)

type lineKey struct {
	pass, block, par, line int
}

// Consolidate groups words into line blocks, splits lines at panel gaps and
// removes cross-pass duplicates. It never fails; the result may be empty.
func Consolidate(words []label.Word) []label.TextBlock {
	return Dedupe(Lines(words))
}

// Lines groups word tokens sharing a layout-hierarchy key into line blocks,
// splitting where the horizontal gap exceeds max(2.5 x median gap, 40px).
func Lines(words []label.Word) []label.TextBlock {
	groups := make(map[lineKey][]label.Word)
	var order []lineKey
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		k := lineKey{w.Pass, w.Block, w.Paragraph, w.Line}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], w)
	}

	var blocks []label.TextBlock
	for _, k := range order {
		line := groups[k]
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].BBox.X1 < line[j].BBox.X1
		})
		blocks = append(blocks, splitLine(line)...)
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].BBox.Y1 != blocks[j].BBox.Y1 {
			return blocks[i].BBox.Y1 < blocks[j].BBox.Y1
		}
		return blocks[i].BBox.X1 < blocks[j].BBox.X1
	})
	return blocks
}

// splitLine cuts one sorted word run wherever the gap to the previous word
// exceeds the adaptive threshold, then merges each segment into a block.
func splitLine(line []label.Word) []label.TextBlock {
	if len(line) == 0 {
		return nil
	}

	threshold := splitThreshold(line)

	var blocks []label.TextBlock
	segment := []label.Word{line[0]}
	for _, w := range line[1:] {
		gap := w.BBox.X1 - segment[len(segment)-1].BBox.X2
		if gap > threshold {
			blocks = append(blocks, mergeWords(segment))
			segment = []label.Word{w}
			continue
		}
		segment = append(segment, w)
	}
	blocks = append(blocks, mergeWords(segment))
	return blocks
}

func splitThreshold(line []label.Word) float64 {
	var gaps []float64
	for i := 1; i < len(line); i++ {
		gap := line[i].BBox.X1 - line[i-1].BBox.X2
		if gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	threshold := gapFactor * median(gaps)
	if threshold < gapFloorPx {
		threshold = gapFloorPx
	}
	return threshold
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func mergeWords(words []label.Word) label.TextBlock {
	texts := make([]string, 0, len(words))
	box := words[0].BBox
	conf := 0.0
	for _, w := range words {
		texts = append(texts, w.Text)
		box = box.Union(w.BBox)
		conf += w.Confidence
	}
	return label.TextBlock{
		Text:       strings.Join(texts, " "),
		BBox:       box,
		Confidence: conf / float64(len(words)),
	}
}

// Dedupe removes lower-confidence duplicates of overlapping blocks. A block
// is a duplicate of a kept block when their boxes overlap with IoU > 0.4 and
// its text is either very similar (> 0.85) or no longer than the kept text.
func Dedupe(blocks []label.TextBlock) []label.TextBlock {
	if len(blocks) <= 1 {
		return blocks
	}

	byConf := append([]label.TextBlock(nil), blocks...)
	sort.SliceStable(byConf, func(i, j int) bool {
		return byConf[i].Confidence > byConf[j].Confidence
	})

	var kept []label.TextBlock
	for _, cand := range byConf {
		dup := false
		for _, k := range kept {
			if cand.BBox.IoU(k.BBox) <= dedupeIoU {
				continue
			}
			if match.Ratio(strings.ToLower(cand.Text), strings.ToLower(k.Text)) > dedupeSimilarity ||
				len(cand.Text) <= len(k.Text) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, cand)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].BBox.Y1 != kept[j].BBox.Y1 {
			return kept[i].BBox.Y1 < kept[j].BBox.Y1
		}
		return kept[i].BBox.X1 < kept[j].BBox.X1
	})
	return kept
}
