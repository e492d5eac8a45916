package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/match"
)

const (
	// warningXMarginFactor widens the anchor's horizontal span for the
	// spatial walk; warningXMarginMin is its floor in pixels.
	warningXMarginFactor = 0.3
	warningXMarginMin    = 30.0
	// warningGapLineHeights bounds the vertical jump between absorbed rows.
	warningGapLineHeights = 3.0
	// warningOverlapMax is the longest junction overlap trimmed during
	// reference-guided concatenation.
	warningOverlapMax = 25
	// warningHeaderMax is the length under which a later GOVERNMENT WARNING
	// block counts as a duplicated header, not content.
	warningHeaderMax = 55
)

// prefix lengths probed against the reference, longest first. Short
// fragments rank by their first significant word instead; both are
// best-effort orderings, not guarantees.
var warningPrefixLengths = []int{60, 50, 40, 30, 20, 15, 10}

// reconstructWarning assembles the government warning text. Without a
// reference it walks blocks below the GOVERNMENT WARNING anchor; with one it
// reorders keyword blocks by their position in the canonical wording.
func (e *Extractor) reconstructWarning(blocks []label.TextBlock, reference string) label.ExtractedField {
	if reference == "" {
		return e.spatialWarning(blocks)
	}
	return e.referenceWarning(blocks, reference)
}

// --- spatial mode ----------------------------------------------------------

func (e *Extractor) spatialWarning(blocks []label.TextBlock) label.ExtractedField {
	anchor, next, ok := findWarningAnchor(blocks)
	if !ok {
		return label.ExtractedField{}
	}

	lineHeight := anchor.BBox.Height()
	if lineHeight <= 0 {
		lineHeight = 1
	}
	margin := warningXMarginFactor * anchor.BBox.Width()
	if margin < warningXMarginMin {
		margin = warningXMarginMin
	}
	left := anchor.BBox.X1 - margin
	right := anchor.BBox.X2 + margin
	maxGap := warningGapLineHeights * lineHeight

	box := anchor.BBox
	parts := []string{anchor.Text}

	for i := next; i < len(blocks); i++ {
		cand := blocks[i]
		if cand.BBox.CenterY() <= anchor.BBox.CenterY() {
			continue
		}
		if cand.BBox.X1 < left || cand.BBox.X2 > right {
			continue
		}
		if cand.BBox.Y1-box.Y2 > maxGap {
			break
		}
		if reason := warningStop(cand); reason != StopNone {
			e.logger.Debug("extract.warning.stop", "reason", string(reason), "text", cand.Text)
			break
		}
		parts = append(parts, cand.Text)
		box = box.Union(cand.BBox)
	}

	value := sanitizeWarning(strings.Join(parts, " "))
	if value == "" {
		return label.ExtractedField{}
	}
	return label.ExtractedField{Value: value, BBox: &box}
}

// findWarningAnchor locates the GOVERNMENT WARNING header, tolerating the
// two words split across adjacent blocks. It returns the merged anchor and
// the index absorption starts from.
func findWarningAnchor(blocks []label.TextBlock) (label.TextBlock, int, bool) {
	for i, b := range blocks {
		upper := strings.ToUpper(b.Text)
		if strings.Contains(upper, "GOVERNMENT") && strings.Contains(upper, "WARNING") {
			return b, i + 1, true
		}
		if strings.HasSuffix(strings.TrimSpace(upper), "GOVERNMENT") && i+1 < len(blocks) {
			nextUpper := strings.ToUpper(strings.TrimSpace(blocks[i+1].Text))
			if strings.HasPrefix(nextUpper, "WARNING") {
				merged := label.TextBlock{
					Text:       b.Text + " " + blocks[i+1].Text,
					BBox:       b.BBox.Union(blocks[i+1].BBox),
					Confidence: (b.Confidence + blocks[i+1].Confidence) / 2,
				}
				return merged, i + 2, true
			}
		}
	}
	return label.TextBlock{}, 0, false
}

// --- reference-guided mode -------------------------------------------------

type rankedBlock struct {
	block label.TextBlock
	rank  int
}

func (e *Extractor) referenceWarning(blocks []label.TextBlock, reference string) label.ExtractedField {
	nr := match.Normalize(reference)

	var ranked []rankedBlock
	for _, b := range blocks {
		if !containsWarningWord(b.Text) {
			continue
		}
		ranked = append(ranked, rankedBlock{block: b, rank: warningRank(match.Normalize(b.Text), nr)})
	}
	if len(ranked) == 0 {
		return label.ExtractedField{}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].rank != ranked[j].rank {
			return ranked[i].rank < ranked[j].rank
		}
		return ranked[i].block.BBox.CenterY() < ranked[j].block.BBox.CenterY()
	})

	var value string
	box := ranked[0].block.BBox
	for i, rb := range ranked {
		text := strings.TrimSpace(rb.block.Text)
		if text == "" {
			continue
		}
		if i > 0 && isDuplicateHeader(text) {
			continue
		}
		if value == "" {
			value = text
		} else {
			value += " " + trimOverlap(value, text)
		}
		box = box.Union(rb.block.BBox)
	}

	value = sanitizeWarning(value)
	if value == "" {
		return label.ExtractedField{}
	}
	return label.ExtractedField{Value: value, BBox: &box}
}

// warningRank is the earliest position at which a normalized prefix of the
// block is found in the normalized reference; decreasing prefix lengths make
// the probe robust against trailing recognition noise. Blocks with no match
// rank last.
func warningRank(nb, nr string) int {
	if nb == "" || nr == "" {
		return len(nr)
	}
	for _, l := range warningPrefixLengths {
		if len(nb) < l {
			continue
		}
		if pos := strings.Index(nr, nb[:l]); pos >= 0 {
			return pos
		}
	}
	if len(nb) >= 5 {
		if pos := strings.Index(nr, nb); pos >= 0 {
			return pos
		}
	}
	for _, w := range strings.Fields(nb) {
		if len(w) < 4 {
			continue
		}
		if pos := strings.Index(nr, w); pos >= 0 {
			return pos
		}
	}
	return len(nr)
}

// isDuplicateHeader spots a short GOVERNMENT WARNING block reappearing
// mid-sequence, typical when both label panels carry the header.
func isDuplicateHeader(text string) bool {
	if len(text) >= warningHeaderMax {
		return false
	}
	upper := strings.ToUpper(text)
	return strings.Contains(upper, "GOVERNMENT") && strings.Contains(upper, "WARNING")
}

// trimOverlap drops the prefix of next that repeats the tail of acc, up to
// 25 characters, so junctions do not duplicate text.
func trimOverlap(acc, next string) string {
	la := strings.ToLower(acc)
	ln := strings.ToLower(next)
	maxK := warningOverlapMax
	if len(la) < maxK {
		maxK = len(la)
	}
	if len(ln) < maxK {
		maxK = len(ln)
	}
	for k := maxK; k >= 4; k-- {
		if la[len(la)-k:] == ln[:k] {
			return strings.TrimSpace(next[k:])
		}
	}
	return next
}

// --- sanitizing ------------------------------------------------------------

var (
	servingFragmentRe = regexp.MustCompile(`(?i)(?:SERVING\s+FACTS?|AMOUNT\s+PER\s+SERVING|\d+\s*CALORIES|CARBOHYDRATES?\s*\d+(?:\.\d+)?\s*G?|\d+\s*CARBS?)`)
	artifactCharsRe   = regexp.MustCompile(`[|{}\[\]<>~^]`)
	dashRunRe         = regexp.MustCompile(`-{3,}`)
	spaceRunRe        = regexp.MustCompile(`\s{2,}`)
	machineryClauseRe = regexp.MustCompile(`(?i)impairs?\s+your\s+ability\s+to\s+drive\s+a\s+car\s+or\s+operate\s+machinery`)
)

// sanitizeWarning strips panel fragments and recognition artifacts that ride
// along when columns merge.
func sanitizeWarning(text string) string {
	text = servingFragmentRe.ReplaceAllString(text, " ")
	text = artifactCharsRe.ReplaceAllString(text, " ")
	text = dashRunRe.ReplaceAllString(text, " ")
	text = collapseAdjacentDuplicates(text)
	text = dropRepeatedMachineryClause(text)
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// collapseAdjacentDuplicates removes immediately repeated words ("alcoholic
// alcoholic"), a column-merge artifact. Short words stay untouched.
func collapseAdjacentDuplicates(text string) string {
	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}
	out := words[:1]
	for _, w := range words[1:] {
		prev := out[len(out)-1]
		if len(w) >= 4 && strings.EqualFold(w, prev) {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// dropRepeatedMachineryClause keeps only the first occurrence of the
// machinery clause when a column merge duplicated it.
func dropRepeatedMachineryClause(text string) string {
	locs := machineryClauseRe.FindAllStringIndex(text, -1)
	if len(locs) < 2 {
		return text
	}
	second := locs[1]
	return strings.TrimSpace(text[:second[0]] + text[second[1]:])
}
