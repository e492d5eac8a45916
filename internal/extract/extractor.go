// Package extract turns consolidated text blocks into named label fields
// with bounding-box provenance. Extraction is heuristic and never fails: a
// field that cannot be located is the empty string.
package extract

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/match"
)

// Options tune one extraction run. All fields are optional.
type Options struct {
	// App, when present, disambiguates between several brand candidates.
	App *label.ApplicationData
	// WarningReference switches the warning reconstructor into
	// reference-guided mode.
	WarningReference string
}

type Extractor struct {
	scorer *match.Scorer
	logger *slog.Logger
}

func NewExtractor(scorer *match.Scorer, logger *slog.Logger) *Extractor {
	if scorer == nil {
		scorer = match.NewScorer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{scorer: scorer, logger: logger}
}

// Extract reads every field off the consolidated blocks. Blocks are assumed
// to be in reading order (top to bottom); Extract re-sorts defensively since
// the walks depend on it.
func (e *Extractor) Extract(blocks []label.TextBlock, opts Options) label.ExtractedLabel {
	sorted := append([]label.TextBlock(nil), blocks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.CenterY() < sorted[j].BBox.CenterY()
	})

	out := label.ExtractedLabel{Blocks: sorted}
	out.AlcoholPct = e.extractABV(sorted)
	out.Proof = e.extractProof(sorted)
	out.NetContents = e.extractNetContents(sorted)
	out.GovernmentWarning = e.reconstructWarning(sorted, opts.WarningReference)
	out.ClassType = e.extractClassType(sorted)
	out.BrandName = e.extractBrand(sorted, opts.App)
	out.Bottler = e.extractBottler(sorted, beverageOf(opts.App))
	out.CountryOfOrigin = e.extractCountry(sorted)

	e.logger.Debug("extract.done",
		"blocks", len(sorted),
		"brand", out.BrandName.Value != "",
		"class", out.ClassType.Value != "",
		"abv", out.AlcoholPct.Value,
		"warning_len", len(out.GovernmentWarning.Value),
	)
	return out
}

func beverageOf(app *label.ApplicationData) constants.BeverageType {
	if app == nil {
		return ""
	}
	return app.BeverageType
}

// --- brand -----------------------------------------------------------------

func (e *Extractor) extractBrand(blocks []label.TextBlock, app *label.ApplicationData) label.ExtractedField {
	var candidates []label.ExtractedField
	for i := range blocks {
		if f, ok := brandFromSuffix(blocks, i); ok {
			candidates = append(candidates, f)
		}
	}

	switch {
	case len(candidates) == 1:
		return candidates[0]
	case len(candidates) > 1:
		if app != nil && app.BrandName != "" {
			best := candidates[0]
			bestScore := -1.0
			for _, c := range candidates {
				score, _ := e.scorer.Score(c.Value, app.BrandName)
				if score > bestScore {
					bestScore = score
					best = c
				}
			}
			return best
		}
		return candidates[0]
	}

	return prominentBrand(blocks)
}

// brandFromSuffix finds a company-suffix token in one block. A retaining
// suffix keeps the text through the suffix; a corporate suffix takes the
// preceding text, reaching into the prior block when nothing precedes it.
func brandFromSuffix(blocks []label.TextBlock, i int) (label.ExtractedField, bool) {
	tokens := strings.Fields(blocks[i].Text)
	for j, tok := range tokens {
		u := upperToken(tok)
		if _, ok := brandRetainingSuffixes[u]; ok {
			value := strings.Join(tokens[:j+1], " ")
			box := blocks[i].BBox
			return label.ExtractedField{Value: value, BBox: &box}, true
		}
		if _, ok := corporateSuffixes[u]; ok {
			value := strings.TrimSpace(strings.Join(tokens[:j], " "))
			box := blocks[i].BBox
			if value == "" && i > 0 {
				value = blocks[i-1].Text
				box = blocks[i-1].BBox
			}
			if value == "" {
				return label.ExtractedField{}, false
			}
			return label.ExtractedField{Value: value, BBox: &box}, true
		}
	}
	return label.ExtractedField{}, false
}

// prominentBrand falls back to the most visually prominent block in the
// upper part of the label: tallest print times text length, skipping class
// designations, numbers and recognition junk.
func prominentBrand(blocks []label.TextBlock) label.ExtractedField {
	maxY := 0.0
	for _, b := range blocks {
		if b.BBox.Y2 > maxY {
			maxY = b.BBox.Y2
		}
	}
	limit := 0.55 * maxY

	best := -1.0
	var field label.ExtractedField
	for i := range blocks {
		b := blocks[i]
		text := strings.TrimSpace(b.Text)
		if text == "" || b.BBox.CenterY() > limit {
			continue
		}
		if startsWithDigit(text) || looksLikeJunk(text) {
			continue
		}
		if containsClassKeyword(text) || hasABVPattern(text) || hasNetPattern(text) {
			continue
		}
		score := b.BBox.Height() * float64(len(text))
		if score > best {
			best = score
			box := b.BBox
			field = label.ExtractedField{Value: text, BBox: &box}
		}
	}
	return field
}

func startsWithDigit(text string) bool {
	for _, r := range text {
		return unicode.IsDigit(r)
	}
	return false
}

func looksLikeJunk(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters < 3
}

// --- class/type ------------------------------------------------------------

const (
	classNeighborLimit  = 3
	classGapLineHeights = 3.0
)

func (e *Extractor) extractClassType(blocks []label.TextBlock) label.ExtractedField {
	anchor := classAnchorIndex(blocks)
	if anchor < 0 {
		return label.ExtractedField{}
	}

	lineHeight := blocks[anchor].BBox.Height()
	maxGap := classGapLineHeights * lineHeight

	first, last := anchor, anchor
	box := blocks[anchor].BBox

	// backward absorption
	for steps := 0; steps < classNeighborLimit && first > 0; steps++ {
		cand := blocks[first-1]
		if box.Y1-cand.BBox.Y2 > maxGap {
			break
		}
		if classStop(cand) != StopNone || !isClassContinuation(cand.Text) {
			break
		}
		first--
		box = box.Union(cand.BBox)
	}

	// forward absorption
	for steps := 0; steps < classNeighborLimit && last < len(blocks)-1; steps++ {
		cand := blocks[last+1]
		if cand.BBox.Y1-box.Y2 > maxGap {
			break
		}
		if classStop(cand) != StopNone || !isClassContinuation(cand.Text) {
			break
		}
		last++
		box = box.Union(cand.BBox)
	}

	parts := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		parts = append(parts, blocks[i].Text)
	}
	return label.ExtractedField{Value: strings.Join(parts, " "), BBox: &box}
}

// classAnchorIndex picks the first block holding a designation keyword that
// is not stop content and not a short lone-qualifier block.
func classAnchorIndex(blocks []label.TextBlock) int {
	for i, b := range blocks {
		tokens := strings.Fields(b.Text)
		keyword := ""
		for _, tok := range tokens {
			if isClassKeyword(tok) {
				keyword = tok
				break
			}
		}
		if keyword == "" {
			continue
		}
		if classStop(b) != StopNone {
			continue
		}
		if len(tokens) <= 2 && !isStrongClassWord(keyword) {
			// "SINGLE MALT" alone is a qualifier fragment, not an anchor
			continue
		}
		return i
	}
	return -1
}

// isClassContinuation accepts a block whose words are all designation
// keywords or qualifier adjectives.
func isClassContinuation(text string) bool {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !isClassKeyword(tok) && !isClassAdjective(tok) {
			return false
		}
	}
	return true
}

// --- alcohol content and proof ---------------------------------------------

func (e *Extractor) extractABV(blocks []label.TextBlock) label.ExtractedField {
	type candidate struct {
		field label.ExtractedField
		score int
	}
	var cands []candidate

	for i := range blocks {
		b := blocks[i]
		for _, re := range abvStrictRes {
			m := re.FindStringSubmatch(b.Text)
			if m == nil {
				continue
			}
			value := m[1]
			score := 0
			if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 3.0 && v <= 75.0 {
				score++
			}
			upper := strings.ToUpper(b.Text)
			if strings.Contains(upper, "ALC") || strings.Contains(upper, "VOL") || strings.Contains(upper, "PROOF") {
				score++
			}
			box := b.BBox
			cands = append(cands, candidate{label.ExtractedField{Value: value, BBox: &box}, score})
			break
		}
	}

	if len(cands) == 0 {
		// bare percentage fallback, plausible values only
		for i := range blocks {
			b := blocks[i]
			m := abvLooseRe.FindStringSubmatch(b.Text)
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil || v < 3.0 || v > 75.0 {
				continue
			}
			box := b.BBox
			return label.ExtractedField{Value: m[1], BBox: &box}
		}
		return label.ExtractedField{}
	}

	best := cands[0]
	for _, c := range cands[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return best.field
}

func (e *Extractor) extractProof(blocks []label.TextBlock) label.ExtractedField {
	for i := range blocks {
		b := blocks[i]
		m := proofRe.FindStringSubmatch(b.Text)
		if m == nil {
			continue
		}
		box := b.BBox
		return label.ExtractedField{Value: sanitizeNumber(m[1]), BBox: &box}
	}
	return label.ExtractedField{}
}

func sanitizeNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// --- net contents ----------------------------------------------------------

func (e *Extractor) extractNetContents(blocks []label.TextBlock) label.ExtractedField {
	// compound "1 PINT 8 FL OZ" first, converted to total fluid ounces
	for i := range blocks {
		b := blocks[i]
		m := compoundNetRe.FindStringSubmatch(b.Text)
		if m == nil {
			continue
		}
		pints, err1 := strconv.ParseFloat(m[1], 64)
		oz, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		total := pints*16 + oz
		box := b.BBox
		return label.ExtractedField{Value: fmt.Sprintf("%s fl oz", formatNumber(total)), BBox: &box}
	}

	for i := range blocks {
		b := blocks[i]
		m := singleNetRe.FindStringSubmatch(b.Text)
		if m == nil {
			continue
		}
		unit := canonicalUnit(m[2])
		if unit == "" {
			continue
		}
		box := b.BBox
		return label.ExtractedField{Value: m[1] + " " + unit, BBox: &box}
	}
	return label.ExtractedField{}
}

func canonicalUnit(raw string) string {
	u := strings.ToUpper(strings.ReplaceAll(raw, ".", ""))
	u = strings.Join(strings.Fields(u), " ")
	switch {
	case u == "ML" || strings.HasPrefix(u, "MILLILITER"):
		return "mL"
	case u == "L" || strings.HasPrefix(u, "LITER") || strings.HasPrefix(u, "LITRE"):
		return "L"
	case u == "FL OZ" || u == "FLOZ" || u == "OZ":
		return "fl oz"
	case u == "QT" || u == "QTS" || strings.HasPrefix(u, "QUART"):
		return "qt"
	case u == "PT" || u == "PTS" || strings.HasPrefix(u, "PINT"):
		return "pt"
	case u == "GAL" || strings.HasPrefix(u, "GALLON"):
		return "gal"
	}
	return ""
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// --- bottler ---------------------------------------------------------------

const (
	bottlerBlockLimit     = 8
	bottlerGapLineHeights = 5.0
)

func (e *Extractor) extractBottler(blocks []label.TextBlock, bev constants.BeverageType) label.ExtractedField {
	for i := range blocks {
		if !hasBottlerHeader(blocks[i].Text) {
			continue
		}
		return e.absorbBottler(blocks, i)
	}

	// no header phrase survived recognition: look for a Name, City, ST run
	joined := joinBlocks(blocks)
	if m := bottlerFallbackRe.FindString(joined); m != "" {
		return label.ExtractedField{Value: strings.TrimSpace(m)}
	}

	// spirits labels sometimes carry only a plant marker
	if bev == constants.DistilledSpirits {
		for i := range blocks {
			if dspMarkerRe.MatchString(blocks[i].Text) {
				box := blocks[i].BBox
				return label.ExtractedField{Value: strings.TrimSpace(blocks[i].Text), BBox: &box}
			}
		}
	}
	return label.ExtractedField{}
}

func (e *Extractor) absorbBottler(blocks []label.TextBlock, anchor int) label.ExtractedField {
	lineHeight := blocks[anchor].BBox.Height()
	maxGap := bottlerGapLineHeights * lineHeight

	box := blocks[anchor].BBox
	parts := []string{blocks[anchor].Text}

	absorbed := 0
	for i := anchor + 1; i < len(blocks) && absorbed < bottlerBlockLimit; i++ {
		cand := blocks[i]
		if cand.BBox.Y1-box.Y2 > maxGap {
			break
		}
		if bottlerStop(cand) != StopNone {
			break
		}
		parts = append(parts, cand.Text)
		box = box.Union(cand.BBox)
		absorbed++
	}

	value := strings.TrimRight(strings.Join(parts, " "), " ,;")
	return label.ExtractedField{Value: value, BBox: &box}
}

func joinBlocks(blocks []label.TextBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, " ")
}

// --- country of origin -----------------------------------------------------

func (e *Extractor) extractCountry(blocks []label.TextBlock) label.ExtractedField {
	for i := range blocks {
		b := blocks[i]
		for _, re := range countryPhraseRes {
			m := re.FindStringSubmatch(b.Text)
			if m == nil {
				continue
			}
			value := trimCountry(m[1])
			if value == "" {
				continue
			}
			box := b.BBox
			return label.ExtractedField{Value: value, BBox: &box}
		}
	}

	// bare country token scan; class designations ("India Pale Ale") are
	// not origin statements
	for i := range blocks {
		if containsClassKeyword(blocks[i].Text) {
			continue
		}
		upper := strings.ToUpper(blocks[i].Text)
		for _, country := range knownCountries {
			if containsWord(upper, country) {
				box := blocks[i].BBox
				return label.ExtractedField{Value: country, BBox: &box}
			}
		}
	}
	return label.ExtractedField{}
}

// trimCountry cuts a phrase capture down to a recognized country, or at most
// three words when the tail ran into unrelated text.
func trimCountry(capture string) string {
	upper := strings.ToUpper(strings.TrimSpace(capture))
	for _, country := range knownCountries {
		if strings.HasPrefix(upper, country) {
			return country
		}
	}
	words := strings.Fields(strings.TrimSpace(capture))
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Trim(strings.Join(words, " "), " .,")
}

func containsWord(text, word string) bool {
	idx := strings.Index(text, word)
	for idx >= 0 {
		before := idx == 0 || !isWordChar(text[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(text) || !isWordChar(text[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(text[idx+1:], word)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
