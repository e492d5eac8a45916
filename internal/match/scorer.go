package match

import "strings"

// Match reasons, in strategy order.
const (
	ReasonExact              = "exact"
	ReasonOCRCanonical       = "ocr_canonical"
	ReasonTokenContainment   = "token_containment"
	ReasonReverseContainment = "reverse_containment"
	ReasonSubstring          = "substring"
	ReasonFuzzyTokens        = "fuzzy_tokens"
	ReasonFuzzyRatio         = "fuzzy_ratio"
	ReasonEmpty              = "empty"
)

// noiseTokens are generic words whose absence from the declared value does
// not indicate a different product.
var noiseTokens = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "and": {}, "by": {},
	"co": {}, "inc": {}, "llc": {}, "ltd": {}, "brand": {}, "brands": {},
}

func isNoiseToken(tok string) bool {
	if len(tok) <= 2 {
		return true
	}
	_, ok := noiseTokens[tok]
	return ok
}

// Scorer compares an extracted label value against a declared application
// value. Zero value is not usable; construct with NewScorer.
type Scorer struct {
	// Detector classifies near-miss pairs as recognition noise.
	Detector Detector
	// TokenThreshold is the per-token fuzzy floor for the token strategies.
	TokenThreshold float64
}

func NewScorer() *Scorer {
	return &Scorer{
		Detector:       NewTableDetector(),
		TokenThreshold: 0.85,
	}
}

// Score runs the strategy ladder and returns the first hit: exact or
// OCR-canonical equality, token containment (either direction), substring
// containment, per-token fuzzy coverage, then the plain ratio fallback.
// Scores are in [0,1]; reason names the strategy that produced the score.
func (s *Scorer) Score(extracted, declared string) (float64, string) {
	ne := Normalize(extracted)
	nd := Normalize(declared)

	if ne == "" || nd == "" {
		if ne == nd {
			return 1, ReasonEmpty
		}
		return 0, ReasonEmpty
	}

	if ne == nd {
		return 1, ReasonExact
	}
	if Canonical(ne) == Canonical(nd) {
		return 1, ReasonOCRCanonical
	}

	eTokens := strings.Fields(ne)
	dTokens := strings.Fields(nd)
	eSet := tokenSet(eTokens)
	dSet := tokenSet(dTokens)

	// every declared token appears on the label
	if containsAll(eSet, dTokens) {
		return 0.95, ReasonTokenContainment
	}

	// every label token appears in the declaration, tolerating one generic
	// noise token on the label side
	if score, ok := reverseContainment(dSet, eTokens); ok {
		return score, ReasonReverseContainment
	}

	if strings.Contains(ne, nd) || strings.Contains(nd, ne) {
		return 0.92, ReasonSubstring
	}

	if score, ok := s.fuzzyTokenCoverage(eTokens, dTokens); ok {
		return score, ReasonFuzzyTokens
	}

	ratio := Ratio(ne, nd)
	if ts := TokenSortRatio(ne, nd); ts > ratio {
		ratio = ts
	}
	return ratio, ReasonFuzzyRatio
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func containsAll(set map[string]struct{}, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

// reverseContainment scores the case where the label shows fewer words than
// the application declares. Full containment scores 0.90; one missing token
// is tolerated when it is generic noise, scaled down by how much of the label
// text matched.
func reverseContainment(declared map[string]struct{}, extracted []string) (float64, bool) {
	if len(extracted) == 0 {
		return 0, false
	}
	matched := 0
	var missing []string
	for _, t := range extracted {
		if _, ok := declared[t]; ok {
			matched++
		} else {
			missing = append(missing, t)
		}
	}
	if matched == 0 {
		return 0, false
	}
	switch len(missing) {
	case 0:
		return 0.90, true
	case 1:
		if !isNoiseToken(missing[0]) {
			return 0, false
		}
		coverage := float64(matched) / float64(len(extracted))
		return 0.75 + 0.15*coverage, true
	default:
		return 0, false
	}
}

// fuzzyTokenCoverage checks that every declared token has a close fuzzy
// counterpart among the extracted tokens. The score rises with the mean
// per-token similarity, bounded to [0.88, 0.95].
func (s *Scorer) fuzzyTokenCoverage(extracted, declared []string) (float64, bool) {
	if len(declared) == 0 || len(extracted) == 0 {
		return 0, false
	}
	total := 0.0
	for _, d := range declared {
		best := 0.0
		for _, e := range extracted {
			if r := Ratio(d, e); r > best {
				best = r
			}
		}
		if best < s.TokenThreshold {
			return 0, false
		}
		total += best
	}
	mean := total / float64(len(declared))
	score := 0.88 + (mean-s.TokenThreshold)/(1-s.TokenThreshold)*0.07
	if score > 0.95 {
		score = 0.95
	}
	return score, true
}
