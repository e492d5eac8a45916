package match

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

var lvParams = levenshtein.NewParams()

// Ratio is the normalized edit-distance similarity of two strings in [0,1].
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return levenshtein.Similarity(a, b, lvParams)
}

// TokenSortRatio compares the two strings with their tokens sorted, so word
// order does not count against the score.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(s string) string {
	toks := Tokenize(s)
	sort.Strings(toks)
	return strings.Join(toks, " ")
}

// Normalize lowercases, maps punctuation to spaces and collapses runs of
// whitespace. This is the comparison form used throughout the scorer.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case r == '%':
			// keep percent signs, they are significant on labels
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize splits the normalized form into words.
func Tokenize(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Fields(n)
}

// TokensFound reports whether every token has an exact or fuzzy (>= threshold)
// counterpart among the text's tokens. Used to rescue a declared value that
// was extracted into the wrong field but is present somewhere on the label.
func TokensFound(tokens []string, text string, threshold float64) bool {
	if len(tokens) == 0 {
		return false
	}
	textTokens := Tokenize(text)
	if len(textTokens) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(textTokens))
	for _, t := range textTokens {
		set[t] = struct{}{}
	}
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if _, ok := set[tok]; ok {
			continue
		}
		found := false
		for _, cand := range textTokens {
			if Ratio(tok, cand) >= threshold {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
