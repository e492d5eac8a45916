package match

import "strings"

// Detector decides whether two strings differ only by typical optical
// recognition noise. A positive answer downgrades a would-be mismatch to a
// review, it never upgrades anything to a pass outright.
type Detector interface {
	Confusable(a, b string) bool
}

// ExactDetector is the degraded default: only identical strings count as
// confusable, so a deployment without fuzzy support still runs all rules.
type ExactDetector struct{}

func (ExactDetector) Confusable(a, b string) bool {
	return a != "" && a == b
}

// substitution pairs an optical engine swaps most often, lowercase form.
// Both directions of each pair are equivalent.
var confusablePairs = map[[2]string]struct{}{
	{"l", "1"}: {},
	{"i", "1"}: {},
	{"o", "0"}: {},
	{"s", "5"}: {},
	{"b", "8"}: {},
	{".", ","}: {},
}

func pairConfusable(a, b byte) bool {
	if a == b {
		return true
	}
	x, y := string(a), string(b)
	if _, ok := confusablePairs[[2]string{x, y}]; ok {
		return true
	}
	_, ok := confusablePairs[[2]string{y, x}]
	return ok
}

// TableDetector implements Detector with the fixed substitution table plus a
// fuzzy-ratio escape hatch for longer strings.
type TableDetector struct {
	// MaxSubstitutions is the number of table-explainable character
	// differences tolerated for same-length strings.
	MaxSubstitutions int
	// LongRatio is the similarity floor applied to strings of LongLength or
	// more characters whose lengths differ by at most two.
	LongRatio  float64
	LongLength int
}

func NewTableDetector() *TableDetector {
	return &TableDetector{
		MaxSubstitutions: 2,
		LongRatio:        0.65,
		LongLength:       6,
	}
}

// Canonical maps every confusable character to one canonical form, so two
// readings of the same print collapse to the same string.
func Canonical(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	lower = strings.ReplaceAll(lower, "rn", "m")
	replacer := strings.NewReplacer(
		"1", "l",
		"i", "l",
		"0", "o",
		"5", "s",
		"8", "b",
		",", ".",
	)
	return replacer.Replace(lower)
}

func (d *TableDetector) Confusable(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if strings.EqualFold(a, b) {
		return true
	}

	la := strings.ToLower(a)
	lb := strings.ToLower(b)

	// rn/m and the single-character table collapse to one canonical form
	if Canonical(la) == Canonical(lb) {
		return true
	}

	if len(la) == len(lb) {
		diffs := 0
		for i := 0; i < len(la); i++ {
			if la[i] == lb[i] {
				continue
			}
			if !pairConfusable(la[i], lb[i]) {
				diffs = d.MaxSubstitutions + 1
				break
			}
			diffs++
		}
		if diffs <= d.MaxSubstitutions {
			return true
		}
	}

	// longer strings: a high ratio at similar length is treated as noise
	if len(la) >= d.LongLength && len(lb) >= d.LongLength {
		if abs(len(la)-len(lb)) <= 2 && Ratio(la, lb) >= d.LongRatio {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
