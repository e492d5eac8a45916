package constants

import (
	"strings"
)

// Category groups compliance checks for reporting.
type Category string

const (
	Identity          Category = "identity"
	AlcoholContent    Category = "alcohol_content"
	NetContents       Category = "net_contents"
	GovernmentWarning Category = "government_warning"
	Origin            Category = "origin"
	Conditional       Category = "conditional"
)

var allCategories = []Category{
	Identity,
	AlcoholContent,
	NetContents,
	GovernmentWarning,
	Origin,
	Conditional,
}

func CategoryStrings() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// CanonicalizeCategory maps free-form category spellings to a stable value.
func CanonicalizeCategory(input string) (Category, bool) {
	if input == "" {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"brand":        Identity,
		"class/type":   Identity,
		"abv":          AlcoholContent,
		"alcohol":      AlcoholContent,
		"proof":        AlcoholContent,
		"fill":         NetContents,
		"volume":       NetContents,
		"warning":      GovernmentWarning,
		"health":       GovernmentWarning,
		"bottler":      Origin,
		"country":      Origin,
		"statements":   Conditional,
		"disclosures":  Conditional,
		"conditionals": Conditional,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return "", false
}
