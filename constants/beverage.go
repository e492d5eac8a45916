package constants

import "strings"

// BeverageType selects which rule applicability flags govern a label.
type BeverageType string

const (
	DistilledSpirits BeverageType = "distilled_spirits"
	Wine             BeverageType = "wine"
	MaltBeverage     BeverageType = "malt_beverage"
)

var allBeverageTypes = []BeverageType{
	DistilledSpirits,
	Wine,
	MaltBeverage,
}

func BeverageTypeStrings() []string {
	result := make([]string, len(allBeverageTypes))
	for i, bt := range allBeverageTypes {
		result[i] = string(bt)
	}
	return result
}

// CanonicalizeBeverageType maps common spellings ("beer", "spirits") to a
// stable value. Unrecognized input defaults to distilled spirits, the most
// strictly ruled type.
func CanonicalizeBeverageType(input string) (BeverageType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return DistilledSpirits, false
	}

	synonyms := map[string]BeverageType{
		"spirits":          DistilledSpirits,
		"spirit":           DistilledSpirits,
		"distilled spirit": DistilledSpirits,
		"liquor":           DistilledSpirits,
		"whiskey":          DistilledSpirits,
		"whisky":           DistilledSpirits,
		"beer":             MaltBeverage,
		"malt":             MaltBeverage,
		"ale":              MaltBeverage,
		"lager":            MaltBeverage,
		"cider":            Wine,
		"mead":             Wine,
	}

	if bt, ok := synonyms[normalized]; ok {
		return bt, true
	}

	for _, bt := range allBeverageTypes {
		if normalized == strings.ToLower(string(bt)) {
			return bt, true
		}
		// accept space-separated spelling of the stable value
		if normalized == strings.ReplaceAll(string(bt), "_", " ") {
			return bt, true
		}
	}

	return DistilledSpirits, false
}
