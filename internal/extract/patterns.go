package extract

import "regexp"

// Alcohol content. The strict forms require an ALC/VOL qualifier; the loose
// form is a bare percentage used only when nothing strict matched anywhere.
var (
	abvStrictRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bALC(?:OHOL)?\.?\s*(\d{1,2}(?:\.\d{1,2})?)\s*%(?:\s*(?:BY\s*VOL(?:UME)?\.?|ALC\s*/\s*VOL|VOL\.?))?`),
		regexp.MustCompile(`(?i)(\d{1,2}(?:\.\d{1,2})?)\s*%\s*ALC(?:OHOL)?\.?(?:\s*/\s*VOL\.?|\s*BY\s*VOL(?:UME)?\.?|\s*VOL\.?)?`),
		regexp.MustCompile(`(?i)(\d{1,2}(?:\.\d{1,2})?)\s*%\s*(?:BY\s*VOL(?:UME)?\.?|VOL\.?)`),
	}
	abvLooseRe = regexp.MustCompile(`\b(\d{1,2}(?:\.\d{1,2})?)\s*%`)

	proofRe = regexp.MustCompile(`(?i)\(?\s*(\d{1,3}(?:\.\d)?)\s*PROOF\s*\)?`)
)

// Net contents. The compound pint form is tried before single units.
var (
	compoundNetRe = regexp.MustCompile(`(?i)\b(\d+)\s*PINTS?\s+(\d+(?:\.\d+)?)\s*FL\.?\s*OZ\.?`)
	singleNetRe   = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(ML|MILLILITERS?|LITERS?|LITRES?|L|FL\.?\s*OZ\.?|OZ\.?|QTS?\.?|QUARTS?|PTS?\.?|PINTS?|GAL\.?|GALLONS?)\b`)
)

// Origin and address.
var (
	countryPhraseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:PRODUCT|PRODUCE|WINE|VINO)\s+(?:OF|DE)\s+([A-Z][A-Za-z .]+)`),
		regexp.MustCompile(`(?i)\bMADE\s+IN\s+([A-Z][A-Za-z .]+)`),
		regexp.MustCompile(`(?i)\bIMPORTED\s+FROM\s+([A-Z][A-Za-z .]+)`),
		regexp.MustCompile(`(?i)\bORIGIN\s*:\s*([A-Z][A-Za-z .]+)`),
	}

	// "Louisville, KY" style city-state pair
	locationRe = regexp.MustCompile(`[A-Z][a-z]+,\s*[A-Z]{2}\b`)

	// "Bottled by", "Distilled and Bottled by", "Cellared and Vinted by", ...
	bottlerHeaderRe = regexp.MustCompile(`(?i)\b(?:BOTTLED|DISTILLED|PRODUCED|BREWED|MADE|CELLARED|VINTED|BLENDED|IMPORTED|PACKED)(?:\s+(?:AND|&)\s+(?:BOTTLED|PACKED|VINTED|BLENDED))?\s+BY\b`)

	// "Name Something, City, ST" fallback when no header phrase survived OCR
	bottlerFallbackRe = regexp.MustCompile(`([A-Z][A-Za-z&.'\- ]{2,60}),\s*([A-Z][A-Za-z.\- ]{2,40}),\s*([A-Z]{2})\b`)

	// distilled-spirits plant marker
	dspMarkerRe = regexp.MustCompile(`(?i)\b(?:DSP[-\s]?[A-Z]{2}[-\s]?\d+|DISTILLERY\s+(?:NO|#)\.?\s*\d+)`)
)

// hasABVPattern reports whether the text reads as an alcohol statement.
func hasABVPattern(text string) bool {
	for _, re := range abvStrictRes {
		if re.MatchString(text) {
			return true
		}
	}
	return proofRe.MatchString(text)
}

func hasNetPattern(text string) bool {
	return compoundNetRe.MatchString(text) || singleNetRe.MatchString(text)
}

func hasBottlerHeader(text string) bool {
	return bottlerHeaderRe.MatchString(text)
}

func hasLocationPattern(text string) bool {
	return locationRe.MatchString(text)
}

func hasCountryPhrase(text string) bool {
	for _, re := range countryPhraseRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
