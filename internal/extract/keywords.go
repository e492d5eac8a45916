package extract

import "strings"

// brandRetainingSuffixes end a brand name and stay part of it
// ("OLD TOM DISTILLERY" keeps the suffix word).
var brandRetainingSuffixes = map[string]struct{}{
	"DISTILLERY": {}, "DISTILLERS": {}, "BREWING": {}, "BREWERY": {},
	"WINERY": {}, "VINEYARDS": {}, "CELLARS": {}, "IMPORTS": {},
	"SPIRITS": {}, "ESTATES": {}, "RESERVE": {},
}

// corporateSuffixes mark the end of a company name but are not part of the
// brand ("ACME BRANDS INC" -> "ACME BRANDS").
var corporateSuffixes = map[string]struct{}{
	"COMPANY": {}, "CO": {}, "INC": {}, "LLC": {}, "LTD": {},
	"CORP": {}, "CORPORATION": {},
}

// classKeywords are beverage designations that can anchor the class/type
// field.
var classKeywords = map[string]struct{}{
	"WHISKEY": {}, "WHISKY": {}, "BOURBON": {}, "RYE": {}, "SCOTCH": {},
	"VODKA": {}, "GIN": {}, "RUM": {}, "TEQUILA": {}, "MEZCAL": {},
	"BRANDY": {}, "COGNAC": {}, "ARMAGNAC": {}, "GRAPPA": {},
	"WINE": {}, "CHAMPAGNE": {}, "PROSECCO": {}, "MERLOT": {},
	"CABERNET": {}, "SAUVIGNON": {}, "CHARDONNAY": {}, "RIESLING": {},
	"PINOT": {}, "ZINFANDEL": {}, "MOSCATO": {}, "SHERRY": {}, "PORT": {},
	"VERMOUTH": {}, "SANGRIA": {},
	"ALE": {}, "LAGER": {}, "STOUT": {}, "PORTER": {}, "PILSNER": {},
	"IPA": {}, "BEER": {}, "CIDER": {}, "KOLSCH": {}, "SAISON": {},
	"LIQUEUR": {}, "SCHNAPPS": {}, "ABSINTHE": {}, "SAKE": {}, "MEAD": {},
	"MOONSHINE": {}, "MALT": {}, "SELTZER": {},
}

// strongClassWords can anchor on their own; everything else needs company.
var strongClassWords = map[string]struct{}{
	"WHISKEY": {}, "WHISKY": {}, "BOURBON": {}, "SCOTCH": {}, "VODKA": {},
	"GIN": {}, "RUM": {}, "TEQUILA": {}, "MEZCAL": {}, "BRANDY": {},
	"COGNAC": {}, "WINE": {}, "CHAMPAGNE": {}, "ALE": {}, "LAGER": {},
	"STOUT": {}, "PORTER": {}, "PILSNER": {}, "BEER": {}, "CIDER": {},
	"LIQUEUR": {}, "ABSINTHE": {}, "SAKE": {}, "MEAD": {},
}

// classAdjectives qualify a designation and ride along during absorption
// ("Kentucky Straight", "Small Batch", "Barrel Aged").
var classAdjectives = map[string]struct{}{
	"SINGLE": {}, "BARREL": {}, "STRAIGHT": {}, "BLENDED": {},
	"DOUBLE": {}, "TRIPLE": {}, "SMALL": {}, "BATCH": {}, "RESERVE": {},
	"AGED": {}, "OLD": {}, "AMERICAN": {}, "KENTUCKY": {}, "TENNESSEE": {},
	"IRISH": {}, "CANADIAN": {}, "LONDON": {}, "DRY": {}, "WHITE": {},
	"RED": {}, "DARK": {}, "SPICED": {}, "ANEJO": {}, "REPOSADO": {},
	"SILVER": {}, "GOLD": {}, "EXTRA": {}, "PALE": {}, "INDIA": {},
	"IMPERIAL": {}, "SOUR": {}, "CASK": {}, "STRENGTH": {}, "BOTTLED": {},
	"BOND": {}, "IN": {}, "FINE": {}, "PREMIUM": {},
}

// warningWords flag text belonging to the mandated health warning.
var warningWords = map[string]struct{}{
	"GOVERNMENT": {}, "WARNING": {}, "SURGEON": {}, "GENERAL": {},
	"PREGNANCY": {}, "PREGNANT": {}, "BIRTH": {}, "DEFECTS": {},
	"ALCOHOLIC": {}, "BEVERAGES": {}, "CONSUMPTION": {}, "IMPAIRS": {},
	"MACHINERY": {}, "OPERATE": {}, "DRIVE": {}, "HEALTH": {},
	"PROBLEMS": {}, "WOMEN": {}, "ACCORDING": {}, "RISK": {},
	"ABILITY": {}, "IMPAIRED": {},
}

// servingFactsWords mark a nutrition or serving-facts panel.
var servingFactsWords = map[string]struct{}{
	"CALORIES": {}, "CARBOHYDRATES": {}, "CARBS": {}, "PROTEIN": {},
	"FAT": {}, "SERVING": {}, "SERVINGS": {}, "NUTRITION": {},
}

// knownCountries recognizes a bare country name when no origin phrase is
// present on the label.
var knownCountries = []string{
	"UNITED STATES", "USA", "AMERICA",
	"ARGENTINA", "AUSTRALIA", "AUSTRIA", "BARBADOS", "BELGIUM", "BOLIVIA",
	"BRAZIL", "BULGARIA", "CANADA", "CHILE", "CHINA", "COLOMBIA",
	"CROATIA", "CUBA", "CZECH REPUBLIC", "DENMARK", "DOMINICAN REPUBLIC",
	"ECUADOR", "ENGLAND", "FINLAND", "FRANCE", "GEORGIA", "GERMANY",
	"GREECE", "GUATEMALA", "HAITI", "HUNGARY", "ICELAND", "INDIA",
	"IRELAND", "ISRAEL", "ITALY", "JAMAICA", "JAPAN", "KENYA", "LEBANON",
	"MEXICO", "MOLDOVA", "NETHERLANDS", "NEW ZEALAND", "NICARAGUA",
	"NORWAY", "PANAMA", "PERU", "POLAND", "PORTUGAL", "PUERTO RICO",
	"ROMANIA", "RUSSIA", "SCOTLAND", "SERBIA", "SLOVAKIA", "SLOVENIA",
	"SOUTH AFRICA", "SOUTH KOREA", "SPAIN", "SWEDEN", "SWITZERLAND",
	"TAIWAN", "THAILAND", "TRINIDAD", "TURKEY", "UKRAINE",
	"UNITED KINGDOM", "URUGUAY", "VENEZUELA", "VIETNAM", "WALES",
}

func upperToken(tok string) string {
	return strings.ToUpper(strings.Trim(tok, ".,:;()[]{}'\""))
}

func isClassKeyword(tok string) bool {
	_, ok := classKeywords[upperToken(tok)]
	return ok
}

func isStrongClassWord(tok string) bool {
	_, ok := strongClassWords[upperToken(tok)]
	return ok
}

func isClassAdjective(tok string) bool {
	_, ok := classAdjectives[upperToken(tok)]
	return ok
}

func isWarningWord(tok string) bool {
	_, ok := warningWords[upperToken(tok)]
	return ok
}

func isServingFactsWord(tok string) bool {
	_, ok := servingFactsWords[upperToken(tok)]
	return ok
}

// containsWarningWord reports whether any token of the text is part of the
// warning vocabulary.
func containsWarningWord(text string) bool {
	for _, tok := range strings.Fields(text) {
		if isWarningWord(tok) {
			return true
		}
	}
	return false
}

func containsServingFactsWord(text string) bool {
	for _, tok := range strings.Fields(text) {
		if isServingFactsWord(tok) {
			return true
		}
	}
	return false
}

func containsClassKeyword(text string) bool {
	for _, tok := range strings.Fields(text) {
		if isClassKeyword(tok) {
			return true
		}
	}
	return false
}
