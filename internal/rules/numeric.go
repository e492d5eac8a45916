package rules

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRe pulls the first decimal number out of a free-form value
// ("45% Alc." reads as 45).
var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parseNumber extracts the first number from the string. ok is false when
// there is nothing parseable; callers degrade that one check instead of
// aborting the evaluation.
func parseNumber(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// confusableDigits maps letters an optical engine substitutes for digits.
var confusableDigits = strings.NewReplacer(
	"O", "0", "o", "0",
	"I", "1", "l", "1",
	"S", "5", "s", "5",
	"B", "8",
)

// confusableNumberRe matches a run of digits that may include digit-shaped
// letters, anchored on at least one real digit so plain words never match.
var confusableNumberRe = regexp.MustCompile(`[0-9OoIilSsB]*[0-9][0-9OoIilSsB]*(?:\.[0-9OoIilSsB]+)?`)

// parseNumberConfusable reads a number tolerating digit-shaped letters, so
// "9O" still reads as 90.
func parseNumberConfusable(s string) (float64, bool) {
	m := confusableNumberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(confusableDigits.Replace(m), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Milliliters per unit, for normalizing metric and imperial volumes.
const (
	mlPerLiter      = 1000.0
	mlPerFluidOunce = 29.5735
	mlPerQuart      = 946.353
	mlPerPint       = 473.176
	mlPerGallon     = 3785.41
)

var volumeRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(ML|MILLILITERS?|LITERS?|LITRES?|L|FL\.?\s*OZ\.?|OZ\.?|QTS?\.?|QUARTS?|PTS?\.?|PINTS?|GAL\.?|GALLONS?)?\b`)

// parseVolumeML reads a volume expression and converts it to milliliters.
// A bare number is taken as milliliters, the most common declared form.
func parseVolumeML(s string) (float64, bool) {
	m := volumeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	unit := strings.ToUpper(strings.ReplaceAll(m[2], ".", ""))
	unit = strings.Join(strings.Fields(unit), " ")
	switch {
	case unit == "" || unit == "ML" || strings.HasPrefix(unit, "MILLILITER"):
		return v, true
	case unit == "L" || strings.HasPrefix(unit, "LITER") || strings.HasPrefix(unit, "LITRE"):
		return v * mlPerLiter, true
	case unit == "FL OZ" || unit == "FLOZ" || unit == "OZ":
		return v * mlPerFluidOunce, true
	case unit == "QT" || unit == "QTS" || strings.HasPrefix(unit, "QUART"):
		return v * mlPerQuart, true
	case unit == "PT" || unit == "PTS" || strings.HasPrefix(unit, "PINT"):
		return v * mlPerPint, true
	case unit == "GAL" || strings.HasPrefix(unit, "GALLON"):
		return v * mlPerGallon, true
	}
	return v, true
}
