package rules

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/match"
)

func (e *Engine) checkBottler(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	declared := app.BottlerName
	if declared == "" {
		return nil
	}
	field := lbl.Bottler
	if field.Value == "" {
		if match.TokensFound(match.Tokenize(declared), lbl.FullText(), e.scorer.TokenThreshold) {
			return result(RuleBottler, constants.Origin, constants.CheckNeedsReview,
				fmt.Sprintf("bottler %q appears on the label but the statement could not be isolated", declared),
				field, declared)
		}
		return result(RuleBottler, constants.Origin, constants.CheckFail,
			fmt.Sprintf("bottler %q not found on label", declared), field, declared)
	}

	score, reason := e.scorer.Score(field.Value, declared)
	if score >= e.cfg.Thresholds.Bottler {
		return result(RuleBottler, constants.Origin, constants.CheckPass,
			fmt.Sprintf("bottler matches (%.2f, %s)", score, reason), field, declared)
	}
	if e.scorer.Detector.Confusable(field.Value, declared) {
		return result(RuleBottler, constants.Origin, constants.CheckNeedsReview,
			fmt.Sprintf("bottler differs but looks like recognition noise: label %q vs declared %q", field.Value, declared),
			field, declared)
	}
	if match.TokensFound(match.Tokenize(declared), lbl.FullText(), e.scorer.TokenThreshold) {
		return result(RuleBottler, constants.Origin, constants.CheckNeedsReview,
			fmt.Sprintf("bottler %q found elsewhere on the label; extraction picked %q", declared, field.Value),
			field, declared)
	}
	return result(RuleBottler, constants.Origin, constants.CheckFail,
		fmt.Sprintf("bottler mismatch: label %q vs declared %q", field.Value, declared), field, declared)
}

// checkBottlerAddress looks for the declared city and state near the bottler
// statement, falling back to the whole label. States are matched as whole
// tokens so a declared "KY" does not match the tail of "WHISKEY".
func (e *Engine) checkBottlerAddress(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	city := app.BottlerCity
	state := app.BottlerState
	if city == "" && state == "" {
		return nil
	}
	field := lbl.Bottler
	bottlerNorm := match.Normalize(field.Value)
	fullNorm := match.Normalize(lbl.FullText())

	var missing []string
	if city != "" {
		cn := match.Normalize(city)
		if !strings.Contains(bottlerNorm, cn) && !strings.Contains(fullNorm, cn) {
			missing = append(missing, fmt.Sprintf("city %q", city))
		}
	}
	if state != "" {
		sn := strings.ToLower(state)
		if !hasToken(bottlerNorm, sn) && !hasToken(fullNorm, sn) {
			missing = append(missing, fmt.Sprintf("state %q", state))
		}
	}
	if len(missing) == 0 {
		return result(RuleBottlerAddress, constants.Origin, constants.CheckPass,
			"bottler address matches the application", field, joinCityState(city, state))
	}
	return result(RuleBottlerAddress, constants.Origin, constants.CheckNeedsReview,
		"declared "+strings.Join(missing, " and ")+" not found in the bottler statement",
		field, joinCityState(city, state))
}

func (e *Engine) checkCountry(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	field := lbl.CountryOfOrigin
	declared := app.CountryOfOrigin

	if field.Value == "" {
		if app.Imported {
			return result(RuleCountry, constants.Origin, constants.CheckFail,
				"country of origin is required for imported products but was not found on label", field, declared)
		}
		if declared != "" {
			return result(RuleCountry, constants.Origin, constants.CheckNeedsReview,
				fmt.Sprintf("declared country of origin %s not found on label", declared), field, declared)
		}
		return nil
	}

	if declared == "" {
		if !app.Imported && !isDomesticOrigin(field.Value) {
			return result(RuleCountry, constants.Origin, constants.CheckNeedsReview,
				fmt.Sprintf("label shows origin %q but the application does not declare an imported product", field.Value),
				field, declared)
		}
		return result(RuleCountry, constants.Origin, constants.CheckPass,
			fmt.Sprintf("country of origin %s shown", field.Value), field, declared)
	}

	en := match.Normalize(field.Value)
	dn := match.Normalize(declared)
	if en == dn || strings.Contains(en, dn) || strings.Contains(dn, en) {
		return result(RuleCountry, constants.Origin, constants.CheckPass,
			fmt.Sprintf("country of origin matches: %s", field.Value), field, declared)
	}
	if match.Canonical(field.Value) == match.Canonical(declared) || e.scorer.Detector.Confusable(field.Value, declared) {
		return result(RuleCountry, constants.Origin, constants.CheckNeedsReview,
			fmt.Sprintf("country of origin differs but looks like recognition noise: label %q vs declared %q", field.Value, declared),
			field, declared)
	}
	return result(RuleCountry, constants.Origin, constants.CheckFail,
		fmt.Sprintf("country of origin mismatch: label %q vs declared %q", field.Value, declared), field, declared)
}

func isDomesticOrigin(s string) bool {
	n := match.Normalize(s)
	return strings.Contains(n, "usa") || strings.Contains(n, "united states") || strings.Contains(n, "america")
}

func hasToken(normalized, token string) bool {
	for _, t := range strings.Fields(normalized) {
		if t == token {
			return true
		}
	}
	return false
}

func joinCityState(city, state string) string {
	switch {
	case city == "":
		return state
	case state == "":
		return city
	}
	return city + ", " + state
}
