package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/ruleset"
)

var (
	neutralSpiritsRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bNEUTRAL\s+SPIRITS\b`),
		regexp.MustCompile(`(?i)\bDISTILLED\s+FROM\s+(?:\w+\s+)?GRAIN\b`),
	}
	distilledInRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bDISTILLED\s+IN\s+\w+(?:\s+\w+)?`),
	}
	sulfitesRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bCONTAINS\s+SUL(?:F|PH)ITES\b`),
	}
	colorantsRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bARTIFICIALLY\s+COLORED\b`),
		regexp.MustCompile(`(?i)\bCARAMEL\s+COLOR(?:ING)?\b`),
		regexp.MustCompile(`(?i)\bCERTIFIED\s+COLOR\b`),
		regexp.MustCompile(`(?i)\bFD&C\b`),
	}
	woodTreatmentRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:OAK|WOOD)\s+CHIPS\b`),
		regexp.MustCompile(`(?i)\bTREATED\s+WITH\s+WOOD\b`),
	}
	aspartameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bPHENYLKETONURICS\b`),
		regexp.MustCompile(`(?i)\bASPARTAME\b`),
	}
	varietalRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:MERLOT|CABERNET|CHARDONNAY|PINOT|ZINFANDEL|RIESLING|SYRAH|SHIRAZ|MALBEC|SANGIOVESE|TEMPRANILLO|SAUVIGNON|GRENACHE|NEBBIOLO)\b`),
	}

	ageStatementRe = regexp.MustCompile(`(?i)\bAGED?\s+(?:FOR\s+)?(\d+(?:\.\d+)?)\s+(YEARS?|MONTHS?)\b`)
	whiskyClassRe  = regexp.MustCompile(`(?i)\b(?:WHISKY|WHISKEY|BOURBON|RYE|SCOTCH)\b`)

	distilledWordRe = regexp.MustCompile(`(?i)\bDISTILLED\b`)
	stateSuffixRe   = regexp.MustCompile(`,\s*[A-Z]{2}\b`)
)

// statementEvidence maps each machine-checkable statement key to the label
// phrasings that satisfy it.
var statementEvidence = map[string][]*regexp.Regexp{
	ruleset.StatementNeutralSpirits:    neutralSpiritsRes,
	ruleset.StatementDistillationState: distilledInRes,
	ruleset.StatementSulfites:          sulfitesRes,
	ruleset.StatementColorants:         colorantsRes,
	ruleset.StatementWoodTreatment:     woodTreatmentRes,
	ruleset.StatementAspartame:         aspartameRes,
	ruleset.StatementVarietal:          varietalRes,
}

var statementLabel = map[string]string{
	ruleset.StatementNeutralSpirits:    "neutral spirits disclosure",
	ruleset.StatementDistillationState: "state of distillation",
	ruleset.StatementCountryOfOrigin:   "country of origin",
	ruleset.StatementSulfites:          "sulfite declaration",
	ruleset.StatementColorants:         "colorant disclosure",
	ruleset.StatementWoodTreatment:     "wood treatment disclosure",
	ruleset.StatementAspartame:         "aspartame health statement",
	ruleset.StatementAppellation:       "appellation of origin",
	ruleset.StatementVarietal:          "grape varietal",
}

type requiredStatement struct {
	key    string
	origin string
}

// requiredStatements collects every conditional statement this product must
// carry, from the class/type condition table and from the declared
// disclosure flags. Age is handled by its own check.
func (e *Engine) requiredStatements(lbl *label.ExtractedLabel, app *label.ApplicationData) []requiredStatement {
	var reqs []requiredStatement
	have := make(map[string]struct{})
	addReq := func(key, origin string) {
		if key == ruleset.StatementAge {
			return
		}
		if _, dup := have[key]; dup {
			return
		}
		have[key] = struct{}{}
		reqs = append(reqs, requiredStatement{key: key, origin: origin})
	}

	classText := strings.ToLower(app.ClassType + " " + lbl.ClassType.Value)
	keys := make([]string, 0, len(e.cfg.ClassConditions))
	for k := range e.cfg.ClassConditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !strings.Contains(classText, k) {
			continue
		}
		for _, stmt := range e.cfg.ClassConditions[k] {
			addReq(stmt, fmt.Sprintf("for %q products", k))
		}
	}

	flags := e.cfg.Flags(app.BeverageType)
	if flags.SulfitesRequired || app.Statements.Sulfites {
		addReq(ruleset.StatementSulfites, "by the application")
	}
	if app.Statements.Colorants {
		addReq(ruleset.StatementColorants, "by the application")
	}
	if app.Statements.WoodTreatment {
		addReq(ruleset.StatementWoodTreatment, "by the application")
	}
	if app.Statements.Aspartame {
		addReq(ruleset.StatementAspartame, "by the application")
	}
	if app.Statements.Appellation {
		addReq(ruleset.StatementAppellation, "by the application")
	}
	if app.Statements.Varietal {
		addReq(ruleset.StatementVarietal, "by the application")
	}
	return reqs
}

func (e *Engine) checkStatements(lbl *label.ExtractedLabel, app *label.ApplicationData) []*label.RuleResult {
	reqs := e.requiredStatements(lbl, app)
	if len(reqs) == 0 {
		return nil
	}
	results := make([]*label.RuleResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, e.checkStatement(lbl, req))
	}
	return results
}

func (e *Engine) checkStatement(lbl *label.ExtractedLabel, req requiredStatement) *label.RuleResult {
	id := "statement." + req.key
	name := statementLabel[req.key]

	switch req.key {
	case ruleset.StatementCountryOfOrigin:
		if lbl.CountryOfOrigin.Value != "" {
			return result(id, constants.Conditional, constants.CheckPass,
				fmt.Sprintf("%s present: %q", name, lbl.CountryOfOrigin.Value), lbl.CountryOfOrigin, "")
		}
		return result(id, constants.Conditional, constants.CheckFail,
			fmt.Sprintf("%s required %s but not found on label", name, req.origin), lbl.CountryOfOrigin, "")

	case ruleset.StatementAppellation:
		// appellations are free-form place names, not a fixed phrasing
		return result(id, constants.Conditional, constants.CheckNeedsReview,
			"confirm the declared appellation of origin appears on the label", label.ExtractedField{}, "")

	case ruleset.StatementDistillationState:
		if ev, ok := findEvidence(lbl.Blocks, statementEvidence[req.key]); ok {
			return result(id, constants.Conditional, constants.CheckPass,
				fmt.Sprintf("%s present: %q", name, ev.Value), ev, "")
		}
		if bottlerStatesDistillation(lbl.Bottler.Value) {
			return result(id, constants.Conditional, constants.CheckPass,
				fmt.Sprintf("%s satisfied by the bottler statement: %q", name, lbl.Bottler.Value), lbl.Bottler, "")
		}
		return result(id, constants.Conditional, constants.CheckFail,
			fmt.Sprintf("%s required %s but not found on label", name, req.origin), label.ExtractedField{}, "")
	}

	if ev, ok := findEvidence(lbl.Blocks, statementEvidence[req.key]); ok {
		return result(id, constants.Conditional, constants.CheckPass,
			fmt.Sprintf("%s present: %q", name, ev.Value), ev, "")
	}
	return result(id, constants.Conditional, constants.CheckFail,
		fmt.Sprintf("%s required %s but not found on label", name, req.origin), label.ExtractedField{}, "")
}

// checkAgeStatement applies only to whisky classes and to products whose
// application declared an age statement. A whisky younger than the maturity
// threshold, or of unknown age, must state its age on the label; an age
// statement that is present always satisfies the requirement.
func (e *Engine) checkAgeStatement(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	isWhisky := whiskyClassRe.MatchString(app.ClassType) || whiskyClassRe.MatchString(lbl.ClassType.Value)
	if !isWhisky && !app.Statements.AgeStatement {
		return nil
	}

	field, labelYears, found := findAgeStatement(lbl.Blocks)

	appValue := ""
	if app.AgeYears != nil {
		appValue = strconv.FormatFloat(*app.AgeYears, 'f', -1, 64) + " years"
	}

	required := app.Statements.AgeStatement
	if isWhisky {
		matured := (found && labelYears >= e.cfg.Thresholds.AgeStatementYears) ||
			(app.AgeYears != nil && *app.AgeYears >= e.cfg.Thresholds.AgeStatementYears)
		if !matured {
			required = true
		}
	}

	if found {
		return result(RuleAgeStatement, constants.Conditional, constants.CheckPass,
			fmt.Sprintf("age statement present: %q", field.Value), field, appValue)
	}
	if !required {
		return result(RuleAgeStatement, constants.Conditional, constants.CheckPass,
			"age statement not required for a fully matured spirit", field, appValue)
	}
	return result(RuleAgeStatement, constants.Conditional, constants.CheckFail,
		"age statement required but not found on label", field, appValue)
}

// findEvidence scans the consolidated blocks for the first pattern hit and
// returns the matched fragment with its block's box.
func findEvidence(blocks []label.TextBlock, patterns []*regexp.Regexp) (label.ExtractedField, bool) {
	for _, b := range blocks {
		for _, re := range patterns {
			if m := re.FindString(b.Text); m != "" {
				bb := b.BBox
				return label.ExtractedField{Value: m, BBox: &bb}, true
			}
		}
	}
	return label.ExtractedField{}, false
}

// findAgeStatement returns the first age phrase on the label and its value
// in years. Month counts are converted.
func findAgeStatement(blocks []label.TextBlock) (label.ExtractedField, float64, bool) {
	for _, b := range blocks {
		m := ageStatementRe.FindStringSubmatch(b.Text)
		if m == nil {
			continue
		}
		years, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(m[2]), "MONTH") {
			years /= 12
		}
		bb := b.BBox
		return label.ExtractedField{Value: m[0], BBox: &bb}, years, true
	}
	return label.ExtractedField{}, 0, false
}

func bottlerStatesDistillation(bottler string) bool {
	return distilledWordRe.MatchString(bottler) && stateSuffixRe.MatchString(bottler)
}
