// Package rules evaluates extracted label fields against the declared
// application record and the rule configuration. Every check is a pure
// function of (label, application, configuration): no state survives a run,
// and identical inputs always produce the identical result list.
package rules

import (
	"log/slog"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/match"
	"github.com/joseph-ayodele/label-verifier/internal/ruleset"
)

// Rule identifiers, stable across runs; stored and exported verbatim.
// Conditional statements use "statement.<key>".
const (
	RuleBrandName        = "identity.brand_name"
	RuleClassType        = "identity.class_type"
	RuleABV              = "alcohol.abv"
	RuleProof            = "alcohol.proof"
	RuleProofConsistency = "alcohol.proof_consistency"
	RuleNetContents      = "contents.net"
	RuleStandardOfFill   = "contents.standard_of_fill"
	RuleWarningPresence  = "warning.presence"
	RuleWarningCaps      = "warning.capitalization"
	RuleWarningWording   = "warning.wording"
	RuleWarningBold      = "warning.bold_format"
	RuleBottler          = "origin.bottler"
	RuleBottlerAddress   = "origin.bottler_address"
	RuleCountry          = "origin.country"
	RuleAgeStatement     = "statement.age_statement"
)

// Engine runs the compliance checks. Construct once per configuration and
// reuse; Evaluate is safe for concurrent use across labels.
type Engine struct {
	cfg    *ruleset.Config
	scorer *match.Scorer
	dict   match.Dictionary
	logger *slog.Logger
}

func NewEngine(cfg *ruleset.Config, logger *slog.Logger) *Engine {
	if cfg == nil {
		cfg = ruleset.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	scorer := match.NewScorer()
	scorer.TokenThreshold = cfg.Thresholds.TokenFuzzy

	// the wording check treats canonical vocabulary as expected and uses the
	// dictionary to tell wording deviations from recognition junk
	dict := match.DefaultDictionary()
	dict.Add(match.Tokenize(cfg.CanonicalWarning)...)

	return &Engine{cfg: cfg, scorer: scorer, dict: dict, logger: logger}
}

// Evaluate runs every applicable check in a fixed order. Checks with no
// basis to run (nothing declared and nothing extracted) are omitted.
func (e *Engine) Evaluate(lbl *label.ExtractedLabel, app *label.ApplicationData) []label.RuleResult {
	if lbl == nil || app == nil {
		return nil
	}

	var results []label.RuleResult
	add := func(rs ...*label.RuleResult) {
		for _, r := range rs {
			if r != nil {
				results = append(results, *r)
			}
		}
	}

	add(e.checkBrand(lbl, app))
	add(e.checkClassType(lbl, app))
	add(e.checkABV(lbl, app))
	add(e.checkProof(lbl, app))
	add(e.checkProofConsistency(lbl))
	add(e.checkNetContents(lbl, app))
	add(e.checkStandardOfFill(lbl, app))
	add(e.checkWarning(lbl)...)
	add(e.checkBottler(lbl, app))
	add(e.checkBottlerAddress(lbl, app))
	add(e.checkCountry(lbl, app))
	add(e.checkStatements(lbl, app)...)
	add(e.checkAgeStatement(lbl, app))

	e.logger.Debug("rules.evaluate",
		"checks", len(results),
		"beverage_type", string(app.BeverageType),
	)
	return results
}

func result(id string, cat constants.Category, status constants.CheckStatus, msg string, field label.ExtractedField, appValue string) *label.RuleResult {
	return &label.RuleResult{
		RuleID:         id,
		Category:       cat,
		Status:         status,
		Message:        msg,
		BBoxRef:        field.BBox,
		ExtractedValue: field.Value,
		AppValue:       appValue,
	}
}
