package rules

import (
	"fmt"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/match"
)

func (e *Engine) checkBrand(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	return e.identityCheck(RuleBrandName, "brand name", lbl.BrandName, app.BrandName, lbl)
}

func (e *Engine) checkClassType(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	return e.identityCheck(RuleClassType, "class/type", lbl.ClassType, app.ClassType, lbl)
}

// identityCheck compares an extracted identity field to its declared value:
// scorer ladder first, then a confusable downgrade, then a full-text token
// rescue for values the extractor assigned to the wrong field.
func (e *Engine) identityCheck(id, what string, field label.ExtractedField, declared string, lbl *label.ExtractedLabel) *label.RuleResult {
	if declared == "" {
		return nil
	}
	th := e.cfg.Thresholds

	if field.Value == "" {
		if match.TokensFound(match.Tokenize(declared), lbl.FullText(), e.scorer.TokenThreshold) {
			return result(id, constants.Identity, constants.CheckNeedsReview,
				fmt.Sprintf("declared %s %q appears on the label but could not be isolated", what, declared),
				field, declared)
		}
		return result(id, constants.Identity, constants.CheckFail,
			fmt.Sprintf("%s not found on label", what), field, declared)
	}

	score, reason := e.scorer.Score(field.Value, declared)
	switch {
	case score >= th.IdentityPass:
		return result(id, constants.Identity, constants.CheckPass,
			fmt.Sprintf("%s matches (%.2f, %s)", what, score, reason), field, declared)
	case score >= th.IdentityReview:
		return result(id, constants.Identity, constants.CheckNeedsReview,
			fmt.Sprintf("%s similarity %.2f (%s): label %q vs declared %q", what, score, reason, field.Value, declared),
			field, declared)
	}

	if e.scorer.Detector.Confusable(field.Value, declared) {
		return result(id, constants.Identity, constants.CheckNeedsReview,
			fmt.Sprintf("%s differs but looks like recognition noise: label %q vs declared %q", what, field.Value, declared),
			field, declared)
	}
	if match.TokensFound(match.Tokenize(declared), lbl.FullText(), e.scorer.TokenThreshold) {
		return result(id, constants.Identity, constants.CheckNeedsReview,
			fmt.Sprintf("declared %s %q found elsewhere on the label; extraction picked %q", what, declared, field.Value),
			field, declared)
	}
	return result(id, constants.Identity, constants.CheckFail,
		fmt.Sprintf("%s mismatch: label %q vs declared %q", what, field.Value, declared), field, declared)
}
