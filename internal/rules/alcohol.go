package rules

import (
	"fmt"
	"math"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
)

func (e *Engine) checkABV(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	flags := e.cfg.Flags(app.BeverageType)
	field := lbl.AlcoholPct
	declared := app.AlcoholPct

	if field.Value == "" {
		if flags.ABVRequired {
			return result(RuleABV, constants.AlcoholContent, constants.CheckFail,
				"alcohol content not found on label", field, declared)
		}
		return result(RuleABV, constants.AlcoholContent, constants.CheckPass,
			"alcohol content statement is optional for this beverage type", field, declared)
	}
	if declared == "" {
		return result(RuleABV, constants.AlcoholContent, constants.CheckPass,
			fmt.Sprintf("alcohol content %s%% shown", field.Value), field, declared)
	}

	ev, okE := parseNumber(field.Value)
	dv, okD := parseNumber(declared)
	if !okE || !okD {
		return result(RuleABV, constants.AlcoholContent, constants.CheckNeedsReview,
			fmt.Sprintf("alcohol content could not be compared numerically: label %q vs declared %q", field.Value, declared),
			field, declared)
	}
	if math.Abs(ev-dv) <= e.cfg.Thresholds.ABVTolerance {
		return result(RuleABV, constants.AlcoholContent, constants.CheckPass,
			fmt.Sprintf("alcohol content matches: %s%%", field.Value), field, declared)
	}
	if e.scorer.Detector.Confusable(field.Value, declared) {
		return result(RuleABV, constants.AlcoholContent, constants.CheckNeedsReview,
			fmt.Sprintf("alcohol content differs but may be a recognition misread: label %q vs declared %q", field.Value, declared),
			field, declared)
	}
	return result(RuleABV, constants.AlcoholContent, constants.CheckNeedsReview,
		fmt.Sprintf("label shows %s%% but application declares %s%%", field.Value, declared), field, declared)
}

func (e *Engine) checkProof(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	flags := e.cfg.Flags(app.BeverageType)
	field := lbl.Proof
	declared := app.Proof

	if !flags.ProofAllowed {
		if field.Value == "" {
			return nil
		}
		return result(RuleProof, constants.AlcoholContent, constants.CheckNeedsReview,
			fmt.Sprintf("proof statement %q is not customary for this beverage type", field.Value), field, declared)
	}
	if field.Value == "" && declared == "" {
		return nil
	}
	if field.Value == "" {
		return result(RuleProof, constants.AlcoholContent, constants.CheckNeedsReview,
			fmt.Sprintf("declared proof %s not found on label", declared), field, declared)
	}
	if declared == "" {
		return result(RuleProof, constants.AlcoholContent, constants.CheckPass,
			fmt.Sprintf("proof %s shown", field.Value), field, declared)
	}

	ev, okE := parseNumberConfusable(field.Value)
	dv, okD := parseNumberConfusable(declared)
	if !okE || !okD {
		return result(RuleProof, constants.AlcoholContent, constants.CheckNeedsReview,
			fmt.Sprintf("proof could not be compared numerically: label %q vs declared %q", field.Value, declared),
			field, declared)
	}
	if math.Abs(ev-dv) <= e.cfg.Thresholds.ProofTolerance {
		return result(RuleProof, constants.AlcoholContent, constants.CheckPass,
			fmt.Sprintf("proof matches: %s", field.Value), field, declared)
	}
	if e.scorer.Detector.Confusable(field.Value, declared) {
		return result(RuleProof, constants.AlcoholContent, constants.CheckNeedsReview,
			fmt.Sprintf("proof differs but looks like recognition noise: label %q vs declared %q", field.Value, declared),
			field, declared)
	}
	return result(RuleProof, constants.AlcoholContent, constants.CheckNeedsReview,
		fmt.Sprintf("label shows proof %s but application declares %s", field.Value, declared), field, declared)
}

// checkProofConsistency verifies the label against itself: stated proof must
// be twice the stated alcohol percentage. Parse problems are already reported
// by the individual checks, so they are not repeated here.
func (e *Engine) checkProofConsistency(lbl *label.ExtractedLabel) *label.RuleResult {
	if lbl.Proof.Value == "" || lbl.AlcoholPct.Value == "" {
		return nil
	}
	proof, okP := parseNumberConfusable(lbl.Proof.Value)
	abv, okA := parseNumber(lbl.AlcoholPct.Value)
	if !okP || !okA {
		return nil
	}

	if math.Abs(proof-2*abv) <= e.cfg.Thresholds.ProofABVConsistency {
		return result(RuleProofConsistency, constants.AlcoholContent, constants.CheckPass,
			fmt.Sprintf("proof %s is consistent with %s%% alcohol", lbl.Proof.Value, lbl.AlcoholPct.Value),
			lbl.Proof, "")
	}
	return result(RuleProofConsistency, constants.AlcoholContent, constants.CheckNeedsReview,
		fmt.Sprintf("proof %s is inconsistent with alcohol content %s%%", lbl.Proof.Value, lbl.AlcoholPct.Value),
		lbl.Proof, "")
}

func (e *Engine) checkNetContents(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	field := lbl.NetContents
	declared := app.NetContents

	if field.Value == "" {
		return result(RuleNetContents, constants.NetContents, constants.CheckFail,
			"net contents not found on label", field, declared)
	}
	if declared == "" {
		return result(RuleNetContents, constants.NetContents, constants.CheckPass,
			fmt.Sprintf("net contents %s shown", field.Value), field, declared)
	}

	em, okE := parseVolumeML(field.Value)
	dm, okD := parseVolumeML(declared)
	if !okE || !okD {
		return result(RuleNetContents, constants.NetContents, constants.CheckNeedsReview,
			fmt.Sprintf("net contents could not be compared: label %q vs declared %q", field.Value, declared),
			field, declared)
	}
	if math.Abs(em-dm) <= e.cfg.Thresholds.NetContentsToleranceML {
		return result(RuleNetContents, constants.NetContents, constants.CheckPass,
			fmt.Sprintf("net contents match: %s (%.0f mL)", field.Value, em), field, declared)
	}
	return result(RuleNetContents, constants.NetContents, constants.CheckNeedsReview,
		fmt.Sprintf("label shows %s (%.0f mL) but application declares %s (%.0f mL)", field.Value, em, declared, dm),
		field, declared)
}

// checkStandardOfFill verifies the labeled volume against the authorized
// container sizes. Malt beverages are exempt by configuration.
func (e *Engine) checkStandardOfFill(lbl *label.ExtractedLabel, app *label.ApplicationData) *label.RuleResult {
	flags := e.cfg.Flags(app.BeverageType)
	if !flags.StandardOfFill {
		return nil
	}
	field := lbl.NetContents
	if field.Value == "" {
		// presence already failed in the net contents check
		return nil
	}

	ml, ok := parseVolumeML(field.Value)
	if !ok {
		return result(RuleStandardOfFill, constants.NetContents, constants.CheckNeedsReview,
			fmt.Sprintf("net contents %q could not be checked against authorized sizes", field.Value), field, "")
	}
	for _, size := range e.cfg.StandardsOfFillML {
		if math.Abs(ml-size) <= e.cfg.Thresholds.NetContentsToleranceML {
			return result(RuleStandardOfFill, constants.NetContents, constants.CheckPass,
				fmt.Sprintf("%.0f mL is an authorized standard of fill", size), field, "")
		}
	}
	return result(RuleStandardOfFill, constants.NetContents, constants.CheckFail,
		fmt.Sprintf("%.0f mL is not an authorized standard of fill", ml), field, "")
}
