// Package ruleset holds the rule configuration document: thresholds, the
// canonical warning text, authorized container sizes, per-beverage-type
// applicability flags and the spirit-class conditional table. Loaded once and
// read-only for the run's duration.
package ruleset

import (
	"github.com/joseph-ayodele/label-verifier/constants"
)

// Statement keys for conditional disclosure requirements.
const (
	StatementNeutralSpirits    = "neutral_spirits"
	StatementDistillationState = "state_of_distillation"
	StatementCountryOfOrigin   = "country_of_origin"
	StatementAge               = "age_statement"
	StatementSulfites          = "sulfites"
	StatementColorants         = "colorants"
	StatementWoodTreatment     = "wood_treatment"
	StatementAspartame         = "aspartame"
	StatementAppellation       = "appellation"
	StatementVarietal          = "varietal"
)

// StatementKeys lists every key a conditional table entry may require.
var StatementKeys = []string{
	StatementNeutralSpirits,
	StatementDistillationState,
	StatementCountryOfOrigin,
	StatementAge,
	StatementSulfites,
	StatementColorants,
	StatementWoodTreatment,
	StatementAspartame,
	StatementAppellation,
	StatementVarietal,
}

// Thresholds gathers every tunable cut-off. Similarity values are in [0,1].
type Thresholds struct {
	// IdentityPass and IdentityReview bound the brand and class/type checks.
	IdentityPass   float64 `json:"identity_pass"`
	IdentityReview float64 `json:"identity_review"`
	// Bottler is the pass floor for the bottler name match.
	Bottler float64 `json:"bottler"`
	// TokenFuzzy is the per-token floor used by token-level strategies.
	TokenFuzzy float64 `json:"token_fuzzy"`
	// ABVTolerance is the allowed percentage-point gap between declared and
	// labeled alcohol content.
	ABVTolerance float64 `json:"abv_tolerance"`
	// ProofTolerance is the allowed gap between declared and labeled proof.
	ProofTolerance float64 `json:"proof_tolerance"`
	// ProofABVConsistency bounds |proof - 2*abv| on the label itself.
	ProofABVConsistency float64 `json:"proof_abv_consistency"`
	// NetContentsToleranceML absorbs rounding when comparing volumes.
	NetContentsToleranceML float64 `json:"net_contents_tolerance_ml"`
	// WarningPhraseGap is the maximum token distance from "birth defects" to
	// "health problems" inside the warning.
	WarningPhraseGap int `json:"warning_phrase_gap"`
	// AgeStatementYears: a whisky aged under this (or of unknown age) must
	// carry an age statement.
	AgeStatementYears float64 `json:"age_statement_years"`
}

// BeverageFlags switch rule applicability per beverage type.
type BeverageFlags struct {
	ABVRequired      bool `json:"abv_required"`
	ProofAllowed     bool `json:"proof_allowed"`
	SulfitesRequired bool `json:"sulfites_required"`
	StandardOfFill   bool `json:"standard_of_fill"`
}

// Config is the full rule-set document.
type Config struct {
	Thresholds        Thresholds               `json:"thresholds"`
	CanonicalWarning  string                   `json:"canonical_warning"`
	StandardsOfFillML []float64                `json:"standards_of_fill_ml"`
	BeverageTypes     map[string]BeverageFlags `json:"beverage_types"`
	ClassConditions   map[string][]string      `json:"class_conditions"`
}

// CanonicalWarningText is the mandated health warning wording.
const CanonicalWarningText = "GOVERNMENT WARNING: (1) According to the Surgeon General, " +
	"women should not drink alcoholic beverages during pregnancy because of the risk of " +
	"birth defects. (2) Consumption of alcoholic beverages impairs your ability to drive " +
	"a car or operate machinery, and may cause health problems."

// Default returns the compiled-in rule set.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			IdentityPass:           0.90,
			IdentityReview:         0.70,
			Bottler:                0.80,
			TokenFuzzy:             0.85,
			ABVTolerance:           0.15,
			ProofTolerance:         1.0,
			ProofABVConsistency:    1.0,
			NetContentsToleranceML: 5.0,
			WarningPhraseGap:       30,
			AgeStatementYears:      4,
		},
		CanonicalWarning: CanonicalWarningText,
		StandardsOfFillML: []float64{
			50, 100, 187, 200, 375, 500, 750, 1000, 1500, 1750, 3000,
		},
		BeverageTypes: map[string]BeverageFlags{
			string(constants.DistilledSpirits): {
				ABVRequired:    true,
				ProofAllowed:   true,
				StandardOfFill: true,
			},
			string(constants.Wine): {
				ABVRequired:      true,
				SulfitesRequired: true,
				StandardOfFill:   true,
			},
			string(constants.MaltBeverage): {
				// malt beverage ABV labeling is optional and proof never applies
			},
		},
		ClassConditions: map[string][]string{
			"vodka":            {StatementNeutralSpirits},
			"neutral":          {StatementNeutralSpirits},
			"grain spirits":    {StatementNeutralSpirits},
			"bourbon":          {StatementDistillationState},
			"tennessee":        {StatementDistillationState},
			"straight whisky":  {StatementDistillationState},
			"straight whiskey": {StatementDistillationState},
			"scotch":           {StatementCountryOfOrigin},
		},
	}
}

// Flags returns the applicability flags for a beverage type, defaulting to
// the distilled-spirits row (the strictest) for unknown types.
func (c *Config) Flags(bt constants.BeverageType) BeverageFlags {
	if flags, ok := c.BeverageTypes[string(bt)]; ok {
		return flags
	}
	return c.BeverageTypes[string(constants.DistilledSpirits)]
}
