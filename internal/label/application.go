package label

import "github.com/joseph-ayodele/label-verifier/constants"

// StatementFlags are disclosures the applicant declared as required for this
// product, independent of anything inferred from the spirit class.
type StatementFlags struct {
	Sulfites      bool `json:"sulfites"`
	Colorants     bool `json:"colorants"`
	WoodTreatment bool `json:"wood_treatment"`
	Aspartame     bool `json:"aspartame"`
	Appellation   bool `json:"appellation"`
	Varietal      bool `json:"varietal"`
	AgeStatement  bool `json:"age_statement"`
}

// ApplicationData carries the attributes declared on the application for the
// same product the label belongs to. It is supplied by the caller and is
// read-only to the verification core. Numeric attributes stay strings exactly
// as entered; the rules parse them and degrade per-check on bad input.
type ApplicationData struct {
	BrandName   string `json:"brand_name"`
	ClassType   string `json:"class_type"`
	AlcoholPct  string `json:"alcohol_pct"`
	Proof       string `json:"proof"`
	NetContents string `json:"net_contents"`

	BottlerName  string `json:"bottler_name"`
	BottlerCity  string `json:"bottler_city"`
	BottlerState string `json:"bottler_state"`

	Imported        bool   `json:"imported"`
	CountryOfOrigin string `json:"country_of_origin"`

	BeverageType constants.BeverageType `json:"beverage_type"`

	// AgeYears is the declared age of the spirit, when known. Nil means the
	// age was not declared, which is different from zero.
	AgeYears *float64 `json:"age_years,omitempty"`

	Statements StatementFlags `json:"statements"`
}

// RuleResult is the outcome of one compliance check. BBoxRef points at the
// label region the extracted value came from, when there is one.
type RuleResult struct {
	RuleID         string                `json:"rule_id"`
	Category       constants.Category    `json:"category"`
	Status         constants.CheckStatus `json:"status"`
	Message        string                `json:"message"`
	BBoxRef        *BoundingBox          `json:"bbox_ref,omitempty"`
	ExtractedValue string                `json:"extracted_value"`
	AppValue       string                `json:"app_value"`
}
