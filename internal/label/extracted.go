package label

import "strings"

// Field names as they appear in stored snapshots, exports and the API.
const (
	FieldBrandName         = "brand_name"
	FieldClassType         = "class_type"
	FieldAlcoholPct        = "alcohol_pct"
	FieldProof             = "proof"
	FieldNetContents       = "net_contents"
	FieldGovernmentWarning = "government_warning"
	FieldBottler           = "bottler"
	FieldCountryOfOrigin   = "country_of_origin"
)

// FieldNames lists all extracted field names in display order.
var FieldNames = []string{
	FieldBrandName,
	FieldClassType,
	FieldAlcoholPct,
	FieldProof,
	FieldNetContents,
	FieldGovernmentWarning,
	FieldBottler,
	FieldCountryOfOrigin,
}

// ExtractedField is one named attribute read off the label. A miss is the
// empty string with a nil box, never an absent entry.
type ExtractedField struct {
	Value string       `json:"value"`
	BBox  *BoundingBox `json:"bbox,omitempty"`
}

// ExtractedLabel is the extractor output: the named fields plus the full
// consolidated block list. Rules search Blocks when a field assignment is
// ambiguous, so the raw text travels with the fields.
type ExtractedLabel struct {
	BrandName         ExtractedField `json:"brand_name"`
	ClassType         ExtractedField `json:"class_type"`
	AlcoholPct        ExtractedField `json:"alcohol_pct"`
	Proof             ExtractedField `json:"proof"`
	NetContents       ExtractedField `json:"net_contents"`
	GovernmentWarning ExtractedField `json:"government_warning"`
	Bottler           ExtractedField `json:"bottler"`
	CountryOfOrigin   ExtractedField `json:"country_of_origin"`

	Blocks []TextBlock `json:"blocks,omitempty"`
}

// Fields returns the name -> field mapping in FieldNames order.
func (e *ExtractedLabel) Fields() map[string]ExtractedField {
	return map[string]ExtractedField{
		FieldBrandName:         e.BrandName,
		FieldClassType:         e.ClassType,
		FieldAlcoholPct:        e.AlcoholPct,
		FieldProof:             e.Proof,
		FieldNetContents:       e.NetContents,
		FieldGovernmentWarning: e.GovernmentWarning,
		FieldBottler:           e.Bottler,
		FieldCountryOfOrigin:   e.CountryOfOrigin,
	}
}

// FullText joins every consolidated block into one searchable string.
func (e *ExtractedLabel) FullText() string {
	parts := make([]string, 0, len(e.Blocks))
	for _, b := range e.Blocks {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, " ")
}
