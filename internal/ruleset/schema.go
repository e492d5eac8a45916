package ruleset

// BuildRulesetJSONSchema returns the JSON-Schema (draft 2020-12 subset) for a
// rule-set document as a generic map, used to validate files before decoding.
func BuildRulesetJSONSchema() map[string]any {
	similarity := map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}

	thresholdProps := map[string]any{
		"identity_pass":             similarity,
		"identity_review":           similarity,
		"bottler":                   similarity,
		"token_fuzzy":               similarity,
		"abv_tolerance":             map[string]any{"type": "number", "minimum": 0.0, "maximum": 5.0},
		"proof_tolerance":           map[string]any{"type": "number", "minimum": 0.0, "maximum": 10.0},
		"proof_abv_consistency":     map[string]any{"type": "number", "minimum": 0.0, "maximum": 10.0},
		"net_contents_tolerance_ml": map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0},
		"warning_phrase_gap":        map[string]any{"type": "integer", "minimum": 1},
		"age_statement_years":       map[string]any{"type": "number", "minimum": 0.0},
	}

	flagProps := map[string]any{
		"abv_required":      map[string]any{"type": "boolean"},
		"proof_allowed":     map[string]any{"type": "boolean"},
		"sulfites_required": map[string]any{"type": "boolean"},
		"standard_of_fill":  map[string]any{"type": "boolean"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"thresholds": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           thresholdProps,
			},
			"canonical_warning": map[string]any{"type": "string", "minLength": 1},
			"standards_of_fill_ml": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "number", "exclusiveMinimum": 0.0},
			},
			"beverage_types": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           flagProps,
				},
			},
			"class_conditions": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string", "enum": StatementKeys},
				},
			},
		},
	}
}
