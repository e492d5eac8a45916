package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/label-verifier/constants"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.90, cfg.Thresholds.IdentityPass)
	assert.Equal(t, 0.70, cfg.Thresholds.IdentityReview)
	assert.Equal(t, 0.80, cfg.Thresholds.Bottler)
	assert.Contains(t, cfg.CanonicalWarning, "GOVERNMENT WARNING")
	assert.Contains(t, cfg.StandardsOfFillML, 750.0)
}

func TestDefaultBeverageFlags(t *testing.T) {
	cfg := Default()

	spirits := cfg.Flags(constants.DistilledSpirits)
	assert.True(t, spirits.ABVRequired)
	assert.True(t, spirits.ProofAllowed)

	beer := cfg.Flags(constants.MaltBeverage)
	assert.False(t, beer.ABVRequired)
	assert.False(t, beer.ProofAllowed)
	assert.False(t, beer.StandardOfFill)

	wine := cfg.Flags(constants.Wine)
	assert.True(t, wine.SulfitesRequired)
	assert.False(t, wine.ProofAllowed)

	// unknown types fall back to the strictest row
	unknown := cfg.Flags(constants.BeverageType("sake"))
	assert.Equal(t, spirits, unknown)
}

func TestLoadOverridesDefaults(t *testing.T) {
	doc := []byte(`{
		"thresholds": {"identity_pass": 0.95, "abv_tolerance": 0.3},
		"standards_of_fill_ml": [750, 1000]
	}`)

	cfg, err := Load(doc)
	require.NoError(t, err)

	assert.Equal(t, 0.95, cfg.Thresholds.IdentityPass)
	assert.Equal(t, 0.3, cfg.Thresholds.ABVTolerance)
	assert.Equal(t, []float64{750, 1000}, cfg.StandardsOfFillML)
	// untouched fields keep defaults
	assert.Equal(t, 0.70, cfg.Thresholds.IdentityReview)
	assert.Equal(t, CanonicalWarningText, cfg.CanonicalWarning)
}

func TestLoadRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown top-level key", `{"thresholdz": {}}`},
		{"similarity out of range", `{"thresholds": {"identity_pass": 1.5}}`},
		{"bad statement key", `{"class_conditions": {"vodka": ["not_a_statement"]}}`},
		{"not json", `{thresholds}`},
		{"review above pass", `{"thresholds": {"identity_review": 0.95, "identity_pass": 0.90}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestClassConditionsDefaults(t *testing.T) {
	cfg := Default()

	assert.Contains(t, cfg.ClassConditions["vodka"], StatementNeutralSpirits)
	assert.Contains(t, cfg.ClassConditions["bourbon"], StatementDistillationState)
	assert.Contains(t, cfg.ClassConditions["scotch"], StatementCountryOfOrigin)
	assert.NotContains(t, cfg.ClassConditions, "beer")
}
