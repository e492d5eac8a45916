package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/label-verifier/constants"
)

func TestParseApplicationsSortsAndMapsFields(t *testing.T) {
	doc := []byte(`{
		"W-17": {
			"brand_name": "CHATEAU MERIDIAN",
			"class_type": "Red Wine",
			"alcohol_pct": "13.5",
			"net_contents": "750 mL",
			"beverage_type": "wine",
			"statements": {"sulfites": true}
		},
		"KY-001": {
			"brand_name": "OLD TRESTLE",
			"class_type": "Kentucky Straight Bourbon Whiskey",
			"alcohol_pct": "45",
			"proof": "90",
			"net_contents": "750 mL",
			"bottler_name": "Trestle Distilling Co.",
			"bottler_city": "Bardstown",
			"bottler_state": "KY",
			"beverage_type": "spirits",
			"age_years": 4
		}
	}`)

	entries, err := ParseApplications(doc)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "KY-001", entries[0].LabelID)
	assert.Equal(t, "W-17", entries[1].LabelID)

	app := entries[0].Application
	assert.Equal(t, "OLD TRESTLE", app.BrandName)
	assert.Equal(t, "90", app.Proof)
	assert.Equal(t, constants.DistilledSpirits, app.BeverageType)
	require.NotNil(t, app.AgeYears)
	assert.Equal(t, 4.0, *app.AgeYears)

	wine := entries[1].Application
	assert.Equal(t, constants.Wine, wine.BeverageType)
	assert.True(t, wine.Statements.Sulfites)
	assert.Nil(t, wine.AgeYears)
}

func TestParseApplicationsCanonicalizesBeverageType(t *testing.T) {
	cases := map[string]constants.BeverageType{
		"":                     constants.DistilledSpirits,
		"whiskey":              constants.DistilledSpirits,
		"Beer / Malt Beverage": constants.MaltBeverage,
		"Table Wine":           constants.Wine,
		"kombucha":             constants.DistilledSpirits,
	}
	for raw, want := range cases {
		doc := []byte(`{"X-1": {"brand_name": "X", "beverage_type": "` + raw + `"}}`)
		entries, err := ParseApplications(doc)
		require.NoError(t, err, "beverage_type %q", raw)
		assert.Equal(t, want, entries[0].Application.BeverageType, "beverage_type %q", raw)
	}
}

func TestParseApplicationsRejectsBadDocuments(t *testing.T) {
	_, err := ParseApplications([]byte(`[{"label_id": "KY-001"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse applications JSON")

	_, err = ParseApplications([]byte(`{"  ": {"brand_name": "X"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blank label id")
}

func TestLoadApplicationsReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applications.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"KY-001": {"brand_name": "OLD TRESTLE"}}`), 0o644))

	entries, err := LoadApplications(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "KY-001", entries[0].LabelID)

	_, err = LoadApplications(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestEntryIndexPrefersExactMatches(t *testing.T) {
	ix := IndexEntries([]Entry{
		{LabelID: "KY-001"},
		{LabelID: "ky-001"},
		{LabelID: "W-17"},
	})

	e, ok := ix.Find("KY-001")
	require.True(t, ok)
	assert.Equal(t, "KY-001", e.LabelID)

	e, ok = ix.Find("ky-001")
	require.True(t, ok)
	assert.Equal(t, "ky-001", e.LabelID)

	e, ok = ix.Find("w-17")
	require.True(t, ok)
	assert.Equal(t, "W-17", e.LabelID)

	_, ok = ix.Find("B-9")
	assert.False(t, ok)
}
