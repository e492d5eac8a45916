package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/match"
)

const canonicalWarning = "GOVERNMENT WARNING: (1) According to the Surgeon General, women should not drink alcoholic beverages during pregnancy because of the risk of birth defects. (2) Consumption of alcoholic beverages impairs your ability to drive a car or operate machinery, and may cause health problems."

func TestSpatialWarningStopsAtServingFacts(t *testing.T) {
	e := NewExtractor(nil, nil)
	in := []label.TextBlock{
		block("GOVERNMENT WARNING: (1) According to the Surgeon General,", 80, 100, 520, 150),
		block("women should not drink alcoholic beverages during pregnancy.", 80, 160, 520, 200),
		block("Serving Facts", 80, 210, 300, 240),
		block("750 mL", 80, 250, 200, 280),
	}

	out := e.spatialWarning(in)
	assert.Equal(t, "GOVERNMENT WARNING: (1) According to the Surgeon General, women should not drink alcoholic beverages during pregnancy.", out.Value)
	assert.NotContains(t, out.Value, "Serving")
	assert.NotContains(t, out.Value, "750")
}

func TestSpatialWarningSkipsSideColumn(t *testing.T) {
	e := NewExtractor(nil, nil)
	in := []label.TextBlock{
		block("GOVERNMENT WARNING: (1) According to the Surgeon General, women should not drink alcoholic beverages during pregnancy because of the risk of birth defects.", 80, 420, 520, 470),
		block("aged in oak barrels", 700, 475, 900, 500),
		block("(2) Consumption of alcoholic beverages impairs your ability to drive a car or operate machinery, and may cause health problems.", 80, 475, 520, 520),
	}

	out := e.spatialWarning(in)
	assert.Contains(t, out.Value, "birth defects")
	assert.Contains(t, out.Value, "operate machinery")
	assert.NotContains(t, out.Value, "oak")
}

func TestSpatialWarningSplitAnchor(t *testing.T) {
	e := NewExtractor(nil, nil)
	in := []label.TextBlock{
		block("GOVERNMENT", 200, 100, 340, 140),
		block("WARNING: (1) According to the Surgeon General,", 350, 100, 640, 140),
		block("women should not drink alcoholic beverages during pregnancy.", 180, 150, 640, 190),
	}

	out := e.spatialWarning(in)
	assert.True(t, strings.HasPrefix(out.Value, "GOVERNMENT WARNING"))
	assert.Contains(t, out.Value, "during pregnancy")
}

func TestSpatialWarningNoAnchor(t *testing.T) {
	e := NewExtractor(nil, nil)
	in := []label.TextBlock{
		block("OLD TOM DISTILLERY", 100, 40, 500, 120),
		block("750 mL", 250, 280, 350, 305),
	}

	out := e.spatialWarning(in)
	assert.Empty(t, out.Value)
	assert.Nil(t, out.BBox)
}

func TestReferenceWarningReordersColumns(t *testing.T) {
	e := NewExtractor(nil, nil)
	// two-column layout read top to bottom: the second statement's first
	// half surfaces before the header
	in := []label.TextBlock{
		block("(2) Consumption of alcoholic beverages impairs your ability to drive a car", 540, 100, 980, 140),
		block("GOVERNMENT WARNING: (1) According to the Surgeon General, women should not drink", 80, 150, 500, 190),
		block("alcoholic beverages during pregnancy because of the risk of birth defects.", 80, 200, 500, 240),
		block("or operate machinery, and may cause health problems.", 540, 250, 980, 290),
		block("GOVERNMENT WARNING:", 540, 300, 760, 330),
	}

	out := e.referenceWarning(in, canonicalWarning)
	assert.Equal(t, canonicalWarning, out.Value)
	assert.Equal(t, 1, strings.Count(out.Value, "GOVERNMENT WARNING"))
}

func TestReferenceWarningTrimsJunctionOverlap(t *testing.T) {
	e := NewExtractor(nil, nil)
	in := []label.TextBlock{
		block("GOVERNMENT WARNING: (1) According to the Surgeon General, women should not drink", 80, 100, 520, 140),
		block("should not drink alcoholic beverages during pregnancy because of the risk of birth defects.", 80, 150, 520, 190),
	}

	out := e.referenceWarning(in, canonicalWarning)
	assert.Equal(t, 1, strings.Count(out.Value, "should not drink"))
	assert.Contains(t, out.Value, "birth defects")
}

func TestReferenceWarningNoKeywordBlocks(t *testing.T) {
	e := NewExtractor(nil, nil)
	in := []label.TextBlock{
		block("OLD TOM DISTILLERY", 100, 40, 500, 120),
		block("750 mL", 250, 280, 350, 305),
	}

	out := e.referenceWarning(in, canonicalWarning)
	assert.Empty(t, out.Value)
}

func TestWarningRankOrdersFragments(t *testing.T) {
	nr := match.Normalize(canonicalWarning)

	header := warningRank(match.Normalize("GOVERNMENT WARNING: (1) According"), nr)
	pregnancy := warningRank(match.Normalize("during pregnancy because of the risk"), nr)
	machinery := warningRank(match.Normalize("or operate machinery, and may cause health problems."), nr)

	assert.Equal(t, 0, header)
	assert.Greater(t, pregnancy, header)
	assert.Greater(t, machinery, pregnancy)

	require.Less(t, machinery, len(nr))
	assert.Equal(t, len(nr), warningRank(match.Normalize("zzz qqq xxxx"), nr))
}

func TestWarningRankFallsBackToSignificantWord(t *testing.T) {
	nr := match.Normalize(canonicalWarning)
	rank := warningRank(match.Normalize("machinery!!!"), nr)
	assert.Positive(t, rank)
	assert.Less(t, rank, len(nr))
}

func TestTrimOverlap(t *testing.T) {
	trimmed := trimOverlap("GOVERNMENT WARNING: (1) According to the", "According to the Surgeon General")
	assert.Equal(t, "Surgeon General", trimmed)

	trimmed = trimOverlap("risk of birth defects.", "(2) Consumption")
	assert.Equal(t, "(2) Consumption", trimmed)

	// overlaps under four characters are left alone
	trimmed = trimOverlap("drive a car", "car pool")
	assert.Equal(t, "car pool", trimmed)
}

func TestIsDuplicateHeader(t *testing.T) {
	assert.True(t, isDuplicateHeader("GOVERNMENT WARNING:"))
	assert.False(t, isDuplicateHeader("GOVERNMENT WARNING: (1) According to the Surgeon General, women should not drink"))
	assert.False(t, isDuplicateHeader("WARNING label ahead"))
}

func TestSanitizeWarning(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"artifact characters",
			"GOVERNMENT WARNING: | (1) According --- to the Surgeon General",
			"GOVERNMENT WARNING: (1) According to the Surgeon General",
		},
		{
			"serving facts fragment",
			"may cause health problems. Serving Facts Amount Per Serving 120 Calories",
			"may cause health problems.",
		},
		{
			"doubled word",
			"drink alcoholic alcoholic beverages",
			"drink alcoholic beverages",
		},
		{
			"repeated machinery clause",
			"Consumption of alcoholic beverages impairs your ability to drive a car or operate machinery, and may cause health problems. impairs your ability to drive a car or operate machinery",
			"Consumption of alcoholic beverages impairs your ability to drive a car or operate machinery, and may cause health problems.",
		},
		{
			"already clean",
			"GOVERNMENT WARNING: (1) According to the Surgeon General",
			"GOVERNMENT WARNING: (1) According to the Surgeon General",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeWarning(tt.in))
		})
	}
}
