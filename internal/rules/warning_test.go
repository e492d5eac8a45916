package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
	"github.com/joseph-ayodele/label-verifier/internal/match"
	"github.com/joseph-ayodele/label-verifier/internal/ruleset"
)

func TestCheckWarningFullText(t *testing.T) {
	e := NewEngine(nil, nil)
	lbl := &label.ExtractedLabel{GovernmentWarning: field(ruleset.CanonicalWarningText)}

	results := e.checkWarning(lbl)

	require.Len(t, results, 4)
	for _, r := range results {
		assert.Equal(t, constants.CheckPass, r.Status, "%s: %s", r.RuleID, r.Message)
	}
	assert.Equal(t, RuleWarningBold, results[3].RuleID)
	assert.Contains(t, results[3].Message, "bold")
}

func TestCheckWarningMissing(t *testing.T) {
	e := NewEngine(nil, nil)

	results := e.checkWarning(&label.ExtractedLabel{})

	require.Len(t, results, 1)
	assert.Equal(t, RuleWarningPresence, results[0].RuleID)
	assert.Equal(t, constants.CheckFail, results[0].Status)
}

func TestCheckWarningCaps(t *testing.T) {
	e := NewEngine(nil, nil)

	cases := []struct {
		name string
		text string
		want constants.CheckStatus
	}{
		{"capital header", ruleset.CanonicalWarningText, constants.CheckPass},
		{"mixed case header", "Government Warning: (1) According to the Surgeon General...", constants.CheckFail},
		{"garbled header", "G0VERNMENT WARN1NG: (1) According to the Surgeon General...", constants.CheckNeedsReview},
		{"no header", "(1) According to the Surgeon General, women should not drink.", constants.CheckFail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.checkWarningCaps(field(tc.text))

			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Status, got.Message)
		})
	}
}

func TestCheckWarningWordingMissingStatement(t *testing.T) {
	e := NewEngine(nil, nil)
	canonical := ruleset.CanonicalWarningText
	cut := strings.Index(canonical, "(2)")
	require.Positive(t, cut)

	firstOnly := e.checkWarningWording(field(canonical[:cut]))
	require.NotNil(t, firstOnly)
	assert.Equal(t, constants.CheckFail, firstOnly.Status)
	assert.Contains(t, firstOnly.Message, "statement (2)")

	secondOnly := e.checkWarningWording(field("GOVERNMENT WARNING: " + canonical[cut:]))
	require.NotNil(t, secondOnly)
	assert.Equal(t, constants.CheckFail, secondOnly.Status)
	assert.Contains(t, secondOnly.Message, "statement (1)")
}

func TestCheckWarningWordingDeviations(t *testing.T) {
	e := NewEngine(nil, nil)
	canonical := ruleset.CanonicalWarningText

	cut := strings.Index(canonical, "(2)")
	require.Positive(t, cut)
	swapped := "GOVERNMENT WARNING: " + canonical[cut:] + " " + canonical[len("GOVERNMENT WARNING: "):cut]
	padded := strings.Replace(canonical, "(2)", strings.Repeat("alcoholic beverages ", 16)+"(2)", 1)

	cases := []struct {
		name     string
		text     string
		contains string
	}{
		{"extra dictionary words", canonical + " QUALITY PRODUCT", "unexpected words"},
		{"recognition junk appended", canonical + " XQ7Z", "suspicious tokens"},
		{"dropped words", strings.Replace(canonical, " operate machinery,", ",", 1), "missing words"},
		{"statements swapped", swapped, "out of order"},
		{"statements far apart", padded, "far apart"},
		{"surgeon general lowercased", strings.Replace(canonical, "Surgeon General", "surgeon general", 1), "not capitalized"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.checkWarningWording(field(tc.text))

			require.NotNil(t, got)
			assert.Equal(t, constants.CheckNeedsReview, got.Status, got.Message)
			assert.Contains(t, got.Message, tc.contains)
		})
	}
}

func TestPhrasePositions(t *testing.T) {
	birth, health, ok := phrasePositions(match.Tokenize(ruleset.CanonicalWarningText))
	require.True(t, ok)
	assert.Less(t, birth, health)

	_, _, ok = phrasePositions([]string{"no", "anchor", "phrases", "here"})
	assert.False(t, ok)
}

func TestCapitalizedOrAbsent(t *testing.T) {
	assert.True(t, capitalizedOrAbsent("per the Surgeon General", "Surgeon"))
	assert.True(t, capitalizedOrAbsent("SURGEON GENERAL'S WARNING", "Surgeon"))
	assert.True(t, capitalizedOrAbsent("no mention at all", "Surgeon"))
	assert.True(t, capitalizedOrAbsent("the microsurgeon operated", "surgeon"))
	assert.False(t, capitalizedOrAbsent("per the surgeon general", "Surgeon"))
}
