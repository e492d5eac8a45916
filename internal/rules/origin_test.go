package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
)

func TestCheckBottler(t *testing.T) {
	e := NewEngine(nil, nil)

	cases := []struct {
		name      string
		extracted string
		declared  string
		blocks    []string
		wantNil   bool
		want      constants.CheckStatus
		contains  string
	}{
		{name: "nothing declared", extracted: "BOTTLED BY ACME", declared: "", wantNil: true},
		{
			name:      "declared name inside the statement",
			extracted: "DISTILLED AND BOTTLED BY OLD TOM DISTILLERY CO., LOUISVILLE, KY",
			declared:  "Old Tom Distillery Co.",
			want:      constants.CheckPass,
			contains:  "matches",
		},
		{
			name:      "statement missed but name on label",
			extracted: "",
			declared:  "Riverside Winery",
			blocks:    []string{"PRODUCED AND BOTTLED BY RIVERSIDE WINERY, NAPA, CA"},
			want:      constants.CheckNeedsReview,
			contains:  "could not be isolated",
		},
		{
			name:      "not on label",
			extracted: "",
			declared:  "Riverside Winery",
			want:      constants.CheckFail,
			contains:  "not found",
		},
		{
			name:      "different company",
			extracted: "BOTTLED BY ACME BEVERAGE COMPANY",
			declared:  "Zenith Spirits Works",
			want:      constants.CheckFail,
			contains:  "mismatch",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lbl := &label.ExtractedLabel{Bottler: field(tc.extracted)}
			for i, text := range tc.blocks {
				lbl.Blocks = append(lbl.Blocks, block(text, float64(40+60*i)))
			}
			app := &label.ApplicationData{BottlerName: tc.declared}

			got := e.checkBottler(lbl, app)

			if tc.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Status, got.Message)
			assert.Contains(t, got.Message, tc.contains)
		})
	}
}

func TestCheckBottlerAddress(t *testing.T) {
	e := NewEngine(nil, nil)

	t.Run("city and state in statement", func(t *testing.T) {
		lbl := &label.ExtractedLabel{
			Bottler: field("DISTILLED AND BOTTLED BY OLD TOM DISTILLERY CO., LOUISVILLE, KY"),
		}
		app := &label.ApplicationData{BottlerCity: "Louisville", BottlerState: "KY"}

		got := e.checkBottlerAddress(lbl, app)

		require.NotNil(t, got)
		assert.Equal(t, constants.CheckPass, got.Status, got.Message)
	})

	t.Run("state abbreviation does not match inside words", func(t *testing.T) {
		// "KY" must not be satisfied by the tail of "WHISKEY"
		lbl := &label.ExtractedLabel{
			Bottler: field("BOTTLED BY OLD TOM DISTILLERY CO., LOUISVILLE"),
			Blocks: []label.TextBlock{
				block("KENTUCKY STRAIGHT BOURBON WHISKEY", 100),
				block("BOTTLED BY OLD TOM DISTILLERY CO., LOUISVILLE", 300),
			},
		}
		app := &label.ApplicationData{BottlerCity: "Louisville", BottlerState: "KY"}

		got := e.checkBottlerAddress(lbl, app)

		require.NotNil(t, got)
		assert.Equal(t, constants.CheckNeedsReview, got.Status, got.Message)
		assert.Contains(t, got.Message, "KY")
	})

	t.Run("missing city", func(t *testing.T) {
		lbl := &label.ExtractedLabel{Bottler: field("BOTTLED BY OLD TOM DISTILLERY CO., FRANKFORT, KY")}
		app := &label.ApplicationData{BottlerCity: "Louisville", BottlerState: "KY"}

		got := e.checkBottlerAddress(lbl, app)

		require.NotNil(t, got)
		assert.Equal(t, constants.CheckNeedsReview, got.Status, got.Message)
		assert.Contains(t, got.Message, "Louisville")
	})

	t.Run("nothing declared", func(t *testing.T) {
		lbl := &label.ExtractedLabel{Bottler: field("BOTTLED BY OLD TOM DISTILLERY CO., LOUISVILLE, KY")}

		assert.Nil(t, e.checkBottlerAddress(lbl, &label.ApplicationData{}))
	})
}

func TestCheckCountry(t *testing.T) {
	e := NewEngine(nil, nil)

	cases := []struct {
		name      string
		extracted string
		declared  string
		imported  bool
		wantNil   bool
		want      constants.CheckStatus
		contains  string
	}{
		{
			name:     "imported without country fails",
			imported: true, declared: "Mexico",
			want: constants.CheckFail, contains: "imported",
		},
		{
			name:      "origin phrase contains declared country",
			extracted: "PRODUCT OF FRANCE", declared: "France", imported: true,
			want: constants.CheckPass, contains: "matches",
		},
		{
			name:      "digit misread downgrades",
			extracted: "MEX1CO", declared: "Mexico", imported: true,
			want: constants.CheckNeedsReview, contains: "noise",
		},
		{
			name:      "different country fails",
			extracted: "PRODUCT OF FRANCE", declared: "Italy", imported: true,
			want: constants.CheckFail, contains: "mismatch",
		},
		{name: "domestic with nothing shown", wantNil: true},
		{
			name:      "domestic showing usa",
			extracted: "PRODUCT OF USA",
			want:      constants.CheckPass, contains: "shown",
		},
		{
			name:      "domestic showing foreign origin",
			extracted: "PRODUCT OF FRANCE",
			want:      constants.CheckNeedsReview, contains: "imported",
		},
		{
			name:     "declared but absent on domestic",
			declared: "USA",
			want:     constants.CheckNeedsReview, contains: "not found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lbl := &label.ExtractedLabel{CountryOfOrigin: field(tc.extracted)}
			app := &label.ApplicationData{CountryOfOrigin: tc.declared, Imported: tc.imported}

			got := e.checkCountry(lbl, app)

			if tc.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Status, got.Message)
			assert.Contains(t, got.Message, tc.contains)
		})
	}
}
