package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
)

func TestCheckBrand(t *testing.T) {
	e := NewEngine(nil, nil)

	cases := []struct {
		name      string
		extracted string
		declared  string
		blocks    []string
		want      constants.CheckStatus
		contains  string
	}{
		{
			name:      "exact after normalization",
			extracted: "OLD TOM DISTILLERY",
			declared:  "Old Tom Distillery",
			want:      constants.CheckPass,
		},
		{
			name:      "digit swapped reading still matches",
			extracted: "0LD T0M DISTILLERY",
			declared:  "Old Tom Distillery",
			want:      constants.CheckPass,
			contains:  "ocr_canonical",
		},
		{
			name:      "label shows fewer words",
			extracted: "OLD TOM",
			declared:  "Old Tom Distillery",
			want:      constants.CheckPass,
			contains:  "reverse_containment",
		},
		{
			name:      "close fuzzy lands in review band",
			extracted: "GLENMORE RESERVE",
			declared:  "Glenmoor Reserva",
			want:      constants.CheckNeedsReview,
			contains:  "similarity",
		},
		{
			name:      "declared value elsewhere on label",
			extracted: "MERLOT",
			declared:  "American Red Wine",
			blocks:    []string{"MERLOT", "AMERICAN RED WINE"},
			want:      constants.CheckNeedsReview,
			contains:  "found elsewhere",
		},
		{
			name:      "genuine mismatch",
			extracted: "MERLOT",
			declared:  "American Red Wine",
			want:      constants.CheckFail,
			contains:  "mismatch",
		},
		{
			name:      "extraction missed but tokens present",
			extracted: "",
			declared:  "Old Tom Distillery",
			blocks:    []string{"BOTTLED BY OLD TOM DISTILLERY CO"},
			want:      constants.CheckNeedsReview,
			contains:  "could not be isolated",
		},
		{
			name:      "not on label at all",
			extracted: "",
			declared:  "Old Tom Distillery",
			want:      constants.CheckFail,
			contains:  "not found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lbl := &label.ExtractedLabel{BrandName: field(tc.extracted)}
			for i, text := range tc.blocks {
				lbl.Blocks = append(lbl.Blocks, block(text, float64(40+60*i)))
			}
			app := &label.ApplicationData{BrandName: tc.declared, BeverageType: constants.DistilledSpirits}

			got := e.checkBrand(lbl, app)

			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Status, got.Message)
			if tc.contains != "" {
				assert.Contains(t, got.Message, tc.contains)
			}
		})
	}
}

func TestCheckBrandNothingDeclared(t *testing.T) {
	e := NewEngine(nil, nil)
	lbl := &label.ExtractedLabel{BrandName: field("OLD TOM DISTILLERY")}

	assert.Nil(t, e.checkBrand(lbl, &label.ApplicationData{}))
}

func TestCheckClassTypeCarriesBox(t *testing.T) {
	e := NewEngine(nil, nil)
	lbl := &label.ExtractedLabel{ClassType: field("KENTUCKY STRAIGHT BOURBON WHISKEY")}
	app := &label.ApplicationData{ClassType: "Kentucky Straight Bourbon Whiskey"}

	got := e.checkClassType(lbl, app)

	require.NotNil(t, got)
	assert.Equal(t, constants.CheckPass, got.Status)
	assert.Equal(t, RuleClassType, got.RuleID)
	assert.Equal(t, constants.Identity, got.Category)
	require.NotNil(t, got.BBoxRef)
	assert.Equal(t, *lbl.ClassType.BBox, *got.BBoxRef)
	assert.Equal(t, "KENTUCKY STRAIGHT BOURBON WHISKEY", got.ExtractedValue)
	assert.Equal(t, "Kentucky Straight Bourbon Whiskey", got.AppValue)
}
