package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
)

func block(text string, x1, y1, x2, y2 float64) label.TextBlock {
	return label.TextBlock{
		Text:       text,
		BBox:       label.NewBoundingBox(x1, y1, x2, y2),
		Confidence: 90,
	}
}

// bourbonLabel is the reference fixture used across field tests: a front
// label with brand, designation, alcohol statement, net contents, bottler
// address and the mandated warning.
func bourbonLabel() []label.TextBlock {
	return []label.TextBlock{
		block("OLD TOM DISTILLERY", 100, 40, 500, 120),
		block("Kentucky Straight", 150, 140, 450, 170),
		block("Bourbon Whiskey", 150, 180, 450, 210),
		block("Alc. 45% by Vol. (90 PROOF)", 180, 230, 420, 260),
		block("750 mL", 250, 280, 350, 305),
		block("Distilled and Bottled by", 120, 340, 480, 365),
		block("Old Tom Distillery Co., Louisville, KY", 100, 370, 500, 395),
		block("GOVERNMENT WARNING: (1) According to the Surgeon General, women should not drink alcoholic beverages during pregnancy because of the risk of birth defects.", 80, 420, 520, 470),
		block("(2) Consumption of alcoholic beverages impairs your ability to drive a car or operate machinery, and may cause health problems.", 80, 475, 520, 520),
	}
}

func TestExtractBourbonLabel(t *testing.T) {
	e := NewExtractor(nil, nil)
	out := e.Extract(bourbonLabel(), Options{})

	assert.Equal(t, "OLD TOM DISTILLERY", out.BrandName.Value)
	assert.Equal(t, "Kentucky Straight Bourbon Whiskey", out.ClassType.Value)
	assert.Equal(t, "45", out.AlcoholPct.Value)
	assert.Equal(t, "90", out.Proof.Value)
	assert.Equal(t, "750 mL", out.NetContents.Value)
	assert.Equal(t, "Distilled and Bottled by Old Tom Distillery Co., Louisville, KY", out.Bottler.Value)
	assert.Empty(t, out.CountryOfOrigin.Value)

	require.NotEmpty(t, out.GovernmentWarning.Value)
	assert.True(t, len(out.GovernmentWarning.Value) > 200)
	assert.Contains(t, out.GovernmentWarning.Value, "birth defects")
	assert.Contains(t, out.GovernmentWarning.Value, "operate machinery")

	require.NotNil(t, out.BrandName.BBox)
	assert.Equal(t, label.NewBoundingBox(100, 40, 500, 120), *out.BrandName.BBox)
}

func TestExtractBrand(t *testing.T) {
	e := NewExtractor(nil, nil)

	t.Run("retaining suffix keeps the suffix word", func(t *testing.T) {
		out := e.extractBrand([]label.TextBlock{block("OLD TOM DISTILLERY", 0, 0, 400, 80)}, nil)
		assert.Equal(t, "OLD TOM DISTILLERY", out.Value)
	})

	t.Run("corporate suffix is dropped", func(t *testing.T) {
		out := e.extractBrand([]label.TextBlock{block("ACME BRANDS INC", 0, 0, 400, 80)}, nil)
		assert.Equal(t, "ACME BRANDS", out.Value)
	})

	t.Run("lone corporate suffix reaches into the prior block", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("CUTWATER", 0, 0, 400, 80),
			block("COMPANY", 0, 90, 400, 130),
		}
		out := e.extractBrand(blocks, nil)
		assert.Equal(t, "CUTWATER", out.Value)
	})

	t.Run("application brand picks between candidates", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("NORTH PEAK DISTILLERY", 0, 0, 400, 60),
			block("RIVERSIDE CELLARS", 0, 80, 400, 130),
		}
		app := &label.ApplicationData{BrandName: "Riverside Cellars"}
		out := e.extractBrand(blocks, app)
		assert.Equal(t, "RIVERSIDE CELLARS", out.Value)
	})

	t.Run("prominence fallback picks the tallest upper block", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("STELLAR", 100, 50, 500, 150),
			block("Premium Quality", 150, 200, 450, 240),
			block("750 mL", 250, 300, 350, 330),
			block("Enjoy responsibly near you", 50, 900, 400, 950),
		}
		out := e.extractBrand(blocks, nil)
		assert.Equal(t, "STELLAR", out.Value)
	})

	t.Run("no usable block yields empty", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("750 mL", 250, 300, 350, 330),
			block("12% ALC/VOL", 250, 340, 350, 370),
		}
		out := e.extractBrand(blocks, nil)
		assert.Empty(t, out.Value)
	})
}

func TestExtractClassType(t *testing.T) {
	e := NewExtractor(nil, nil)

	t.Run("absorbs qualifier line above the anchor", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("OLD TOM DISTILLERY", 100, 40, 500, 120),
			block("Kentucky Straight", 150, 200, 450, 230),
			block("Bourbon Whiskey", 150, 240, 450, 270),
			block("Alc. 45% by Vol.", 180, 300, 420, 330),
		}
		out := e.extractClassType(blocks)
		assert.Equal(t, "Kentucky Straight Bourbon Whiskey", out.Value)
	})

	t.Run("short weak keyword block is not an anchor", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("SINGLE MALT", 150, 200, 450, 230),
		}
		out := e.extractClassType(blocks)
		assert.Empty(t, out.Value)
	})

	t.Run("strong keyword anchors alone", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("STRAIGHT BOURBON", 150, 200, 450, 230),
		}
		out := e.extractClassType(blocks)
		assert.Equal(t, "STRAIGHT BOURBON", out.Value)
	})

	t.Run("does not absorb across a large vertical gap", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("London Dry", 150, 40, 450, 70),
			block("GIN", 150, 400, 450, 430),
		}
		out := e.extractClassType(blocks)
		assert.Equal(t, "GIN", out.Value)
	})

	t.Run("stops at an alcohol statement", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("India Pale Ale", 150, 200, 450, 230),
			block("6.5% ALC/VOL", 150, 240, 450, 270),
		}
		out := e.extractClassType(blocks)
		assert.Equal(t, "India Pale Ale", out.Value)
	})
}

func TestExtractABV(t *testing.T) {
	e := NewExtractor(nil, nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"alc prefix form", "Alc. 45% by Vol.", "45"},
		{"trailing alc form", "40% ALC/VOL", "40"},
		{"by volume form", "13.5% BY VOLUME", "13.5"},
		{"spelled out", "ALCOHOL 21.5% BY VOLUME", "21.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.extractABV([]label.TextBlock{block(tt.text, 0, 0, 300, 40)})
			assert.Equal(t, tt.want, out.Value)
		})
	}

	t.Run("prefers the qualified plausible statement", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("2% VOL", 0, 0, 100, 30),
			block("Alc. 45% by Vol.", 0, 40, 300, 70),
		}
		out := e.extractABV(blocks)
		assert.Equal(t, "45", out.Value)
	})

	t.Run("bare percentage fallback within plausible range", func(t *testing.T) {
		out := e.extractABV([]label.TextBlock{block("13.5%", 0, 0, 100, 30)})
		assert.Equal(t, "13.5", out.Value)
	})

	t.Run("implausible bare percentage is ignored", func(t *testing.T) {
		out := e.extractABV([]label.TextBlock{block("95%", 0, 0, 100, 30)})
		assert.Empty(t, out.Value)
	})
}

func TestExtractProof(t *testing.T) {
	e := NewExtractor(nil, nil)

	out := e.extractProof([]label.TextBlock{block("Alc. 45% by Vol. (90 PROOF)", 0, 0, 300, 40)})
	assert.Equal(t, "90", out.Value)

	out = e.extractProof([]label.TextBlock{block("80 Proof", 0, 0, 300, 40)})
	assert.Equal(t, "80", out.Value)

	out = e.extractProof([]label.TextBlock{block("no alcohol statement here", 0, 0, 300, 40)})
	assert.Empty(t, out.Value)
}

func TestExtractNetContents(t *testing.T) {
	e := NewExtractor(nil, nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"milliliters", "750 mL", "750 mL"},
		{"liter", "1 LITER", "1 L"},
		{"fluid ounces", "12 FL. OZ.", "12 fl oz"},
		{"quart", "1 QT", "1 qt"},
		{"compound pint", "1 PINT 8 FL OZ", "24 fl oz"},
		{"no contents", "OLD TOM DISTILLERY", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.extractNetContents([]label.TextBlock{block(tt.text, 0, 0, 300, 40)})
			assert.Equal(t, tt.want, out.Value)
		})
	}
}

func TestExtractBottler(t *testing.T) {
	e := NewExtractor(nil, nil)

	t.Run("header anchor absorbs the address and stops at the warning", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("Distilled and Bottled by", 120, 340, 480, 370),
			block("Old Tom Distillery Co.,", 100, 380, 500, 410),
			block("Louisville, KY", 100, 420, 500, 450),
			block("GOVERNMENT WARNING: (1) According to the Surgeon General,", 80, 480, 520, 520),
		}
		out := e.extractBottler(blocks, constants.DistilledSpirits)
		assert.Equal(t, "Distilled and Bottled by Old Tom Distillery Co., Louisville, KY", out.Value)
	})

	t.Run("name city state fallback without a header", func(t *testing.T) {
		blocks := []label.TextBlock{
			block("Riverside Winery,", 100, 340, 300, 370),
			block("Napa, CA", 100, 380, 250, 410),
		}
		out := e.extractBottler(blocks, constants.Wine)
		assert.Equal(t, "Riverside Winery, Napa, CA", out.Value)
	})

	t.Run("plant marker for spirits", func(t *testing.T) {
		blocks := []label.TextBlock{block("DSP-KY-417", 100, 340, 250, 370)}
		out := e.extractBottler(blocks, constants.DistilledSpirits)
		assert.Equal(t, "DSP-KY-417", out.Value)

		out = e.extractBottler(blocks, constants.Wine)
		assert.Empty(t, out.Value)
	})
}

func TestExtractCountry(t *testing.T) {
	e := NewExtractor(nil, nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"product of", "PRODUCT OF FRANCE", "FRANCE"},
		{"phrase with trailing text", "PRODUCT OF FRANCE ESTATE BOTTLED", "FRANCE"},
		{"made in", "MADE IN MEXICO", "MEXICO"},
		{"bare country token", "SCOTLAND", "SCOTLAND"},
		{"class designation is not an origin", "INDIA PALE ALE", ""},
		{"no origin", "OLD TOM DISTILLERY", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.extractCountry([]label.TextBlock{block(tt.text, 0, 0, 300, 40)})
			assert.Equal(t, tt.want, out.Value)
		})
	}
}

func TestExtractNeverFails(t *testing.T) {
	e := NewExtractor(nil, nil)

	out := e.Extract(nil, Options{})
	assert.Empty(t, out.BrandName.Value)
	assert.Empty(t, out.GovernmentWarning.Value)
	assert.Empty(t, out.FullText())

	out = e.Extract([]label.TextBlock{block("~~ ##", 0, 0, 10, 10)}, Options{})
	assert.Empty(t, out.BrandName.Value)
}

func TestWalkStops(t *testing.T) {
	tests := []struct {
		name string
		stop func(label.TextBlock) StopReason
		text string
		want StopReason
	}{
		{"class stops at alcohol", classStop, "Alc. 45% by Vol.", StopAlcoholStatement},
		{"class stops at net contents", classStop, "750 mL", StopNetContents},
		{"class stops at bottler header", classStop, "Bottled by Old Tom", StopBottlerHeader},
		{"class stops at city state", classStop, "Louisville, KY", StopLocation},
		{"class passes plain text", classStop, "Kentucky Straight", StopNone},
		{"warning stops at serving facts", warningStop, "Serving Facts", StopServingFacts},
		{"warning stops at contains statement", warningStop, "CONTAINS SULFITES", StopContains},
		{"warning stops at class content", warningStop, "Bourbon Whiskey", StopClassContent},
		{"warning passes warning text", warningStop, "impairs your ability to drive", StopNone},
		{"bottler stops at country phrase", bottlerStop, "PRODUCT OF FRANCE", StopCountryPhrase},
		{"bottler passes an address", bottlerStop, "Louisville, KY", StopNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stop(block(tt.text, 0, 0, 100, 30)))
		})
	}
}
