package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"45", 45, true},
		{"45.5%", 45.5, true},
		{"ALC. 40% BY VOL", 40, true},
		{"", 0, false},
		{"forty", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumber(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		if ok {
			assert.InDelta(t, tc.want, got, 0.0001, tc.in)
		}
	}
}

func TestParseNumberConfusable(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"40", 40, true},
		{"4O", 40, true},
		{"9O", 90, true},
		{"l00", 100, true},
		{"PROOF 9O", 90, true},
		{"8O.5", 80.5, true},
		{"OO", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumberConfusable(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		if ok {
			assert.InDelta(t, tc.want, got, 0.0001, tc.in)
		}
	}
}

func TestParseVolumeML(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"750 mL", 750, true},
		{"750ML", 750, true},
		{"750", 750, true},
		{"1 L", 1000, true},
		{"1 LITER", 1000, true},
		{"1.5 Litres", 1500, true},
		{"12 FL OZ", 354.882, true},
		{"12 FL. OZ.", 354.882, true},
		{"1 QT", 946.353, true},
		{"1 QUART", 946.353, true},
		{"2 PINTS", 946.352, true},
		{"1 GAL", 3785.41, true},
		{"", 0, false},
		{"full bottle", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseVolumeML(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		if ok {
			assert.InDelta(t, tc.want, got, 0.01, tc.in)
		}
	}
}
