package extract

import (
	"strings"

	"github.com/joseph-ayodele/label-verifier/internal/label"
)

// StopReason tags why a neighbor-absorption walk refused a block. The walks
// behind class/type, warning and bottler extraction share these predicates.
type StopReason string

const (
	StopNone             StopReason = ""
	StopServingFacts     StopReason = "serving_facts"
	StopAlcoholStatement StopReason = "alcohol_statement"
	StopNetContents      StopReason = "net_contents"
	StopBottlerHeader    StopReason = "bottler_header"
	StopLocation         StopReason = "location"
	StopCountryPhrase    StopReason = "country_phrase"
	StopContains         StopReason = "contains_statement"
	StopSectionMarker    StopReason = "section_marker"
	StopClassContent     StopReason = "class_content"
)

// classStop rejects blocks that belong to other label sections, so the
// class/type walk cannot swallow an alcohol statement or an address.
func classStop(b label.TextBlock) StopReason {
	text := b.Text
	switch {
	case containsServingFactsWord(text):
		return StopServingFacts
	case hasABVPattern(text):
		return StopAlcoholStatement
	case hasNetPattern(text):
		return StopNetContents
	case hasBottlerHeader(text):
		return StopBottlerHeader
	case hasLocationPattern(text):
		return StopLocation
	case containsWarningWord(text):
		return StopSectionMarker
	}
	return StopNone
}

// warningStop ends the spatial warning walk at anything that cannot be part
// of the mandated text.
func warningStop(b label.TextBlock) StopReason {
	text := b.Text
	upper := strings.ToUpper(text)
	switch {
	case containsServingFactsWord(text):
		return StopServingFacts
	case hasNetPattern(text):
		return StopNetContents
	case hasABVPattern(text):
		return StopAlcoholStatement
	case strings.HasPrefix(upper, "CONTAINS"):
		return StopContains
	case isSectionMarker(upper):
		return StopSectionMarker
	case containsClassKeyword(text) && !containsWarningWord(text):
		return StopClassContent
	}
	return StopNone
}

// bottlerStop ends the bottler walk before unrelated statements.
func bottlerStop(b label.TextBlock) StopReason {
	text := b.Text
	upper := strings.ToUpper(text)
	switch {
	case containsWarningWord(text):
		return StopSectionMarker
	case hasABVPattern(text):
		return StopAlcoholStatement
	case hasNetPattern(text):
		return StopNetContents
	case hasCountryPhrase(text):
		return StopCountryPhrase
	case strings.HasPrefix(upper, "CONTAINS"):
		return StopContains
	}
	return StopNone
}

// isSectionMarker recognizes explicit panel labels.
func isSectionMarker(upper string) bool {
	trimmed := strings.TrimSpace(upper)
	return trimmed == "FRONT LABEL" || trimmed == "BACK LABEL" ||
		strings.HasPrefix(trimmed, "SERVING FACTS")
}
