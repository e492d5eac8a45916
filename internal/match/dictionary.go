package match

import "strings"

// Dictionary answers whether a token is a recognized word. The warning
// wording check uses it to split unexpected tokens into plausible English
// words (wording deviations) and gibberish (recognition junk).
type Dictionary interface {
	Contains(word string) bool
}

// WordSet is a Dictionary over a fixed, case-insensitive word list.
type WordSet struct {
	words map[string]struct{}
}

func NewWordSet(words ...string) *WordSet {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &WordSet{words: set}
}

// Add extends the set; used to fold the canonical warning vocabulary in.
func (w *WordSet) Add(words ...string) {
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			w.words[word] = struct{}{}
		}
	}
}

func (w *WordSet) Contains(word string) bool {
	_, ok := w.words[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// EmptyDictionary recognizes nothing, so every unexpected token is treated
// as suspicious recognition junk.
type EmptyDictionary struct{}

func (EmptyDictionary) Contains(string) bool { return false }

// commonLabelWords are ordinary words that legitimately appear near or inside
// a health warning besides the mandated vocabulary.
var commonLabelWords = []string{
	"a", "an", "and", "are", "at", "be", "by", "for", "from", "has", "have",
	"in", "is", "it", "its", "may", "of", "on", "or", "that", "the", "this",
	"to", "with", "you", "your",
	"contains", "contents", "bottle", "bottled", "distilled", "brewed",
	"produced", "product", "imported", "estate", "reserve", "quality",
}

// DefaultDictionary is the built-in word set: common label words; callers add
// the canonical warning vocabulary from configuration.
func DefaultDictionary() *WordSet {
	return NewWordSet(commonLabelWords...)
}
