// Package batch runs the verification pipeline over a directory of label
// images paired with application records from an applications JSON document.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/internal/label"
)

// Entry pairs one label image, identified by filename stem, with the
// application record it is checked against.
type Entry struct {
	LabelID     string
	Application label.ApplicationData
}

// LoadApplications reads an applications document from disk.
func LoadApplications(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseApplications(data)
}

// ParseApplications decodes an applications document: a JSON object keyed by
// label id, each value one application record. Entries come back sorted by
// label id so runs are deterministic.
func ParseApplications(data []byte) ([]Entry, error) {
	var records map[string]label.ApplicationData
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse applications JSON: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for id, app := range records {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("applications JSON: blank label id")
		}
		app.BeverageType = beverageType(string(app.BeverageType))
		entries = append(entries, Entry{LabelID: id, Application: app})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].LabelID < entries[j].LabelID })
	return entries, nil
}

// beverageType resolves free-form input, falling back to substring matching
// for spellings like "Beer / Malt Beverage".
func beverageType(raw string) constants.BeverageType {
	bt, ok := constants.CanonicalizeBeverageType(raw)
	if ok {
		return bt
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "wine"):
		return constants.Wine
	case strings.Contains(lower, "beer"), strings.Contains(lower, "malt"):
		return constants.MaltBeverage
	}
	return bt
}

// EntryIndex resolves entries by label id, preferring exact matches over
// case-insensitive ones. Watch mode uses it to pair dropped files with
// records.
type EntryIndex struct {
	exact map[string]Entry
	lower map[string]Entry
}

func IndexEntries(entries []Entry) *EntryIndex {
	ix := &EntryIndex{
		exact: make(map[string]Entry, len(entries)),
		lower: make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		if _, ok := ix.exact[e.LabelID]; !ok {
			ix.exact[e.LabelID] = e
		}
		key := strings.ToLower(e.LabelID)
		if _, ok := ix.lower[key]; !ok {
			ix.lower[key] = e
		}
	}
	return ix
}

func (ix *EntryIndex) Find(labelID string) (Entry, bool) {
	id := strings.TrimSpace(labelID)
	if e, ok := ix.exact[id]; ok {
		return e, true
	}
	e, ok := ix.lower[strings.ToLower(id)]
	return e, ok
}
