package taxonomy

import (
	"sort"
	"strings"
)

// Assessment family names as they appear in the tv column of the mapping table.
const (
	FamilyMBTI      = "MBTI"
	FamilyDISC      = "DISC"
	FamilyIQ        = "IQ"
	FamilyGTQ       = "GTQ"
	FamilyTIKI      = "TIKI"
	FamilyPauli     = "Pauli"
	FamilyPAPI      = "PAPI Kostick"
	FamilyStrengths = "CliftonStrengths"
)

// Entry maps one raw scale code to its canonical test variable and trait group.
type Entry struct {
	SubTV string `json:"sub_tv"`
	TV    string `json:"tv"`
	TGV   string `json:"tgv"`
	Note  string `json:"note,omitempty"`
}

// Inverse reports whether the entry's note flags a reversed scoring direction.
func (e Entry) Inverse() bool {
	return strings.EqualFold(strings.TrimSpace(e.Note), "inverse scale")
}

type entryKey struct {
	tv    string
	subTV string
}

// Table is the read-only canonical mapping loaded from the map_tgv table.
// Codes absent from the table are not errors; callers skip them.
type Table struct {
	entries  []Entry
	byCode   map[entryKey]Entry
	byFamily map[string][]Entry
}

// NewTable builds lookup indexes over the given entries. Later duplicates of
// the same (tv, sub_tv) pair are ignored so lookups stay deterministic.
func NewTable(entries []Entry) *Table {
	t := &Table{
		entries:  entries,
		byCode:   make(map[entryKey]Entry, len(entries)),
		byFamily: make(map[string][]Entry),
	}
	for _, e := range entries {
		k := entryKey{tv: e.TV, subTV: e.SubTV}
		if _, ok := t.byCode[k]; !ok {
			t.byCode[k] = e
		}
		t.byFamily[e.TV] = append(t.byFamily[e.TV], e)
	}
	return t
}

// Lookup finds the entry for a raw code within one assessment family.
func (t *Table) Lookup(family, code string) (Entry, bool) {
	e, ok := t.byCode[entryKey{tv: family, subTV: code}]
	return e, ok
}

// Family returns the single entry for a family that has exactly one mapping
// row, such as the standalone numeric tests. When the family has multiple
// rows the lexicographically smallest sub_tv wins.
func (t *Table) Family(family string) (Entry, bool) {
	entries := t.byFamily[family]
	if len(entries) == 0 {
		return Entry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.SubTV < best.SubTV {
			best = e
		}
	}
	return best, true
}

// HasTheme reports whether a strengths theme is known to the taxonomy.
func (t *Table) HasTheme(theme string) bool {
	_, ok := t.Lookup(FamilyStrengths, theme)
	return ok
}

// TVCountByTGV returns, per trait group, the number of distinct test
// variables the taxonomy defines under it.
func (t *Table) TVCountByTGV() map[string]int {
	seen := make(map[string]map[string]struct{})
	for _, e := range t.entries {
		if seen[e.TGV] == nil {
			seen[e.TGV] = make(map[string]struct{})
		}
		seen[e.TGV][e.TV] = struct{}{}
	}
	counts := make(map[string]int, len(seen))
	for tgv, tvs := range seen {
		counts[tgv] = len(tvs)
	}
	return counts
}

// TGVCount returns the number of distinct trait groups in the taxonomy.
func (t *Table) TGVCount() int {
	seen := make(map[string]struct{})
	for _, e := range t.entries {
		seen[e.TGV] = struct{}{}
	}
	return len(seen)
}

// TGVs returns the distinct trait group names in sorted order.
func (t *Table) TGVs() []string {
	seen := make(map[string]struct{})
	for _, e := range t.entries {
		seen[e.TGV] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for tgv := range seen {
		names = append(names, tgv)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of mapping entries.
func (t *Table) Len() int {
	return len(t.entries)
}
