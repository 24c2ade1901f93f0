package assessment

import (
	"github.com/hirelens/talentmatch/internal/taxonomy"
)

// Resolve joins pre-taxonomy traits against the mapping table, attaching the
// canonical tv/tgv and the scoring direction. Traits whose code has no
// mapping row are excluded; absence is routine, not an error.
func Resolve(employeeID string, traits []RawTrait, table *taxonomy.Table) []NormalizedTrait {
	var resolved []NormalizedTrait
	for _, tr := range traits {
		entry, ok := lookup(table, tr)
		if !ok {
			continue
		}
		resolved = append(resolved, NormalizedTrait{
			EmployeeID: employeeID,
			TV:         entry.TV,
			SubTV:      entry.SubTV,
			TGV:        entry.TGV,
			Numeric:    tr.Numeric,
			Score:      tr.Score,
			Value:      tr.Value,
			Position:   tr.Position,
			Inverse:    entry.Inverse(),
		})
	}
	return resolved
}

func lookup(table *taxonomy.Table, tr RawTrait) (taxonomy.Entry, bool) {
	if tr.Code != "" {
		return table.Lookup(tr.Family, tr.Code)
	}
	// Standalone numeric tests carry no sub-scale code; the family itself
	// identifies the mapping row.
	return table.Family(tr.Family)
}
