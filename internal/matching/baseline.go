package matching

import (
	"sort"

	"github.com/hirelens/talentmatch/internal/assessment"
	"github.com/hirelens/talentmatch/internal/taxonomy"
)

// Baseline is the cohort's reference value for one test variable. Numeric
// baselines carry the cohort median; categorical baselines carry the modal
// value at one position. Baselines live for a single scoring run.
type Baseline struct {
	TV       string
	SubTV    string
	TGV      string
	Position int
	Numeric  bool
	Score    float64
	Value    string
	Inverse  bool
}

type baselineKey struct {
	tv    string
	subTV string
	pos   int
}

// BaselineSet holds every baseline computed for one cohort.
type BaselineSet struct {
	entries map[baselineKey]Baseline
}

// Numeric returns the baseline for a numeric test variable.
func (s *BaselineSet) Numeric(tv, subTV string) (Baseline, bool) {
	b, ok := s.entries[baselineKey{tv: tv, subTV: subTV}]
	return b, ok
}

// Categorical returns the positional baseline for a multi-character code.
func (s *BaselineSet) Categorical(tv string, position int) (Baseline, bool) {
	b, ok := s.entries[baselineKey{tv: tv, pos: position}]
	return b, ok
}

// Themes returns the strengths baselines ordered by rank position.
func (s *BaselineSet) Themes() []Baseline {
	var themes []Baseline
	for _, b := range s.entries {
		if b.TV == taxonomy.FamilyStrengths {
			themes = append(themes, b)
		}
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].Position < themes[j].Position })
	return themes
}

// Len returns the number of baselines in the set.
func (s *BaselineSet) Len() int {
	return len(s.entries)
}

// ComputeBaselines derives the statistical reference profile of a cohort
// from resolved traits. Traits of employees outside the cohort are ignored.
// Test variables with no cohort value form no baseline and contribute
// nothing to matching later.
func ComputeBaselines(cohort Cohort, traits []assessment.NormalizedTrait) *BaselineSet {
	set := &BaselineSet{entries: make(map[baselineKey]Baseline)}

	type numGroup struct {
		tgv     string
		inverse bool
		values  []float64
	}
	type catGroup struct {
		values []assessment.NormalizedTrait
	}

	numeric := make(map[baselineKey]*numGroup)
	categorical := make(map[baselineKey]*catGroup)

	for _, tr := range traits {
		if !cohort.Contains(tr.EmployeeID) {
			continue
		}
		if tr.Numeric {
			k := baselineKey{tv: tr.TV, subTV: tr.SubTV}
			g := numeric[k]
			if g == nil {
				g = &numGroup{tgv: tr.TGV, inverse: tr.Inverse}
				numeric[k] = g
			}
			g.values = append(g.values, tr.Score)
		} else {
			k := baselineKey{tv: tr.TV, pos: tr.Position}
			g := categorical[k]
			if g == nil {
				g = &catGroup{}
				categorical[k] = g
			}
			g.values = append(g.values, tr)
		}
	}

	for k, g := range numeric {
		set.entries[k] = Baseline{
			TV:      k.tv,
			SubTV:   k.subTV,
			TGV:     g.tgv,
			Numeric: true,
			Score:   median(g.values),
			Inverse: g.inverse,
		}
	}

	for k, g := range categorical {
		modal := mode(g.values)
		set.entries[k] = Baseline{
			TV:       k.tv,
			SubTV:    modal.SubTV,
			TGV:      modal.TGV,
			Position: k.pos,
			Value:    modal.Value,
		}
	}

	return set
}

// median computes the 50th percentile with linear interpolation, matching
// PERCENTILE_CONT(0.5).
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mode picks the most frequent trait value. Ties break on the
// lexicographically smallest value so output stays reproducible.
func mode(traits []assessment.NormalizedTrait) assessment.NormalizedTrait {
	counts := make(map[string]int, len(traits))
	byValue := make(map[string]assessment.NormalizedTrait, len(traits))
	for _, tr := range traits {
		counts[tr.Value]++
		if _, ok := byValue[tr.Value]; !ok {
			byValue[tr.Value] = tr
		}
	}

	var best string
	bestCount := -1
	for value, count := range counts {
		if count > bestCount || (count == bestCount && value < best) {
			best = value
			bestCount = count
		}
	}
	return byValue[best]
}
