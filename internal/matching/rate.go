package matching

import (
	"strconv"
	"strings"

	"github.com/hirelens/talentmatch/internal/assessment"
	"github.com/hirelens/talentmatch/internal/taxonomy"
)

// MatchRecord is one candidate-to-baseline comparison at the test variable
// level. Rate is always within [0,100].
type MatchRecord struct {
	EmployeeID     string  `json:"employee_id"`
	TV             string  `json:"tv"`
	SubTV          string  `json:"sub_tv"`
	TGV            string  `json:"tgv"`
	Position       int     `json:"position,omitempty"`
	BaselineValue  string  `json:"baseline_value"`
	CandidateValue string  `json:"candidate_value"`
	Rate           float64 `json:"tv_match_rate"`
}

// MatchEmployee compares one employee's resolved traits against the cohort
// baselines. Traits with no defined baseline, and numeric traits whose
// baseline is zero, produce no record.
func MatchEmployee(employeeID string, traits []assessment.NormalizedTrait, baselines *BaselineSet) []MatchRecord {
	var records []MatchRecord
	var themeTraits []assessment.NormalizedTrait

	for _, tr := range traits {
		if tr.TV == taxonomy.FamilyStrengths {
			themeTraits = append(themeTraits, tr)
			continue
		}
		if tr.Numeric {
			if rec, ok := numericRecord(employeeID, tr, baselines); ok {
				records = append(records, rec)
			}
			continue
		}
		if rec, ok := categoricalRecord(employeeID, tr, baselines); ok {
			records = append(records, rec)
		}
	}

	records = append(records, themeRecords(employeeID, themeTraits, baselines)...)
	return records
}

func numericRecord(employeeID string, tr assessment.NormalizedTrait, baselines *BaselineSet) (MatchRecord, bool) {
	b, ok := baselines.Numeric(tr.TV, tr.SubTV)
	if !ok || b.Score == 0 {
		// A zero baseline makes the ratio undefined; the TV is excluded
		// rather than reported as infinite.
		return MatchRecord{}, false
	}

	var rate float64
	if b.Inverse {
		rate = clampRate(((2*b.Score - tr.Score) / b.Score) * 100)
	} else {
		rate = clampRate((tr.Score / b.Score) * 100)
	}

	return MatchRecord{
		EmployeeID:     employeeID,
		TV:             tr.TV,
		SubTV:          tr.SubTV,
		TGV:            tr.TGV,
		BaselineValue:  formatScore(b.Score),
		CandidateValue: formatScore(tr.Score),
		Rate:           rate,
	}, true
}

func categoricalRecord(employeeID string, tr assessment.NormalizedTrait, baselines *BaselineSet) (MatchRecord, bool) {
	b, ok := baselines.Categorical(tr.TV, tr.Position)
	if !ok {
		return MatchRecord{}, false
	}

	rate := 0.0
	if tr.Value == b.Value {
		rate = 100.0
	}

	return MatchRecord{
		EmployeeID:     employeeID,
		TV:             tr.TV,
		SubTV:          tr.SubTV,
		TGV:            tr.TGV,
		Position:       tr.Position,
		BaselineValue:  b.Value,
		CandidateValue: tr.Value,
		Rate:           rate,
	}, true
}

// themeRecords evaluates each distinct baseline theme against the
// candidate's whole top-5 theme set; rank position inside the set does not
// matter, only membership.
func themeRecords(employeeID string, traits []assessment.NormalizedTrait, baselines *BaselineSet) []MatchRecord {
	if len(traits) == 0 {
		return nil
	}

	owned := make(map[string]struct{}, len(traits))
	names := make([]string, 0, len(traits))
	for _, tr := range traits {
		if _, ok := owned[tr.Value]; ok {
			continue
		}
		owned[tr.Value] = struct{}{}
		names = append(names, tr.Value)
	}
	summary := strings.Join(names, ", ")

	var records []MatchRecord
	evaluated := make(map[string]struct{})
	for _, b := range baselines.Themes() {
		if _, done := evaluated[b.Value]; done {
			continue
		}
		evaluated[b.Value] = struct{}{}

		rate := 0.0
		if _, has := owned[b.Value]; has {
			rate = 100.0
		}
		records = append(records, MatchRecord{
			EmployeeID:     employeeID,
			TV:             b.TV,
			SubTV:          b.SubTV,
			TGV:            b.TGV,
			Position:       b.Position,
			BaselineValue:  b.Value,
			CandidateValue: summary,
			Rate:           rate,
		})
	}
	return records
}

func clampRate(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
