package matching

import (
	"sort"

	"github.com/hirelens/talentmatch/internal/taxonomy"
)

// TGVScore is the mid-level aggregate for one employee and trait group.
// FilledTVCount counts the distinct test variables the employee actually
// has under the group; TotalTVCount counts the distinct test variables the
// taxonomy defines there. The counts report coverage and do not weight the
// average.
type TGVScore struct {
	EmployeeID    string  `json:"employee_id"`
	TGV           string  `json:"tgv"`
	Rate          float64 `json:"tgv_match_rate"`
	FilledTVCount int     `json:"filled_tv_count"`
	TotalTVCount  int     `json:"total_tv_count"`
}

// FinalScore is the top-level aggregate for one employee.
type FinalScore struct {
	EmployeeID     string     `json:"employee_id"`
	Rate           float64    `json:"final_match_rate"`
	FilledTGVCount int        `json:"filled_tgv_count"`
	TotalTGVCount  int        `json:"total_tgv_count"`
	TGVScores      []TGVScore `json:"tgv_scores"`
}

// Aggregate rolls test-variable match records up to trait-group rates and
// then to one final rate per employee. Both levels are unweighted
// arithmetic means over the data the employee actually has; sparse
// employees are not penalized, only their coverage counts reflect the gaps.
func Aggregate(records []MatchRecord, table *taxonomy.Table) []FinalScore {
	tvTotals := table.TVCountByTGV()
	tgvTotal := table.TGVCount()

	type tgvAcc struct {
		sum   float64
		count int
		tvs   map[string]struct{}
	}
	byEmployee := make(map[string]map[string]*tgvAcc)

	for _, rec := range records {
		groups := byEmployee[rec.EmployeeID]
		if groups == nil {
			groups = make(map[string]*tgvAcc)
			byEmployee[rec.EmployeeID] = groups
		}
		acc := groups[rec.TGV]
		if acc == nil {
			acc = &tgvAcc{tvs: make(map[string]struct{})}
			groups[rec.TGV] = acc
		}
		acc.sum += rec.Rate
		acc.count++
		acc.tvs[rec.TV] = struct{}{}
	}

	finals := make([]FinalScore, 0, len(byEmployee))
	for employeeID, groups := range byEmployee {
		var tgvScores []TGVScore
		var sum float64
		for tgv, acc := range groups {
			tgvScores = append(tgvScores, TGVScore{
				EmployeeID:    employeeID,
				TGV:           tgv,
				Rate:          acc.sum / float64(acc.count),
				FilledTVCount: len(acc.tvs),
				TotalTVCount:  tvTotals[tgv],
			})
		}
		sort.Slice(tgvScores, func(i, j int) bool { return tgvScores[i].TGV < tgvScores[j].TGV })
		for _, s := range tgvScores {
			sum += s.Rate
		}

		finals = append(finals, FinalScore{
			EmployeeID:     employeeID,
			Rate:           sum / float64(len(tgvScores)),
			FilledTGVCount: len(tgvScores),
			TotalTGVCount:  tgvTotal,
			TGVScores:      tgvScores,
		})
	}

	sort.Slice(finals, func(i, j int) bool { return finals[i].EmployeeID < finals[j].EmployeeID })
	return finals
}
