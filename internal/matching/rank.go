package matching

import (
	"math"
	"sort"
)

// Identity carries the display fields attached to a ranked candidate.
type Identity struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"fullname"`
	Education  string `json:"education,omitempty"`
	Area       string `json:"area,omitempty"`
}

// RankedCandidate is one row of the final shortlist.
type RankedCandidate struct {
	EmployeeID      string  `json:"employee_id"`
	FullName        string  `json:"fullname"`
	Education       string  `json:"education,omitempty"`
	Area            string  `json:"area,omitempty"`
	MatchRate       float64 `json:"match_rate"`
	StrengthSummary string  `json:"strength_summary,omitempty"`
	TopTGV          string  `json:"top_tgv,omitempty"`
	FilledTGVCount  int     `json:"filled_tgv_count"`
	TotalTGVCount   int     `json:"total_tgv_count"`
}

// Rank filters final scores by the minimum match rate, attaches identity
// and strengths display fields, picks each survivor's best trait group, and
// orders the shortlist by match rate descending. Equal rates order by
// employee id so reruns produce identical output.
func Rank(scores []FinalScore, identities map[string]Identity, strengths map[string]string, minRate float64) []RankedCandidate {
	var ranked []RankedCandidate
	for _, s := range scores {
		if s.Rate < minRate {
			continue
		}
		identity := identities[s.EmployeeID]
		ranked = append(ranked, RankedCandidate{
			EmployeeID:      s.EmployeeID,
			FullName:        identity.FullName,
			Education:       identity.Education,
			Area:            identity.Area,
			MatchRate:       round2(s.Rate),
			StrengthSummary: strengths[s.EmployeeID],
			TopTGV:          topTGV(s.TGVScores),
			FilledTGVCount:  s.FilledTGVCount,
			TotalTGVCount:   s.TotalTGVCount,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].MatchRate != ranked[j].MatchRate {
			return ranked[i].MatchRate > ranked[j].MatchRate
		}
		return ranked[i].EmployeeID < ranked[j].EmployeeID
	})
	return ranked
}

// topTGV picks the trait group with the highest rate. The input is sorted
// by TGV name, so on ties the lexicographically smallest name wins.
func topTGV(scores []TGVScore) string {
	var best string
	bestRate := -1.0
	for _, s := range scores {
		if s.Rate > bestRate {
			best = s.TGV
			bestRate = s.Rate
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
