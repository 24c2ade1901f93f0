package assessment

import (
	"strings"

	"github.com/hirelens/talentmatch/internal/taxonomy"
)

// Limits bounds the plausible value ranges applied during normalization.
type Limits struct {
	IQFloor   float64
	IQCeiling float64
	PAPIMin   float64
	PAPIMax   float64
	TopThemes int
}

// DefaultLimits returns the ranges the source assessments were collected under.
func DefaultLimits() Limits {
	return Limits{
		IQFloor:   80,
		IQCeiling: 140,
		PAPIMin:   1,
		PAPIMax:   9,
		TopThemes: 5,
	}
}

// Normalizer turns raw assessment records into pre-taxonomy trait values.
// Malformed fields are dropped silently; a record is never rejected as a
// whole because one of its fields is unusable.
type Normalizer struct {
	limits Limits
	themes ThemeSet
}

// ThemeSet answers whether a strengths theme is known to the taxonomy.
// Theme re-ranking happens after unknown themes are removed, so the top-N
// cut is taken over taxonomy-valid themes only.
type ThemeSet interface {
	HasTheme(theme string) bool
}

// NewNormalizer creates a Normalizer with the given limits and theme set.
func NewNormalizer(limits Limits, themes ThemeSet) *Normalizer {
	return &Normalizer{limits: limits, themes: themes}
}

// Normalize emits zero or more pre-taxonomy traits for one employee record.
func (n *Normalizer) Normalize(raw RawAssessment) []RawTrait {
	var traits []RawTrait
	traits = append(traits, n.mbtiTraits(raw.MBTI)...)
	traits = append(traits, n.discTraits(raw.DISC)...)
	traits = append(traits, n.numericTraits(raw)...)
	traits = append(traits, n.papiTraits(raw.PAPI)...)
	traits = append(traits, n.themeTraits(raw.Themes)...)
	return traits
}

// mbtiLabels maps the accepted first letter per position to its canonical label.
var mbtiLabels = [4]map[byte]string{
	{'E': "Extraversion", 'I': "Introversion"},
	{'S': "Sensing", 'N': "Intuition"},
	{'T': "Thinking", 'F': "Feeling"},
	{'J': "Judging", 'P': "Perceiving"},
}

func (n *Normalizer) mbtiTraits(code string) []RawTrait {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 4 {
		return nil
	}
	var traits []RawTrait
	for pos := 0; pos < 4; pos++ {
		label, ok := mbtiLabels[pos][code[pos]]
		if !ok {
			continue // unrecognized letter drops this position only
		}
		traits = append(traits, RawTrait{
			Family:   taxonomy.FamilyMBTI,
			Code:     label,
			Value:    label,
			Position: pos + 1,
		})
	}
	return traits
}

var discLabels = map[byte]string{
	'D': "Dominance",
	'I': "Influence",
	'S': "Steadiness",
	'C': "Compliance",
}

func (n *Normalizer) discTraits(code string) []RawTrait {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return nil
	}
	var traits []RawTrait
	for pos := 0; pos < 2; pos++ {
		label, ok := discLabels[code[pos]]
		if !ok {
			continue
		}
		traits = append(traits, RawTrait{
			Family:   taxonomy.FamilyDISC,
			Code:     label,
			Value:    label,
			Position: pos + 1,
		})
	}
	return traits
}

func (n *Normalizer) numericTraits(raw RawAssessment) []RawTrait {
	var traits []RawTrait
	if raw.IQ != nil && *raw.IQ >= n.limits.IQFloor && *raw.IQ <= n.limits.IQCeiling {
		traits = append(traits, RawTrait{Family: taxonomy.FamilyIQ, Numeric: true, Score: *raw.IQ})
	}
	if raw.GTQ != nil {
		traits = append(traits, RawTrait{Family: taxonomy.FamilyGTQ, Numeric: true, Score: *raw.GTQ})
	}
	if raw.TIKI != nil {
		traits = append(traits, RawTrait{Family: taxonomy.FamilyTIKI, Numeric: true, Score: *raw.TIKI})
	}
	if raw.Pauli != nil {
		traits = append(traits, RawTrait{Family: taxonomy.FamilyPauli, Numeric: true, Score: *raw.Pauli})
	}
	return traits
}

func (n *Normalizer) papiTraits(scores []PAPIScore) []RawTrait {
	var traits []RawTrait
	for _, p := range scores {
		if p.Score < n.limits.PAPIMin || p.Score > n.limits.PAPIMax {
			continue // out-of-range pairs are dropped individually
		}
		traits = append(traits, RawTrait{
			Family:  taxonomy.FamilyPAPI,
			Code:    p.ScaleCode,
			Numeric: true,
			Score:   p.Score,
		})
	}
	return traits
}

func (n *Normalizer) themeTraits(themes []string) []RawTrait {
	var traits []RawTrait
	rank := 0
	for _, theme := range themes {
		if !n.themes.HasTheme(theme) {
			continue // excluded before re-ranking
		}
		rank++
		if rank > n.limits.TopThemes {
			break
		}
		traits = append(traits, RawTrait{
			Family:   taxonomy.FamilyStrengths,
			Code:     theme,
			Value:    theme,
			Position: rank,
		})
	}
	return traits
}
