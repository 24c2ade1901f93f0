package matching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hirelens/talentmatch/internal/assessment"
	"github.com/hirelens/talentmatch/internal/store"
	"github.com/hirelens/talentmatch/internal/taxonomy"
)

// RunRequest describes one scoring run: which benchmark's candidate pool to
// score and which cohort defines the target profile.
type RunRequest struct {
	JobVacancyID string
	CohortIDs    []string
	MinRate      *float64 // optional override of the configured threshold
}

// RunResult is the complete output of one scoring run. Runs are independent
// of each other; nothing here is shared or persisted.
type RunResult struct {
	RunID          uuid.UUID         `json:"run_id"`
	JobVacancyID   string            `json:"job_vacancy_id"`
	Cohort         Cohort            `json:"cohort"`
	CandidateCount int               `json:"candidate_count"`
	BaselineCount  int               `json:"baseline_count"`
	MinRate        float64           `json:"min_rate"`
	Results        []RankedCandidate `json:"results"`
	Duration       time.Duration     `json:"-"`
}

// Engine runs the full pipeline: normalize, resolve, baseline, match,
// aggregate, rank. It is stateless; a single Engine may serve concurrent
// runs.
type Engine struct {
	store   store.Store
	limits  assessment.Limits
	minRate float64
	logger  *slog.Logger
}

// NewEngine creates an Engine with the given store and defaults.
func NewEngine(s store.Store, limits assessment.Limits, minRate float64, logger *slog.Logger) *Engine {
	return &Engine{store: s, limits: limits, minRate: minRate, logger: logger}
}

// Run executes one scoring run against a consistent snapshot of the
// assessment data.
func (e *Engine) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	started := time.Now()
	runID := uuid.New()

	cohort, err := NewCohort(req.CohortIDs)
	if err != nil {
		return nil, fmt.Errorf("run %s: validate cohort: %w", runID, err)
	}

	minRate := e.minRate
	if req.MinRate != nil {
		minRate = *req.MinRate
	}

	table, err := e.store.GetTaxonomy(ctx)
	if err != nil {
		return nil, fmt.Errorf("run %s: load taxonomy: %w", runID, err)
	}

	candidates, err := e.store.GetCandidatePool(ctx, req.JobVacancyID)
	if err != nil {
		return nil, fmt.Errorf("run %s: load candidates: %w", runID, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("run %s: %w", runID, ErrEmptyCandidates)
	}

	assessments, err := e.store.GetAssessments(ctx, union(cohort, candidates))
	if err != nil {
		return nil, fmt.Errorf("run %s: load assessments: %w", runID, err)
	}

	normalizer := assessment.NewNormalizer(e.limits, table)
	traitsByEmployee := make(map[string][]assessment.NormalizedTrait, len(assessments))
	var allTraits []assessment.NormalizedTrait
	for _, raw := range assessments {
		resolved := assessment.Resolve(raw.EmployeeID, normalizer.Normalize(raw), table)
		traitsByEmployee[raw.EmployeeID] = resolved
		allTraits = append(allTraits, resolved...)
	}

	baselines := ComputeBaselines(cohort, allTraits)

	var records []MatchRecord
	for _, id := range candidates {
		records = append(records, MatchEmployee(id, traitsByEmployee[id], baselines)...)
	}

	scores := Aggregate(records, table)

	var survivors []string
	for _, s := range scores {
		if s.Rate >= minRate {
			survivors = append(survivors, s.EmployeeID)
		}
	}

	identities := make(map[string]Identity, len(survivors))
	if len(survivors) > 0 {
		employees, err := e.store.GetEmployees(ctx, survivors)
		if err != nil {
			return nil, fmt.Errorf("run %s: load identities: %w", runID, err)
		}
		for _, emp := range employees {
			identities[emp.EmployeeID] = Identity{
				EmployeeID: emp.EmployeeID,
				FullName:   emp.FullName,
				Education:  emp.Education,
				Area:       emp.Area,
			}
		}
	}

	ranked := Rank(scores, identities, strengthSummaries(traitsByEmployee), minRate)

	result := &RunResult{
		RunID:          runID,
		JobVacancyID:   req.JobVacancyID,
		Cohort:         cohort,
		CandidateCount: len(candidates),
		BaselineCount:  baselines.Len(),
		MinRate:        minRate,
		Results:        ranked,
		Duration:       time.Since(started),
	}

	e.logger.Info("match run completed",
		"run_id", runID,
		"job_vacancy_id", req.JobVacancyID,
		"cohort_size", len(cohort),
		"candidates", len(candidates),
		"baselines", baselines.Len(),
		"shortlisted", len(ranked),
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// strengthSummaries renders each employee's observed top themes in rank
// order for display.
func strengthSummaries(traitsByEmployee map[string][]assessment.NormalizedTrait) map[string]string {
	summaries := make(map[string]string, len(traitsByEmployee))
	for id, traits := range traitsByEmployee {
		var themes []string
		for _, tr := range traits {
			if tr.TV == taxonomy.FamilyStrengths {
				themes = append(themes, tr.Value)
			}
		}
		if len(themes) > 0 {
			summaries[id] = strings.Join(themes, ", ")
		}
	}
	return summaries
}

// union concatenates cohort and candidate ids, dropping duplicates while
// preserving order.
func union(cohort Cohort, candidates []string) []string {
	seen := make(map[string]struct{}, len(cohort)+len(candidates))
	ids := make([]string, 0, len(cohort)+len(candidates))
	for _, id := range cohort {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, id := range candidates {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
