package matching

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/hirelens/talentmatch/internal/assessment"
	"github.com/hirelens/talentmatch/internal/store"
	"github.com/hirelens/talentmatch/internal/taxonomy"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func float64Ptr(v float64) *float64 { return &v }

// stubStore serves fixed data; the engine never mutates it.
type stubStore struct {
	table       *taxonomy.Table
	assessments map[string]assessment.RawAssessment
	employees   map[string]store.Employee
	pool        []string
	poolErr     error
}

func (s *stubStore) GetTaxonomy(ctx context.Context) (*taxonomy.Table, error) {
	return s.table, nil
}

func (s *stubStore) GetAssessments(ctx context.Context, ids []string) ([]assessment.RawAssessment, error) {
	var out []assessment.RawAssessment
	for _, id := range ids {
		if raw, ok := s.assessments[id]; ok {
			out = append(out, raw)
		}
	}
	return out, nil
}

func (s *stubStore) GetEmployees(ctx context.Context, ids []string) ([]store.Employee, error) {
	var out []store.Employee
	for _, id := range ids {
		if e, ok := s.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubStore) GetCandidatePool(ctx context.Context, jobVacancyID string) ([]string, error) {
	return s.pool, s.poolErr
}

func (s *stubStore) GetTopPerformers(ctx context.Context, roleName string, limit int) ([]string, error) {
	return nil, nil
}

func (s *stubStore) CreateBenchmark(ctx context.Context, b *store.Benchmark) error { return nil }
func (s *stubStore) GetBenchmark(ctx context.Context, id string) (*store.Benchmark, error) {
	return nil, nil
}
func (s *stubStore) ListBenchmarks(ctx context.Context) ([]*store.Benchmark, error) { return nil, nil }
func (s *stubStore) UpdateBenchmarkSelection(ctx context.Context, id string, ids []string) error {
	return nil
}
func (s *stubStore) Close() error { return nil }

func engineTable() *taxonomy.Table {
	return taxonomy.NewTable([]taxonomy.Entry{
		{SubTV: "Extraversion", TV: taxonomy.FamilyMBTI, TGV: "Interpersonal"},
		{SubTV: "Introversion", TV: taxonomy.FamilyMBTI, TGV: "Interpersonal"},
		{SubTV: "Sensing", TV: taxonomy.FamilyMBTI, TGV: "Interpersonal"},
		{SubTV: "Intuition", TV: taxonomy.FamilyMBTI, TGV: "Interpersonal"},
		{SubTV: "Thinking", TV: taxonomy.FamilyMBTI, TGV: "Interpersonal"},
		{SubTV: "Feeling", TV: taxonomy.FamilyMBTI, TGV: "Interpersonal"},
		{SubTV: "Judging", TV: taxonomy.FamilyMBTI, TGV: "Interpersonal"},
		{SubTV: "Perceiving", TV: taxonomy.FamilyMBTI, TGV: "Interpersonal"},
		{SubTV: "IQ", TV: taxonomy.FamilyIQ, TGV: "Cognitive"},
		{SubTV: "Achiever", TV: taxonomy.FamilyStrengths, TGV: "Strengths"},
		{SubTV: "Learner", TV: taxonomy.FamilyStrengths, TGV: "Strengths"},
		{SubTV: "Focus", TV: taxonomy.FamilyStrengths, TGV: "Strengths"},
	})
}

func engineStore() *stubStore {
	return &stubStore{
		table: engineTable(),
		assessments: map[string]assessment.RawAssessment{
			// Benchmark cohort: 2 of 3 introverted, median IQ 110.
			"b1": {EmployeeID: "b1", MBTI: "INTJ", IQ: float64Ptr(100), Themes: []string{"Achiever", "Learner"}},
			"b2": {EmployeeID: "b2", MBTI: "INTJ", IQ: float64Ptr(110), Themes: []string{"Achiever", "Focus"}},
			"b3": {EmployeeID: "b3", MBTI: "ENTJ", IQ: float64Ptr(130), Themes: []string{"Achiever", "Learner"}},
			// Close fit: introverted, IQ 99, holds Achiever.
			"c1": {EmployeeID: "c1", MBTI: "INTJ", IQ: float64Ptr(99), Themes: []string{"Achiever", "Learner"}},
			// Poor fit: opposite code, low IQ, no overlapping themes.
			"c2": {EmployeeID: "c2", MBTI: "ESFP", IQ: float64Ptr(85), Themes: []string{"Focus"}},
		},
		employees: map[string]store.Employee{
			"c1": {EmployeeID: "c1", FullName: "Ira Glass", Education: "Master", Area: "Bandung"},
			"c2": {EmployeeID: "c2", FullName: "Sunny Day", Education: "Bachelor", Area: "Jakarta"},
		},
		pool: []string{"c1", "c2"},
	}
}

func newTestEngine(s store.Store) *Engine {
	return NewEngine(s, assessment.DefaultLimits(), 70, discardLogger())
}

func TestEngineRun(t *testing.T) {
	e := newTestEngine(engineStore())

	result, err := e.Run(context.Background(), RunRequest{
		JobVacancyID: "JV-001",
		CohortIDs:    []string{"b1", "b2", "b3"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.CandidateCount != 2 {
		t.Errorf("expected 2 candidates scored, got %d", result.CandidateCount)
	}
	if result.BaselineCount == 0 {
		t.Error("expected baselines formed")
	}

	// c1 aligns with the cohort on every axis; c2 misses the threshold.
	if len(result.Results) != 1 {
		t.Fatalf("expected 1 shortlisted candidate, got %d", len(result.Results))
	}
	top := result.Results[0]
	if top.EmployeeID != "c1" {
		t.Errorf("expected c1 shortlisted, got %s", top.EmployeeID)
	}
	if top.FullName != "Ira Glass" {
		t.Errorf("identity not attached: %+v", top)
	}
	if top.MatchRate < 70 || top.MatchRate > 100 {
		t.Errorf("match rate out of range: %v", top.MatchRate)
	}
	if top.StrengthSummary != "Achiever, Learner" {
		t.Errorf("expected strengths summary, got %q", top.StrengthSummary)
	}
	if top.TopTGV == "" {
		t.Error("expected top TGV set")
	}
}

func TestEngineRunDeterministic(t *testing.T) {
	e := newTestEngine(engineStore())
	req := RunRequest{JobVacancyID: "JV-001", CohortIDs: []string{"b1", "b2", "b3"}}

	first, err := e.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := e.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	// Identical inputs produce identical ordering and values; only the run
	// id and wall time differ.
	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Errorf("results differ between runs:\n%+v\n%+v", first.Results, second.Results)
	}
	if first.BaselineCount != second.BaselineCount {
		t.Errorf("baseline counts differ: %d vs %d", first.BaselineCount, second.BaselineCount)
	}
}

func TestEngineRunMinRateOverride(t *testing.T) {
	e := newTestEngine(engineStore())

	result, err := e.Run(context.Background(), RunRequest{
		JobVacancyID: "JV-001",
		CohortIDs:    []string{"b1", "b2", "b3"},
		MinRate:      float64Ptr(0),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected both candidates with zero threshold, got %d", len(result.Results))
	}
	if result.Results[0].MatchRate < result.Results[1].MatchRate {
		t.Error("expected descending order by match rate")
	}
}

func TestEngineRunInvalidCohort(t *testing.T) {
	e := newTestEngine(engineStore())

	tests := []struct {
		name string
		ids  []string
		want error
	}{
		{"empty", nil, ErrEmptyCohort},
		{"too large", []string{"a", "b", "c", "d"}, ErrCohortTooLarge},
		{"duplicate", []string{"b1", "b1"}, ErrDuplicateMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Run(context.Background(), RunRequest{JobVacancyID: "JV-001", CohortIDs: tt.ids})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEngineRunEmptyCandidatePool(t *testing.T) {
	s := engineStore()
	s.pool = nil
	e := newTestEngine(s)

	_, err := e.Run(context.Background(), RunRequest{JobVacancyID: "JV-001", CohortIDs: []string{"b1"}})
	if !errors.Is(err, ErrEmptyCandidates) {
		t.Errorf("expected ErrEmptyCandidates, got %v", err)
	}
}

func TestEngineRunMissingBaselineSkipsTV(t *testing.T) {
	// Cohort has MBTI only; candidate IQ has no baseline and is skipped,
	// not failed.
	s := engineStore()
	s.assessments = map[string]assessment.RawAssessment{
		"b1": {EmployeeID: "b1", MBTI: "INTJ"},
		"c1": {EmployeeID: "c1", MBTI: "INTJ", IQ: float64Ptr(120)},
	}
	s.pool = []string{"c1"}
	e := newTestEngine(s)

	result, err := e.Run(context.Background(), RunRequest{JobVacancyID: "JV-001", CohortIDs: []string{"b1"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Results) != 1 {
		t.Fatalf("expected c1 shortlisted on MBTI alone, got %d rows", len(result.Results))
	}
	if result.Results[0].MatchRate != 100 {
		t.Errorf("expected 100 from full MBTI agreement, got %v", result.Results[0].MatchRate)
	}
}
