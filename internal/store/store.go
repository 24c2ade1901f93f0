package store

import (
	"context"
	"time"

	"github.com/hirelens/talentmatch/internal/assessment"
	"github.com/hirelens/talentmatch/internal/taxonomy"
)

// Employee holds the identity fields shown alongside a match result.
type Employee struct {
	EmployeeID           string `json:"employee_id"`
	FullName             string `json:"fullname"`
	Education            string `json:"education,omitempty"`
	Area                 string `json:"area,omitempty"`
	Position             string `json:"position,omitempty"`
	YearsOfServiceMonths int    `json:"years_of_service_months,omitempty"`
}

// Benchmark is a stored benchmark definition for one job vacancy.
type Benchmark struct {
	JobVacancyID      string    `json:"job_vacancy_id"`
	RoleName          string    `json:"role_name"`
	JobLevel          string    `json:"job_level,omitempty"`
	RolePurpose       string    `json:"role_purpose,omitempty"`
	SelectedTalentIDs []string  `json:"selected_talent_ids"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Store interface {
	// Taxonomy and assessment data for the scoring engine. GetAssessments
	// reads every per-employee assessment table within one repeatable-read
	// transaction so a run never mixes assessment versions.
	GetTaxonomy(ctx context.Context) (*taxonomy.Table, error)
	GetAssessments(ctx context.Context, employeeIDs []string) ([]assessment.RawAssessment, error)

	// Employee identity and candidate selection.
	GetEmployees(ctx context.Context, employeeIDs []string) ([]Employee, error)
	GetCandidatePool(ctx context.Context, jobVacancyID string) ([]string, error)
	GetTopPerformers(ctx context.Context, roleName string, limit int) ([]string, error)

	// Benchmark definitions.
	CreateBenchmark(ctx context.Context, b *Benchmark) error
	GetBenchmark(ctx context.Context, jobVacancyID string) (*Benchmark, error)
	ListBenchmarks(ctx context.Context) ([]*Benchmark, error)
	UpdateBenchmarkSelection(ctx context.Context, jobVacancyID string, talentIDs []string) error

	Close() error
}
