package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirelens/talentmatch/internal/assessment"
	"github.com/hirelens/talentmatch/internal/taxonomy"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) GetTaxonomy(ctx context.Context) (*taxonomy.Table, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sub_tv, tv, tgv, COALESCE(note, '')
		FROM map_tgv
		ORDER BY tv, sub_tv`)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	defer rows.Close()

	var entries []taxonomy.Entry
	for rows.Next() {
		var e taxonomy.Entry
		if err := rows.Scan(&e.SubTV, &e.TV, &e.TGV, &e.Note); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return taxonomy.NewTable(entries), nil
}

// GetAssessments assembles one RawAssessment per employee from the profile,
// survey, and strengths tables. All reads share a repeatable-read snapshot
// so one scoring run never mixes assessment versions.
func (s *PostgresStore) GetAssessments(ctx context.Context, employeeIDs []string) ([]assessment.RawAssessment, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	byID := make(map[string]*assessment.RawAssessment, len(employeeIDs))
	ordered := make([]string, 0, len(employeeIDs))

	profileRows, err := tx.Query(ctx, `
		SELECT employee_id, mbti, disc, iq, gtq, tiki, pauli
		FROM profiles_psych
		WHERE employee_id = ANY($1)
		ORDER BY employee_id`, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	for profileRows.Next() {
		raw := &assessment.RawAssessment{}
		var mbti, disc sql.NullString
		if err := profileRows.Scan(&raw.EmployeeID, &mbti, &disc, &raw.IQ, &raw.GTQ, &raw.TIKI, &raw.Pauli); err != nil {
			profileRows.Close()
			return nil, err
		}
		raw.MBTI = mbti.String
		raw.DISC = disc.String
		byID[raw.EmployeeID] = raw
		ordered = append(ordered, raw.EmployeeID)
	}
	profileRows.Close()
	if err := profileRows.Err(); err != nil {
		return nil, err
	}

	papiRows, err := tx.Query(ctx, `
		SELECT employee_id, scale_code, score
		FROM papi_scores
		WHERE employee_id = ANY($1)
		ORDER BY employee_id, scale_code`, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("load papi scores: %w", err)
	}
	for papiRows.Next() {
		var employeeID string
		var p assessment.PAPIScore
		if err := papiRows.Scan(&employeeID, &p.ScaleCode, &p.Score); err != nil {
			papiRows.Close()
			return nil, err
		}
		raw := byID[employeeID]
		if raw == nil {
			raw = &assessment.RawAssessment{EmployeeID: employeeID}
			byID[employeeID] = raw
			ordered = append(ordered, employeeID)
		}
		raw.PAPI = append(raw.PAPI, p)
	}
	papiRows.Close()
	if err := papiRows.Err(); err != nil {
		return nil, err
	}

	themeRows, err := tx.Query(ctx, `
		SELECT employee_id, theme
		FROM strengths
		WHERE employee_id = ANY($1)
		ORDER BY employee_id, rank`, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("load strengths: %w", err)
	}
	for themeRows.Next() {
		var employeeID, theme string
		if err := themeRows.Scan(&employeeID, &theme); err != nil {
			themeRows.Close()
			return nil, err
		}
		raw := byID[employeeID]
		if raw == nil {
			raw = &assessment.RawAssessment{EmployeeID: employeeID}
			byID[employeeID] = raw
			ordered = append(ordered, employeeID)
		}
		raw.Themes = append(raw.Themes, theme)
	}
	themeRows.Close()
	if err := themeRows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("close snapshot: %w", err)
	}

	assessments := make([]assessment.RawAssessment, 0, len(ordered))
	for _, id := range ordered {
		assessments = append(assessments, *byID[id])
	}
	return assessments, nil
}

func (s *PostgresStore) GetEmployees(ctx context.Context, employeeIDs []string) ([]Employee, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT e.employee_id, e.fullname,
			COALESCE(de.name, ''), COALESCE(da.name, ''), COALESCE(dp.name, ''),
			COALESCE(e.years_of_service_months, 0)
		FROM employees e
		LEFT JOIN dim_education de ON e.education_id = de.education_id
		LEFT JOIN dim_areas da ON e.area_id = da.area_id
		LEFT JOIN dim_positions dp ON e.position_id = dp.position_id
		WHERE e.employee_id = ANY($1)
		ORDER BY e.employee_id`, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.EmployeeID, &e.FullName, &e.Education, &e.Area, &e.Position, &e.YearsOfServiceMonths); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetCandidatePool returns the employees in the benchmark's job pipeline:
// everyone holding the position the benchmark was defined for.
func (s *PostgresStore) GetCandidatePool(ctx context.Context, jobVacancyID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT e.employee_id
		FROM talent_benchmarks tb
		INNER JOIN dim_positions dp ON dp.name = tb.role_name
		INNER JOIN employees e ON e.position_id = dp.position_id
		WHERE tb.job_vacancy_id = $1
		ORDER BY e.employee_id`, jobVacancyID)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

// GetTopPerformers returns the employees in a role who hold its maximum
// performance rating in the latest recorded year. Used to seed a cohort.
func (s *PostgresStore) GetTopPerformers(ctx context.Context, roleName string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 3
	}
	rows, err := s.pool.Query(ctx, `
		WITH latest AS (
			SELECT MAX(year) AS year FROM performance_yearly
		)
		SELECT e.employee_id
		FROM employees e
		INNER JOIN dim_positions dp ON e.position_id = dp.position_id
		INNER JOIN performance_yearly py ON py.employee_id = e.employee_id
		INNER JOIN latest l ON py.year = l.year
		WHERE dp.name = $1
		  AND py.rating = (
			SELECT MAX(py2.rating)
			FROM employees e2
			INNER JOIN dim_positions dp2 ON e2.position_id = dp2.position_id
			INNER JOIN performance_yearly py2 ON py2.employee_id = e2.employee_id
			INNER JOIN latest l2 ON py2.year = l2.year
			WHERE dp2.name = $1
		  )
		ORDER BY e.employee_id
		LIMIT $2`, roleName, limit)
	if err != nil {
		return nil, fmt.Errorf("load top performers: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
