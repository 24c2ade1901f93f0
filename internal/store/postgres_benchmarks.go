package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const benchmarkColumns = `job_vacancy_id, role_name, job_level, role_purpose,
	selected_talent_ids, created_at, updated_at`

func (s *PostgresStore) CreateBenchmark(ctx context.Context, b *Benchmark) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO talent_benchmarks (job_vacancy_id, role_name, job_level, role_purpose, selected_talent_ids)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (job_vacancy_id) DO UPDATE
		SET role_name = EXCLUDED.role_name,
			job_level = EXCLUDED.job_level,
			role_purpose = EXCLUDED.role_purpose,
			selected_talent_ids = EXCLUDED.selected_talent_ids,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		b.JobVacancyID, b.RoleName, b.JobLevel, b.RolePurpose, b.SelectedTalentIDs,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (s *PostgresStore) GetBenchmark(ctx context.Context, jobVacancyID string) (*Benchmark, error) {
	b := &Benchmark{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+benchmarkColumns+`
		FROM talent_benchmarks WHERE job_vacancy_id = $1`, jobVacancyID,
	).Scan(
		&b.JobVacancyID, &b.RoleName, &b.JobLevel, &b.RolePurpose,
		&b.SelectedTalentIDs, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *PostgresStore) ListBenchmarks(ctx context.Context) ([]*Benchmark, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+benchmarkColumns+`
		FROM talent_benchmarks
		ORDER BY job_vacancy_id`)
	if err != nil {
		return nil, fmt.Errorf("list benchmarks: %w", err)
	}
	defer rows.Close()

	var benchmarks []*Benchmark
	for rows.Next() {
		b := &Benchmark{}
		if err := rows.Scan(
			&b.JobVacancyID, &b.RoleName, &b.JobLevel, &b.RolePurpose,
			&b.SelectedTalentIDs, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		benchmarks = append(benchmarks, b)
	}
	return benchmarks, rows.Err()
}

func (s *PostgresStore) UpdateBenchmarkSelection(ctx context.Context, jobVacancyID string, talentIDs []string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE talent_benchmarks
		SET selected_talent_ids = $2, updated_at = NOW()
		WHERE job_vacancy_id = $1`, jobVacancyID, talentIDs)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("benchmark %s not found", jobVacancyID)
	}
	return nil
}
