package events

const (
	StreamName   = "TALENT_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectBenchmarkCreated(jobVacancyID string) string {
	return "talent.benchmark." + jobVacancyID + ".created"
}

func SubjectSelectionUpdated(jobVacancyID string) string {
	return "talent.benchmark." + jobVacancyID + ".selection_updated"
}

func SubjectMatchCompleted(jobVacancyID string) string {
	return "talent.match." + jobVacancyID + ".completed"
}

type BenchmarkCreatedEvent struct {
	JobVacancyID string `json:"job_vacancy_id"`
	RoleName     string `json:"role_name"`
	JobLevel     string `json:"job_level,omitempty"`
	CohortSize   int    `json:"cohort_size"`
}

type SelectionUpdatedEvent struct {
	JobVacancyID string   `json:"job_vacancy_id"`
	TalentIDs    []string `json:"talent_ids"`
}

type MatchCompletedEvent struct {
	RunID          string  `json:"run_id"`
	JobVacancyID   string  `json:"job_vacancy_id"`
	CohortSize     int     `json:"cohort_size"`
	CandidateCount int     `json:"candidate_count"`
	Shortlisted    int     `json:"shortlisted"`
	MinRate        float64 `json:"min_rate"`
	DurationMs     int64   `json:"duration_ms"`
}
