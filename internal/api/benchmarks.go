package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hirelens/talentmatch/internal/events"
	"github.com/hirelens/talentmatch/internal/matching"
	"github.com/hirelens/talentmatch/internal/store"
)

type BenchmarksHandler struct {
	store  store.Store
	events events.Client
}

func NewBenchmarksHandler(s store.Store, ev events.Client) *BenchmarksHandler {
	return &BenchmarksHandler{store: s, events: ev}
}

type CreateBenchmarkRequest struct {
	JobVacancyID      string   `json:"job_vacancy_id"`
	RoleName          string   `json:"role_name"`
	JobLevel          string   `json:"job_level,omitempty"`
	RolePurpose       string   `json:"role_purpose,omitempty"`
	SelectedTalentIDs []string `json:"selected_talent_ids,omitempty"`
}

func (h *BenchmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBenchmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.JobVacancyID == "" || req.RoleName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "job_vacancy_id and role_name required"})
		return
	}
	if len(req.SelectedTalentIDs) > 0 {
		if _, err := matching.NewCohort(req.SelectedTalentIDs); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	b := &store.Benchmark{
		JobVacancyID:      req.JobVacancyID,
		RoleName:          req.RoleName,
		JobLevel:          req.JobLevel,
		RolePurpose:       req.RolePurpose,
		SelectedTalentIDs: req.SelectedTalentIDs,
	}
	if err := h.store.CreateBenchmark(r.Context(), b); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectBenchmarkCreated(b.JobVacancyID), events.BenchmarkCreatedEvent{
			JobVacancyID: b.JobVacancyID,
			RoleName:     b.RoleName,
			JobLevel:     b.JobLevel,
			CohortSize:   len(b.SelectedTalentIDs),
		})
	}

	writeJSON(w, http.StatusCreated, b)
}

func (h *BenchmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	benchmarks, err := h.store.ListBenchmarks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if benchmarks == nil {
		benchmarks = []*store.Benchmark{}
	}
	writeJSON(w, http.StatusOK, benchmarks)
}

func (h *BenchmarksHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.GetBenchmark(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "benchmark not found"})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type UpdateSelectionRequest struct {
	TalentIDs []string `json:"talent_ids"`
}

func (h *BenchmarksHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if _, err := matching.NewCohort(req.TalentIDs); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	b, err := h.store.GetBenchmark(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "benchmark not found"})
		return
	}

	if err := h.store.UpdateBenchmarkSelection(r.Context(), id, req.TalentIDs); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectSelectionUpdated(id), events.SelectionUpdatedEvent{
			JobVacancyID: id,
			TalentIDs:    req.TalentIDs,
		})
	}

	b.SelectedTalentIDs = req.TalentIDs
	writeJSON(w, http.StatusOK, b)
}

func (h *BenchmarksHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.store.GetBenchmark(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "benchmark not found"})
		return
	}

	ids, err := h.store.GetCandidatePool(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	employees := []store.Employee{}
	if len(ids) > 0 {
		employees, err = h.store.GetEmployees(r.Context(), ids)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, employees)
}

// Suggestions returns the top performers for the benchmark's role as
// candidate cohort members.
func (h *BenchmarksHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.store.GetBenchmark(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "benchmark not found"})
		return
	}

	ids, err := h.store.GetTopPerformers(r.Context(), b.RoleName, matching.MaxCohortSize)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	employees := []store.Employee{}
	if len(ids) > 0 {
		employees, err = h.store.GetEmployees(r.Context(), ids)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, employees)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
