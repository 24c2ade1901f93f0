package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hirelens/talentmatch/internal/events"
	"github.com/hirelens/talentmatch/internal/matching"
	"github.com/hirelens/talentmatch/internal/store"
)

// MatchRunner is the slice of the engine the handler needs.
type MatchRunner interface {
	Run(ctx context.Context, req matching.RunRequest) (*matching.RunResult, error)
}

type MatchHandler struct {
	store  store.Store
	runner MatchRunner
	events events.Client
}

func NewMatchHandler(s store.Store, runner MatchRunner, ev events.Client) *MatchHandler {
	return &MatchHandler{store: s, runner: runner, events: ev}
}

type MatchRequest struct {
	MinRate *float64 `json:"min_rate,omitempty"`
}

func (h *MatchHandler) Run(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req MatchRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	if req.MinRate != nil && (*req.MinRate < 0 || *req.MinRate > 100) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "min_rate outside [0,100]"})
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
	if len(b.SelectedTalentIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "benchmark has no selected cohort"})
		return
	}

	result, err := h.runner.Run(r.Context(), matching.RunRequest{
		JobVacancyID: id,
		CohortIDs:    b.SelectedTalentIDs,
		MinRate:      req.MinRate,
	})
	if err != nil {
		matchRunsTotal.WithLabelValues("error").Inc()
		switch {
		case errors.Is(err, matching.ErrEmptyCohort),
			errors.Is(err, matching.ErrCohortTooLarge),
			errors.Is(err, matching.ErrDuplicateMember):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, matching.ErrEmptyCandidates):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	matchRunsTotal.WithLabelValues("ok").Inc()
	matchRunDuration.Observe(result.Duration.Seconds())

	if h.events != nil {
		_ = h.events.Publish(events.SubjectMatchCompleted(id), events.MatchCompletedEvent{
			RunID:          result.RunID.String(),
			JobVacancyID:   id,
			CohortSize:     len(result.Cohort),
			CandidateCount: result.CandidateCount,
			Shortlisted:    len(result.Results),
			MinRate:        result.MinRate,
			DurationMs:     result.Duration.Milliseconds(),
		})
	}

	writeJSON(w, http.StatusOK, result)
}
