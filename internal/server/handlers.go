package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

const defaultRecentLimit = 10

// workoutResponse is returned by workout create and update.
type workoutResponse struct {
	Workout    *models.Workout    `json:"workout"`
	NewRecords []models.NewRecord `json:"newRecords"`
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	all := s.tracker.Recent(-1)
	out := make([]models.Workout, 0, len(all))
	for _, wo := range all {
		if !start.IsZero() && wo.Date.Before(start) {
			continue
		}
		if !end.IsZero() && !wo.Date.Before(end) {
			continue
		}
		out = append(out, wo)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecentWorkouts(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	writeJSON(w, http.StatusOK, s.tracker.Recent(limit))
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	wo, err := s.tracker.Workout(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wo)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var d models.WorkoutDraft
	if !decodeBody(w, r, &d) {
		return
	}
	wo, prs, err := s.tracker.CreateWorkout(r.Context(), d)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workoutResponse{Workout: wo, NewRecords: nonNil(prs)})
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	var d models.WorkoutDraft
	if !decodeBody(w, r, &d) {
		return
	}
	wo, prs, err := s.tracker.UpdateWorkout(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workoutResponse{Workout: wo, NewRecords: nonNil(prs)})
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteWorkout(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRepeatWorkout(w http.ResponseWriter, r *http.Request) {
	d, err := s.tracker.RepeatWorkout(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSaveAsRoutine(w http.ResponseWriter, r *http.Request) {
	rt, err := s.tracker.SaveAsRoutine(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.RecordList())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Summary())
}

// writeError maps tracker and storage errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, tracker.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrWriteFailed):
		s.log.Error("save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads optional start and end query parameters as RFC 3339
// or YYYY-MM-DD. A date-only end includes that whole day. Missing bounds are
// returned as zero times.
func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	if v := r.URL.Query().Get("start"); v != "" {
		start, _, err = parseFlexTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		var dateOnly bool
		end, dateOnly, err = parseFlexTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if dateOnly {
			end = end.AddDate(0, 0, 1)
		}
	}
	return start, end, nil
}

func parseFlexTime(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false, errors.New("invalid date " + strconv.Quote(s) + " (want RFC 3339 or YYYY-MM-DD)")
	}
	return t, true, nil
}
