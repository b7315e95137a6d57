package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
)

// SeriesResponse is the body of GET /api/v1/progress/series.
type SeriesResponse struct {
	Exercise string                  `json:"exercise"`
	Points   []analytics.SeriesPoint `json:"points"`
	// EnoughData is false below two points.
	EnoughData bool `json:"enough_data"`
}

// VolumeResponse is the body of GET /api/v1/progress/volume.
type VolumeResponse struct {
	Period  analytics.Period         `json:"period"`
	Buckets []analytics.VolumeBucket `json:"buckets"`
}

// CalendarResponse is the body of GET /api/v1/calendar.
type CalendarResponse struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Days     []int            `json:"days"`
	Day      int              `json:"day,omitempty"`
	Workouts []models.Workout `json:"workouts,omitempty"`
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	switch kind := r.URL.Query().Get("kind"); kind {
	case "", "all":
		writeJSON(w, http.StatusOK, nonNil(s.tracker.AllExerciseNames()))
	case string(models.Weights):
		writeJSON(w, http.StatusOK, nonNil(s.tracker.WeightExerciseNames()))
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kind must be weights or all"})
	}
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	limit := analytics.DefaultSuggestions
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	writeJSON(w, http.StatusOK, nonNil(s.tracker.Suggest(r.URL.Query().Get("q"), limit)))
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("exercise")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}
	points := nonNil(s.tracker.ExerciseSeries(name))
	writeJSON(w, http.StatusOK, SeriesResponse{Exercise: name, Points: points, EnoughData: len(points) >= 2})
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	period, err := analytics.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, VolumeResponse{Period: period, Buckets: nonNil(s.tracker.VolumeByPeriod(period))})
}

// handleCalendar lists the days of a month with workouts, defaulting to the
// current month. With day set it also returns that day's workouts.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := s.tracker.Now()
	year, month := now.Year(), int(now.Month())
	q := r.URL.Query()

	var err error
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
			return
		}
	}
	if v := q.Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil || month < 1 || month > 12 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid month"})
			return
		}
	}

	resp := CalendarResponse{Year: year, Month: month, Days: nonNil(s.tracker.CalendarDays(year, time.Month(month)))}
	if v := q.Get("day"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil || day < 1 || day > 31 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid day"})
			return
		}
		resp.Day = day
		resp.Workouts = nonNil(s.tracker.OnDay(year, time.Month(month), day))
	}
	writeJSON(w, http.StatusOK, resp)
}
