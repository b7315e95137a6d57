package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestWorkouts verifies the client sends the time range and parses workouts.
func TestWorkouts(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)

	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("start"); got != "2026-01-01T00:00:00Z" {
				t.Errorf("start=%q", got)
			}
			if got := r.URL.Query().Get("end"); got != "2026-01-08T00:00:00Z" {
				t.Errorf("end=%q", got)
			}
			writeTestJSON(t, w, []models.Workout{{ID: "a", Date: start, RoutineName: "Push"}})
		},
	})
	defer ts.Close()

	workouts, err := NewHTTPClient(ts.URL+"/").Workouts(context.Background(), start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 1 || workouts[0].RoutineName != "Push" {
		t.Errorf("workouts = %+v", workouts)
	}
}

// TestRecentAndRecords verifies the limit parameter and records decoding.
func TestRecentAndRecords(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts/recent": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "1" {
				t.Errorf("limit=%q, want 1", got)
			}
			writeTestJSON(t, w, []models.Workout{{ID: "a"}})
		},
		"/api/v1/records": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []records.Entry{{Name: "Bench", PersonalRecord: models.PersonalRecord{Weight: 100}}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	recent, err := client.RecentWorkouts(context.Background(), 1)
	if err != nil || len(recent) != 1 {
		t.Fatalf("recent = %+v, err = %v", recent, err)
	}
	recs, err := client.PersonalRecords(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Weight != 100 {
		t.Errorf("records = %+v", recs)
	}
}

// TestSeriesAndVolume verifies the wrapped progress responses are unwrapped.
func TestSeriesAndVolume(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/progress/series": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("exercise"); got != "Bench Press" {
				t.Errorf("exercise=%q", got)
			}
			writeTestJSON(t, w, map[string]any{
				"exercise": "Bench Press",
				"points":   []analytics.SeriesPoint{{MaxWeight: 80}, {MaxWeight: 85}},
			})
		},
		"/api/v1/progress/volume": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("period"); got != "month" {
				t.Errorf("period=%q", got)
			}
			writeTestJSON(t, w, map[string]any{
				"period":  "month",
				"buckets": []analytics.VolumeBucket{{Key: "2026-01", Volume: 1200}},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	points, err := client.ExerciseSeries(context.Background(), "Bench Press")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 || points[1].MaxWeight != 85 {
		t.Errorf("points = %+v", points)
	}
	buckets, err := client.Volume(context.Background(), analytics.Month)
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 1 || buckets[0].Key != "2026-01" {
		t.Errorf("buckets = %+v", buckets)
	}
}

// TestStatsRoutinesExercises verifies the remaining endpoints decode.
func TestStatsRoutinesExercises(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, analytics.Summary{TotalWorkouts: 12, ThisWeek: 2, Streak: 3})
		},
		"/api/v1/routines": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.Routine{{ID: "r1", Name: "Legs"}})
		},
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("kind"); got != "weights" {
				t.Errorf("kind=%q", got)
			}
			writeTestJSON(t, w, []string{"Bench", "Squat"})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	stats, err := client.Stats(context.Background())
	if err != nil || stats.Streak != 3 {
		t.Errorf("stats = %+v, err = %v", stats, err)
	}
	routines, err := client.Routines(context.Background())
	if err != nil || len(routines) != 1 {
		t.Errorf("routines = %+v, err = %v", routines, err)
	}
	names, err := client.ExerciseNames(context.Background(), "weights")
	if err != nil || len(names) != 2 {
		t.Errorf("names = %v, err = %v", names, err)
	}
}

// TestHTTPError verifies non-200 responses surface as errors.
func TestHTTPError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).Stats(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
