package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/clock"
	"github.com/claude/liftlog/internal/ids"
	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/ingest/alpha"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/tracker"
)

var testNow = time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)

type testEnv struct {
	srv     *Server
	tracker *tracker.Tracker
	clk     *clock.Fixed
	backend *storage.MemoryBackend
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := storage.NewMemoryBackend(nil)
	clk := &clock.Fixed{T: testNow}
	tr := tracker.New(context.Background(), storage.NewStore(backend, log), clk, &ids.Sequence{Prefix: "w"}, log)
	srv := New(tr, alpha.NewProvider(tr, time.UTC, log), log)
	return &testEnv{srv: srv, tracker: tr, clk: clk, backend: backend}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, httptest.NewRequest(method, path, r))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode error: %v (body %q)", err, rec.Body.String())
	}
	return v
}

const benchDraft = `{"routineName":"Push","exercises":[{"name":"Bench","type":"weights","sets":[{"reps":5,"weight":80},{"reps":5,"weight":85}]}]}`

// TestCreateWorkout verifies POST /api/v1/workouts stores the workout and
// reports new records.
func TestCreateWorkout(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/workouts", benchDraft)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body)
	}
	resp := decode[workoutResponse](t, rec)
	if resp.Workout.ID != "w-1" || !resp.Workout.Date.Equal(testNow) {
		t.Errorf("workout = %+v", resp.Workout)
	}
	if len(resp.NewRecords) != 1 || resp.NewRecords[0].Weight != 85 {
		t.Errorf("newRecords = %+v", resp.NewRecords)
	}
	if len(e.tracker.Workouts()) != 1 {
		t.Error("workout not stored")
	}
}

// TestCreateWorkoutErrors verifies bad JSON and invalid drafts return 400.
func TestCreateWorkoutErrors(t *testing.T) {
	e := newTestEnv(t)
	for _, body := range []string{
		`{not json`,
		`{"routineName":"Empty","exercises":[]}`,
		`{"exercises":[{"name":" ","type":"weights","sets":[{"reps":1,"weight":1}]}]}`,
	} {
		if rec := e.do(t, http.MethodPost, "/api/v1/workouts", body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

// TestWriteFailureIs500 verifies a failed save maps to 500.
func TestWriteFailureIs500(t *testing.T) {
	e := newTestEnv(t)
	e.backend.WriteErr = errors.New("disk full")

	if rec := e.do(t, http.MethodPost, "/api/v1/workouts", benchDraft); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

// TestWorkoutLifecycle verifies get, update, repeat and delete by id.
func TestWorkoutLifecycle(t *testing.T) {
	e := newTestEnv(t)
	e.do(t, http.MethodPost, "/api/v1/workouts", benchDraft)

	if rec := e.do(t, http.MethodGet, "/api/v1/workouts/w-1", ""); rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	update := `{"routineName":"Push B","exercises":[{"name":"Bench","type":"weights","sets":[{"reps":5,"weight":70}]}]}`
	rec := e.do(t, http.MethodPut, "/api/v1/workouts/w-1", update)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d (body %s)", rec.Code, rec.Body)
	}
	if got := decode[workoutResponse](t, rec); got.Workout.RoutineName != "Push B" || got.NewRecords == nil {
		t.Errorf("update = %+v", got)
	}
	if pr := e.tracker.PersonalRecords()["Bench"]; pr.Weight != 70 {
		t.Errorf("record after lowering edit = %v, want 70", pr.Weight)
	}

	rec = e.do(t, http.MethodGet, "/api/v1/workouts/w-1/repeat", "")
	if d := decode[models.WorkoutDraft](t, rec); d.RoutineName != "Push B" || len(d.Exercises) != 1 {
		t.Errorf("repeat draft = %+v", d)
	}

	if rec := e.do(t, http.MethodDelete, "/api/v1/workouts/w-1", ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	if rec := e.do(t, http.MethodDelete, "/api/v1/workouts/w-1", ""); rec.Code != http.StatusNoContent {
		t.Errorf("second delete status = %d, want 204", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/api/v1/workouts/w-1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
	if rec := e.do(t, http.MethodPut, "/api/v1/workouts/w-1", update); rec.Code != http.StatusNotFound {
		t.Errorf("update after delete status = %d, want 404", rec.Code)
	}
}

// TestListWorkoutsRange verifies date filtering and newest-first order.
func TestListWorkoutsRange(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < 3; i++ {
		e.clk.T = testNow.AddDate(0, 0, -i)
		e.do(t, http.MethodPost, "/api/v1/workouts", benchDraft)
	}

	all := decode[[]models.Workout](t, e.do(t, http.MethodGet, "/api/v1/workouts", ""))
	if len(all) != 3 || all[0].ID != "w-1" || all[2].ID != "w-3" {
		t.Errorf("all = %d workouts, first %q", len(all), all[0].ID)
	}

	got := decode[[]models.Workout](t, e.do(t, http.MethodGet, "/api/v1/workouts?start=2024-03-05&end=2024-03-05", ""))
	if len(got) != 1 || got[0].ID != "w-2" {
		t.Errorf("ranged = %+v", got)
	}

	if rec := e.do(t, http.MethodGet, "/api/v1/workouts?start=yesterday", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad start status = %d, want 400", rec.Code)
	}

	recent := decode[[]models.Workout](t, e.do(t, http.MethodGet, "/api/v1/workouts/recent?limit=2", ""))
	if len(recent) != 2 {
		t.Errorf("recent = %d, want 2", len(recent))
	}
}

// TestRoutineEndpoints verifies routine CRUD, start and save-as-routine.
func TestRoutineEndpoints(t *testing.T) {
	e := newTestEnv(t)

	body := `{"name":"Legs","exercises":[{"name":"Squat","type":"weights","defaultSets":4,"defaultReps":6,"defaultWeight":100}]}`
	rec := e.do(t, http.MethodPost, "/api/v1/routines", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body %s)", rec.Code, rec.Body)
	}
	rt := decode[models.Routine](t, rec)

	d := decode[models.WorkoutDraft](t, e.do(t, http.MethodGet, "/api/v1/routines/"+rt.ID+"/start", ""))
	if len(d.Exercises) != 1 || len(d.Exercises[0].Sets) != 4 || d.Exercises[0].Sets[0].Weight != 100 {
		t.Errorf("start draft = %+v", d)
	}

	ed := decode[models.RoutineDraft](t, e.do(t, http.MethodGet, "/api/v1/routines/"+rt.ID+"/edit", ""))
	if len(ed.Exercises) != 1 || len(ed.Exercises[0].Sets) != 4 {
		t.Errorf("editor draft = %+v", ed)
	}

	if rec := e.do(t, http.MethodPut, "/api/v1/routines/"+rt.ID, `{"name":"","exercises":[]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid update status = %d, want 400", rec.Code)
	}
	if rec := e.do(t, http.MethodPut, "/api/v1/routines/"+rt.ID, `{"name":"Leg day","exercises":[{"name":"Squat","type":"weights"}]}`); rec.Code != http.StatusOK {
		t.Errorf("update status = %d, want 200", rec.Code)
	}

	e.do(t, http.MethodPost, "/api/v1/workouts", benchDraft)
	if rec := e.do(t, http.MethodPost, "/api/v1/workouts/w-2/routine", ""); rec.Code != http.StatusCreated {
		t.Errorf("save as routine status = %d, want 201 (body %s)", rec.Code, rec.Body)
	}
	if list := decode[[]models.Routine](t, e.do(t, http.MethodGet, "/api/v1/routines", "")); len(list) != 2 {
		t.Errorf("routines = %d, want 2", len(list))
	}

	if rec := e.do(t, http.MethodDelete, "/api/v1/routines/"+rt.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/api/v1/routines/"+rt.ID+"/start", ""); rec.Code != http.StatusNotFound {
		t.Errorf("start after delete status = %d, want 404", rec.Code)
	}
}

// TestStatsAndRecords verifies the summary and records endpoints.
func TestStatsAndRecords(t *testing.T) {
	e := newTestEnv(t)
	e.do(t, http.MethodPost, "/api/v1/workouts", benchDraft)

	rec := e.do(t, http.MethodGet, "/api/v1/stats", "")
	var stats struct {
		TotalWorkouts int `json:"total_workouts"`
		ThisWeek      int `json:"this_week"`
		Streak        int `json:"streak"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalWorkouts != 1 || stats.ThisWeek != 1 || stats.Streak != 1 {
		t.Errorf("stats = %+v", stats)
	}

	entries := decode[[]records.Entry](t, e.do(t, http.MethodGet, "/api/v1/records", ""))
	if len(entries) != 1 || entries[0].Name != "Bench" || entries[0].Weight != 85 {
		t.Errorf("records = %+v", entries)
	}
}

// TestProgressEndpoints verifies exercise lists, suggestions, series and volume.
func TestProgressEndpoints(t *testing.T) {
	e := newTestEnv(t)
	e.do(t, http.MethodPost, "/api/v1/workouts", benchDraft)
	e.clk.Advance(24 * time.Hour)
	e.do(t, http.MethodPost, "/api/v1/workouts", `{"exercises":[{"name":"Bench","type":"weights","sets":[{"reps":5,"weight":90}]},{"name":"Run","type":"cardio","duration":30,"distance":5}]}`)

	if names := decode[[]string](t, e.do(t, http.MethodGet, "/api/v1/exercises?kind=weights", "")); len(names) != 1 {
		t.Errorf("weights names = %v", names)
	}
	if names := decode[[]string](t, e.do(t, http.MethodGet, "/api/v1/exercises", "")); len(names) != 2 {
		t.Errorf("all names = %v", names)
	}
	if rec := e.do(t, http.MethodGet, "/api/v1/exercises?kind=yoga", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad kind status = %d", rec.Code)
	}
	if got := decode[[]string](t, e.do(t, http.MethodGet, "/api/v1/exercises/suggest?q=ru", "")); len(got) != 1 || got[0] != "Run" {
		t.Errorf("suggest = %v", got)
	}

	series := decode[SeriesResponse](t, e.do(t, http.MethodGet, "/api/v1/progress/series?exercise=Bench", ""))
	if !series.EnoughData || len(series.Points) != 2 || series.Points[1].MaxWeight != 90 {
		t.Errorf("series = %+v", series)
	}
	if rec := e.do(t, http.MethodGet, "/api/v1/progress/series", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing exercise status = %d", rec.Code)
	}

	vol := decode[VolumeResponse](t, e.do(t, http.MethodGet, "/api/v1/progress/volume?period=month", ""))
	if len(vol.Buckets) != 1 || vol.Buckets[0].Key != "2024-03" || vol.Buckets[0].Volume != 5*80+5*85+5*90 {
		t.Errorf("volume = %+v", vol)
	}
	if rec := e.do(t, http.MethodGet, "/api/v1/progress/volume?period=year", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad period status = %d", rec.Code)
	}
}

// TestCalendar verifies month days and the per-day workout list.
func TestCalendar(t *testing.T) {
	e := newTestEnv(t)
	e.do(t, http.MethodPost, "/api/v1/workouts", benchDraft)

	cal := decode[CalendarResponse](t, e.do(t, http.MethodGet, "/api/v1/calendar", ""))
	if cal.Year != 2024 || cal.Month != 3 || len(cal.Days) != 1 || cal.Days[0] != 6 {
		t.Errorf("calendar = %+v", cal)
	}

	cal = decode[CalendarResponse](t, e.do(t, http.MethodGet, "/api/v1/calendar?year=2024&month=3&day=6", ""))
	if len(cal.Workouts) != 1 {
		t.Errorf("day workouts = %d, want 1", len(cal.Workouts))
	}
	if rec := e.do(t, http.MethodGet, "/api/v1/calendar?month=13", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad month status = %d", rec.Code)
	}
}

// TestAlphaImport verifies a CSV export is imported once and re-import skips it.
func TestAlphaImport(t *testing.T) {
	e := newTestEnv(t)
	csv := `"Push";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench Press · Barbell · 6 reps";"WU1 · 22,5 kg · 10 reps"
#;KG;REPS;RIR
1;102,5;6;0
2;100;6;0
`
	rec := e.do(t, http.MethodPost, "/api/v1/import/alpha", csv)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body)
	}
	if res := decode[ingest.Result](t, rec); res.WorkoutsInserted != 1 || res.WarmupsSkipped != 1 {
		t.Errorf("result = %+v", res)
	}
	if pr := e.tracker.PersonalRecords()["Bench Press"]; pr.Weight != 102.5 {
		t.Errorf("record = %+v", pr)
	}

	res := decode[ingest.Result](t, e.do(t, http.MethodPost, "/api/v1/import/alpha", csv))
	if res.WorkoutsInserted != 0 || res.WorkoutsSkipped != 1 {
		t.Errorf("re-import = %+v", res)
	}

	if rec := e.do(t, http.MethodPost, "/api/v1/import/alpha", "1;100;6;0\n"); rec.Code != http.StatusBadRequest {
		t.Errorf("orphan set status = %d, want 400", rec.Code)
	}
}
