package tracker

import (
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
	"github.com/claude/liftlog/internal/routines"
)

// Workouts returns copies of all workouts in stored order.
func (t *Tracker) Workouts() []models.Workout {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.workouts()
}

func (t *Tracker) workouts() []models.Workout {
	out := make([]models.Workout, len(t.snap.Workouts))
	for i, w := range t.snap.Workouts {
		out[i] = w.Clone()
	}
	return out
}

// Workout returns a copy of workout id.
func (t *Tracker) Workout(id string) (*models.Workout, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i := t.workoutIndex(id)
	if i < 0 {
		return nil, &NotFoundError{Kind: "workout", ID: id}
	}
	w := t.snap.Workouts[i].Clone()
	return &w, nil
}

// Routines returns copies of all routines in stored order.
func (t *Tracker) Routines() []models.Routine {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.routines()
}

func (t *Tracker) routines() []models.Routine {
	out := make([]models.Routine, len(t.snap.Routines))
	for i, r := range t.snap.Routines {
		out[i] = r.Clone()
	}
	return out
}

// Routine returns a copy of routine id.
func (t *Tracker) Routine(id string) (*models.Routine, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i := t.routineIndex(id)
	if i < 0 {
		return nil, &NotFoundError{Kind: "routine", ID: id}
	}
	r := t.snap.Routines[i].Clone()
	return &r, nil
}

// PersonalRecords returns a copy of the record index.
func (t *Tracker) PersonalRecords() models.RecordIndex {
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx := make(models.RecordIndex, len(t.snap.PersonalRecords))
	for name, pr := range t.snap.PersonalRecords {
		idx[name] = pr
	}
	return idx
}

// RecordList returns the records ordered by exercise name.
func (t *Tracker) RecordList() []records.Entry {
	return records.Sorted(t.PersonalRecords())
}

// Now returns the tracker clock's current time.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// Location is the zone calendar days are computed in.
func (t *Tracker) Location() *time.Location {
	return t.clock.Now().Location()
}

// Summary returns total, this-week and streak counts as of now.
func (t *Tracker) Summary() analytics.Summary {
	return analytics.Summarize(t.Workouts(), t.clock.Now())
}

// Streak returns the current day streak.
func (t *Tracker) Streak() int {
	return analytics.Streak(t.Workouts(), t.clock.Now())
}

// ThisWeekCount returns the number of workouts since Monday.
func (t *Tracker) ThisWeekCount() int {
	return analytics.ThisWeekCount(t.Workouts(), t.clock.Now())
}

// Recent returns up to n workouts, newest first.
func (t *Tracker) Recent(n int) []models.Workout {
	return analytics.Recent(t.Workouts(), n)
}

// OnDay returns the workouts of one local calendar day, newest first.
func (t *Tracker) OnDay(year int, month time.Month, day int) []models.Workout {
	return analytics.OnDay(t.Workouts(), time.Date(year, month, day, 0, 0, 0, 0, t.Location()))
}

// CalendarDays returns the days of a month that have a workout.
func (t *Tracker) CalendarDays(year int, month time.Month) []int {
	return analytics.WorkoutDays(t.Workouts(), year, month, t.Location())
}

// WeightExerciseNames lists the weights exercises ever logged.
func (t *Tracker) WeightExerciseNames() []string {
	return analytics.WeightExerciseNames(t.Workouts())
}

// AllExerciseNames lists every exercise name in history and routines.
func (t *Tracker) AllExerciseNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return analytics.AllExerciseNames(t.snap.Workouts, t.snap.Routines)
}

// Suggest returns autocomplete candidates for query.
func (t *Tracker) Suggest(query string, limit int) []string {
	return analytics.Suggest(t.AllExerciseNames(), query, limit)
}

// ExerciseSeries returns the max-weight trend of one exercise.
func (t *Tracker) ExerciseSeries(name string) []analytics.SeriesPoint {
	return analytics.ExerciseSeries(t.Workouts(), name)
}

// VolumeByPeriod returns recent weekly or monthly volume.
func (t *Tracker) VolumeByPeriod(p analytics.Period) []analytics.VolumeBucket {
	return analytics.VolumeByPeriod(t.Workouts(), p, t.Location())
}

// StartFromRoutine returns a workout draft generated from routine id.
func (t *Tracker) StartFromRoutine(id string) (models.WorkoutDraft, error) {
	r, err := t.Routine(id)
	if err != nil {
		return models.WorkoutDraft{}, err
	}
	return routines.WorkoutDraft(*r), nil
}

// RepeatWorkout returns a workout draft repeating workout id.
func (t *Tracker) RepeatWorkout(id string) (models.WorkoutDraft, error) {
	w, err := t.Workout(id)
	if err != nil {
		return models.WorkoutDraft{}, err
	}
	return routines.RepeatDraft(*w), nil
}

// EditRoutine returns routine id opened as an editor draft.
func (t *Tracker) EditRoutine(id string) (models.RoutineDraft, error) {
	r, err := t.Routine(id)
	if err != nil {
		return models.RoutineDraft{}, err
	}
	return routines.EditorDraft(*r), nil
}
