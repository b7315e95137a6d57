// Package tracker owns the in-memory snapshot and applies every mutation to
// it: workouts, routines and the personal-record index that follows them.
// Each mutation is applied in full and then persisted before returning.
package tracker

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/claude/liftlog/internal/clock"
	"github.com/claude/liftlog/internal/ids"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
	"github.com/claude/liftlog/internal/routines"
)

// Store loads and persists the snapshot. *storage.Store satisfies it.
type Store interface {
	Load(ctx context.Context) *models.Snapshot
	Save(ctx context.Context, snap *models.Snapshot) error
}

// Tracker is the entity repository over a single snapshot.
type Tracker struct {
	mu    sync.RWMutex
	snap  *models.Snapshot
	store Store
	clock clock.Clock
	ids   ids.Generator
	log   *slog.Logger
}

// New loads the snapshot from store and returns a Tracker over it.
func New(ctx context.Context, store Store, clk clock.Clock, gen ids.Generator, log *slog.Logger) *Tracker {
	snap := store.Load(ctx)
	snap.Normalize()
	return &Tracker{snap: snap, store: store, clock: clk, ids: gen, log: log}
}

func (t *Tracker) save(ctx context.Context) error {
	if err := t.store.Save(ctx, t.snap); err != nil {
		t.log.Error("persisting snapshot failed, keeping in-memory state", "error", err)
		return err
	}
	return nil
}

// CreateWorkout validates d, stores it as a new workout dated now and
// returns it with the personal records it set or improved.
func (t *Tracker) CreateWorkout(ctx context.Context, d models.WorkoutDraft) (*models.Workout, []models.NewRecord, error) {
	if err := validateWorkout(d); err != nil {
		return nil, nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	w := models.Workout{
		ID:          t.ids.NewID(),
		Date:        t.clock.Now(),
		RoutineName: workoutName(d.RoutineName),
		Exercises:   d.Exercises,
	}.Clone()
	t.snap.Workouts = append(t.snap.Workouts, w)
	prs := records.UpdateFromWorkout(t.snap.PersonalRecords, w)

	t.log.Info("workout created", "id", w.ID, "exercises", len(w.Exercises), "new_records", len(prs))
	out := w.Clone()
	return &out, prs, t.save(ctx)
}

// UpdateWorkout replaces the name and exercises of workout id, keeping its
// id and date. The returned records are those the edit set or improved.
func (t *Tracker) UpdateWorkout(ctx context.Context, id string, d models.WorkoutDraft) (*models.Workout, []models.NewRecord, error) {
	if err := validateWorkout(d); err != nil {
		return nil, nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.workoutIndex(id)
	if i < 0 {
		return nil, nil, &NotFoundError{Kind: "workout", ID: id}
	}

	w := t.snap.Workouts[i]
	w.RoutineName = workoutName(d.RoutineName)
	w.Exercises = d.Exercises
	w = w.Clone()
	t.snap.Workouts[i] = w

	prs := records.UpdateFromWorkout(t.snap.PersonalRecords, w)
	// An edit can also lower a lift that held a record.
	t.snap.PersonalRecords = records.RecomputeAll(t.snap.Workouts)

	t.log.Info("workout updated", "id", w.ID, "exercises", len(w.Exercises), "new_records", len(prs))
	out := w.Clone()
	return &out, prs, t.save(ctx)
}

// DeleteWorkout removes workout id and rebuilds the record index.
// Deleting an unknown id is a no-op.
func (t *Tracker) DeleteWorkout(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.workoutIndex(id)
	if i < 0 {
		return nil
	}
	t.snap.Workouts = append(t.snap.Workouts[:i], t.snap.Workouts[i+1:]...)
	t.snap.PersonalRecords = records.RecomputeAll(t.snap.Workouts)

	t.log.Info("workout deleted", "id", id, "remaining", len(t.snap.Workouts))
	return t.save(ctx)
}

// CreateRoutine validates d and stores it as a new routine template.
func (t *Tracker) CreateRoutine(ctx context.Context, d models.RoutineDraft) (*models.Routine, error) {
	if err := validateRoutine(d); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	r := models.Routine{
		ID:        t.ids.NewID(),
		Name:      strings.TrimSpace(d.Name),
		Exercises: routines.NormalizeAll(d.Exercises),
	}
	t.snap.Routines = append(t.snap.Routines, r)

	t.log.Info("routine created", "id", r.ID, "name", r.Name)
	out := r.Clone()
	return &out, t.save(ctx)
}

// UpdateRoutine replaces the name and exercises of routine id.
func (t *Tracker) UpdateRoutine(ctx context.Context, id string, d models.RoutineDraft) (*models.Routine, error) {
	if err := validateRoutine(d); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.routineIndex(id)
	if i < 0 {
		return nil, &NotFoundError{Kind: "routine", ID: id}
	}
	r := &t.snap.Routines[i]
	r.Name = strings.TrimSpace(d.Name)
	r.Exercises = routines.NormalizeAll(d.Exercises)

	t.log.Info("routine updated", "id", r.ID, "name", r.Name)
	out := r.Clone()
	return &out, t.save(ctx)
}

// DeleteRoutine removes routine id. Workouts and records are unaffected.
// Deleting an unknown id is a no-op.
func (t *Tracker) DeleteRoutine(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.routineIndex(id)
	if i < 0 {
		return nil
	}
	t.snap.Routines = append(t.snap.Routines[:i], t.snap.Routines[i+1:]...)

	t.log.Info("routine deleted", "id", id)
	return t.save(ctx)
}

// SaveAsRoutine creates a routine from workout id, using each exercise's
// set count and first set as defaults.
func (t *Tracker) SaveAsRoutine(ctx context.Context, workoutID string) (*models.Routine, error) {
	w, err := t.Workout(workoutID)
	if err != nil {
		return nil, err
	}
	tmpl := routines.TemplateFromWorkout(*w)
	d := models.RoutineDraft{Name: tmpl.Name}
	for _, re := range tmpl.Exercises {
		d.Exercises = append(d.Exercises, models.RoutineExerciseDraft{RoutineExercise: re})
	}
	return t.CreateRoutine(ctx, d)
}

func (t *Tracker) workoutIndex(id string) int {
	for i, w := range t.snap.Workouts {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) routineIndex(id string) int {
	for i, r := range t.snap.Routines {
		if r.ID == id {
			return i
		}
	}
	return -1
}
