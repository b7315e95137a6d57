package tracker

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
)

// ImportedWorkout is a workout from another app with its original date.
type ImportedWorkout struct {
	Date  time.Time
	Draft models.WorkoutDraft
}

// ImportResult counts what ImportWorkouts did.
type ImportResult struct {
	Received   int      `json:"received"`
	Inserted   int      `json:"inserted"`
	Duplicates int      `json:"duplicates"`
	Rejected   int      `json:"rejected"`
	Reasons    []string `json:"reasons,omitempty"`
}

// ImportWorkouts adds workouts keeping their source dates. Entries failing
// validation are rejected, and entries whose date and name already exist
// are skipped, so re-importing the same export is harmless. The record
// index is rebuilt and the snapshot saved once.
func (t *Tracker) ImportWorkouts(ctx context.Context, in []ImportedWorkout) (ImportResult, error) {
	res := ImportResult{Received: len(in)}

	t.mu.Lock()
	defer t.mu.Unlock()

	type key struct {
		unix int64
		name string
	}
	existing := make(map[key]bool, len(t.snap.Workouts))
	for _, w := range t.snap.Workouts {
		existing[key{w.Date.UnixNano(), w.RoutineName}] = true
	}

	for _, iw := range in {
		if err := validateWorkout(iw.Draft); err != nil {
			res.Rejected++
			res.Reasons = append(res.Reasons, iw.Date.Format(time.DateOnly)+": "+err.Error())
			continue
		}
		k := key{iw.Date.UnixNano(), workoutName(iw.Draft.RoutineName)}
		if existing[k] {
			res.Duplicates++
			continue
		}
		existing[k] = true
		t.snap.Workouts = append(t.snap.Workouts, models.Workout{
			ID:          t.ids.NewID(),
			Date:        iw.Date,
			RoutineName: k.name,
			Exercises:   iw.Draft.Exercises,
		}.Clone())
		res.Inserted++
	}

	t.log.Info("workouts imported",
		"received", res.Received,
		"inserted", res.Inserted,
		"duplicates", res.Duplicates,
		"rejected", res.Rejected,
	)
	if res.Inserted == 0 {
		return res, nil
	}
	t.snap.PersonalRecords = records.RecomputeAll(t.snap.Workouts)
	return res, t.save(ctx)
}
