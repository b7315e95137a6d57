package mcp

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
	"github.com/claude/liftlog/internal/tracker"
)

// DataSource abstracts the data layer for MCP tools. Both Local (in-process
// tracker) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	// Workouts returns workouts dated in [start, end), newest first.
	Workouts(ctx context.Context, start, end time.Time) ([]models.Workout, error)
	RecentWorkouts(ctx context.Context, limit int) ([]models.Workout, error)
	PersonalRecords(ctx context.Context) ([]records.Entry, error)
	Stats(ctx context.Context) (analytics.Summary, error)
	ExerciseSeries(ctx context.Context, exercise string) ([]analytics.SeriesPoint, error)
	Volume(ctx context.Context, period analytics.Period) ([]analytics.VolumeBucket, error)
	Routines(ctx context.Context) ([]models.Routine, error)
	// ExerciseNames lists "weights" exercise names or, for "all", every name.
	ExerciseNames(ctx context.Context, kind string) ([]string, error)
}

// Local serves MCP queries from an in-process tracker.
type Local struct {
	T *tracker.Tracker
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = Local{}

func (l Local) Workouts(_ context.Context, start, end time.Time) ([]models.Workout, error) {
	var out []models.Workout
	for _, w := range l.T.Recent(-1) {
		if w.Date.Before(start) || !w.Date.Before(end) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (l Local) RecentWorkouts(_ context.Context, limit int) ([]models.Workout, error) {
	return l.T.Recent(limit), nil
}

func (l Local) PersonalRecords(_ context.Context) ([]records.Entry, error) {
	return l.T.RecordList(), nil
}

func (l Local) Stats(_ context.Context) (analytics.Summary, error) {
	return l.T.Summary(), nil
}

func (l Local) ExerciseSeries(_ context.Context, exercise string) ([]analytics.SeriesPoint, error) {
	return l.T.ExerciseSeries(exercise), nil
}

func (l Local) Volume(_ context.Context, period analytics.Period) ([]analytics.VolumeBucket, error) {
	return l.T.VolumeByPeriod(period), nil
}

func (l Local) Routines(_ context.Context) ([]models.Routine, error) {
	return l.T.Routines(), nil
}

func (l Local) ExerciseNames(_ context.Context, kind string) ([]string, error) {
	if kind == string(models.Weights) {
		return l.T.WeightExerciseNames(), nil
	}
	return l.T.AllExerciseNames(), nil
}
