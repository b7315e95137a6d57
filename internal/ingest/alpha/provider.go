package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/tracker"
)

// Importer stores imported workouts. *tracker.Tracker satisfies it.
type Importer interface {
	ImportWorkouts(ctx context.Context, in []tracker.ImportedWorkout) (tracker.ImportResult, error)
}

// Provider processes Alpha Progression CSV exports.
type Provider struct {
	dst Importer
	loc *time.Location
	log *slog.Logger
}

// NewProvider creates a new Alpha Progression ingest provider. Session
// times are read in loc.
func NewProvider(dst Importer, loc *time.Location, log *slog.Logger) *Provider {
	return &Provider{dst: dst, loc: loc, log: log}
}

// Ingest parses a CSV export and imports its sessions as workouts.
// Warmup sets are dropped. Re-importing an export skips the sessions
// already present.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	sessions, err := Parse(r, p.loc)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	result := &ingest.Result{SessionsReceived: len(sessions)}
	in := make([]tracker.ImportedWorkout, 0, len(sessions))
	for _, s := range sessions {
		w, sets, warmups := convert(s)
		result.SetsReceived += sets
		result.WarmupsSkipped += warmups
		in = append(in, w)
	}
	if len(in) == 0 {
		result.Message = "no sessions found"
		return result, nil
	}

	res, err := p.dst.ImportWorkouts(ctx, in)
	result.WorkoutsInserted = res.Inserted
	result.WorkoutsSkipped = res.Duplicates
	result.WorkoutsRejected = res.Rejected
	result.RejectedReasons = res.Reasons
	if err != nil {
		return result, fmt.Errorf("importing workouts: %w", err)
	}

	p.log.Info("alpha export imported",
		"sessions", result.SessionsReceived,
		"inserted", result.WorkoutsInserted,
		"skipped", result.WorkoutsSkipped,
		"rejected", result.WorkoutsRejected,
	)
	return result, nil
}

// convert turns a session into a workout draft, returning the number of
// sets read and of warmups dropped. Exercises left without working sets
// are omitted.
func convert(s Session) (tracker.ImportedWorkout, int, int) {
	var sets, warmups int
	d := models.WorkoutDraft{RoutineName: s.Name}
	for _, ex := range s.Exercises {
		out := models.Exercise{Name: ex.Name, Type: models.Weights}
		for _, set := range ex.Sets {
			sets++
			if set.IsWarmup {
				warmups++
				continue
			}
			out.Sets = append(out.Sets, models.Set{Reps: set.Reps, Weight: set.WeightKg})
		}
		if len(out.Sets) > 0 {
			d.Exercises = append(d.Exercises, out)
		}
	}
	return tracker.ImportedWorkout{Date: s.Date, Draft: d}, sets, warmups
}
