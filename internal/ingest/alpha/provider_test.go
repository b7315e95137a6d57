package alpha

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/tracker"
)

type fakeImporter struct {
	got []tracker.ImportedWorkout
	err error
}

func (f *fakeImporter) ImportWorkouts(_ context.Context, in []tracker.ImportedWorkout) (tracker.ImportResult, error) {
	f.got = append(f.got, in...)
	return tracker.ImportResult{Received: len(in), Inserted: len(in)}, f.err
}

func newTestProvider(dst Importer) *Provider {
	return NewProvider(dst, time.UTC, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// TestIngestConvertsSessions verifies sessions become workout drafts with
// warmups dropped and bodyweight-plus load kept as the set weight.
func TestIngestConvertsSessions(t *testing.T) {
	dst := &fakeImporter{}
	res, err := newTestProvider(dst).Ingest(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.SessionsReceived != 2 || res.WorkoutsInserted != 2 {
		t.Errorf("result = %+v", res)
	}
	if res.WarmupsSkipped != 8 {
		t.Errorf("warmups skipped = %d, want 8", res.WarmupsSkipped)
	}
	if len(dst.got) != 2 {
		t.Fatalf("imported = %d, want 2", len(dst.got))
	}

	legs := dst.got[0]
	if legs.Draft.RoutineName != "Legs · Day 2 · Week 4 · Push-Pull-Legs" {
		t.Errorf("name = %q", legs.Draft.RoutineName)
	}
	if !legs.Date.Equal(time.Date(2026, 2, 19, 4, 54, 0, 0, time.UTC)) {
		t.Errorf("date = %v", legs.Date)
	}
	hack := legs.Draft.Exercises[0]
	if hack.Name != "Hack Squats" || hack.Type != models.Weights || len(hack.Sets) != 3 {
		t.Fatalf("hack squats = %+v", hack)
	}
	if hack.Sets[0] != (models.Set{Reps: 8, Weight: 115}) {
		t.Errorf("first working set = %+v", hack.Sets[0])
	}
	if hyper := legs.Draft.Exercises[2]; hyper.Sets[0].Weight != 35 {
		t.Errorf("bodyweight-plus weight = %v, want 35", hyper.Sets[0].Weight)
	}
	if calf := legs.Draft.Exercises[4]; calf.Sets[0].Weight != 157.5 {
		t.Errorf("calf weight = %v, want 157.5", calf.Sets[0].Weight)
	}
}

// TestIngestDropsWarmupOnlyExercises verifies exercises with only warmups
// are left out of the workout.
func TestIngestDropsWarmupOnlyExercises(t *testing.T) {
	csv := `"Push";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench Press · Barbell · 6 reps";"WU1 · 22,5 kg · 10 reps"
#;KG;REPS;RIR
"2. Dips · Bodyweight · 8 reps"
#;KG;REPS;RIR
1;+10;8;1
`
	dst := &fakeImporter{}
	if _, err := newTestProvider(dst).Ingest(context.Background(), strings.NewReader(csv)); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	exs := dst.got[0].Draft.Exercises
	if len(exs) != 1 || exs[0].Name != "Dips" {
		t.Errorf("exercises = %+v, want only Dips", exs)
	}
}

// TestIngestEmpty verifies an export without sessions imports nothing.
func TestIngestEmpty(t *testing.T) {
	dst := &fakeImporter{}
	res, err := newTestProvider(dst).Ingest(context.Background(), strings.NewReader("\n\n"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.SessionsReceived != 0 || dst.got != nil {
		t.Errorf("result = %+v, imported %d", res, len(dst.got))
	}
}

// TestIngestPropagatesImportError verifies storage failures are returned
// with the partial result.
func TestIngestPropagatesImportError(t *testing.T) {
	dst := &fakeImporter{err: errors.New("disk full")}
	res, err := newTestProvider(dst).Ingest(context.Background(), strings.NewReader(sampleCSV))
	if err == nil {
		t.Fatal("expected error")
	}
	if res == nil || res.WorkoutsInserted != 2 {
		t.Errorf("result = %+v", res)
	}
}
