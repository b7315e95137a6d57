package routines

import "github.com/claude/liftlog/internal/models"

// Normalize compacts a routine-editor exercise back into its stored form.
// Weights take the set count and the first set's reps and weight, falling
// back to the draft's existing defaults and then 3 sets of 10 at 0.
// Cardio takes the edited duration and distance, falling back to defaults.
func Normalize(d models.RoutineExerciseDraft) models.RoutineExercise {
	re := models.RoutineExercise{Name: d.Name, Type: d.Type}
	switch d.Type {
	case models.Cardio:
		re.DefaultDuration = orFloat(d.Duration, d.DefaultDuration)
		re.DefaultDistance = orFloat(d.Distance, d.DefaultDistance)
	default:
		re.Type = models.Weights
		if len(d.Sets) > 0 {
			re.DefaultSets = len(d.Sets)
			re.DefaultReps = d.Sets[0].Reps
			re.DefaultWeight = d.Sets[0].Weight
			break
		}
		re.DefaultSets = orInt(d.DefaultSets, fallbackSets)
		re.DefaultReps = orInt(d.DefaultReps, fallbackReps)
		re.DefaultWeight = d.DefaultWeight
	}
	return re
}

// NormalizeAll applies Normalize to every draft exercise.
func NormalizeAll(drafts []models.RoutineExerciseDraft) []models.RoutineExercise {
	out := make([]models.RoutineExercise, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, Normalize(d))
	}
	return out
}

// EditorDraft opens a stored routine in the editor. Weights exercises get
// DefaultSets working sets so that saving an untouched draft round-trips.
func EditorDraft(r models.Routine) models.RoutineDraft {
	d := models.RoutineDraft{Name: r.Name, Exercises: make([]models.RoutineExerciseDraft, 0, len(r.Exercises))}
	for _, re := range r.Exercises {
		ed := models.RoutineExerciseDraft{RoutineExercise: re}
		switch re.Type {
		case models.Cardio:
			ed.Duration = re.DefaultDuration
			ed.Distance = re.DefaultDistance
		default:
			ed.Sets = expand(re).Sets
		}
		d.Exercises = append(d.Exercises, ed)
	}
	return d
}
