// Package routines turns routine templates (or past workouts) into editable
// workout drafts and compacts routine-editor drafts back into templates.
package routines

import "github.com/claude/liftlog/internal/models"

const (
	fallbackSets = 3
	fallbackReps = 10
)

// FromRoutine expands a routine into fresh workout exercises.
func FromRoutine(r models.Routine) []models.Exercise {
	out := make([]models.Exercise, 0, len(r.Exercises))
	for _, re := range r.Exercises {
		out = append(out, expand(re))
	}
	return out
}

// FromWorkout expands a past workout for "repeat": it is first reduced to a
// template and then materialized like any routine.
func FromWorkout(w models.Workout) []models.Exercise {
	return FromRoutine(TemplateFromWorkout(w))
}

// WorkoutDraft returns a workout editor draft started from r.
func WorkoutDraft(r models.Routine) models.WorkoutDraft {
	return models.WorkoutDraft{RoutineName: r.Name, Exercises: FromRoutine(r)}
}

// RepeatDraft returns a workout editor draft repeating w.
func RepeatDraft(w models.Workout) models.WorkoutDraft {
	return models.WorkoutDraft{RoutineName: w.RoutineName, Exercises: FromWorkout(w)}
}

func expand(re models.RoutineExercise) models.Exercise {
	switch re.Type {
	case models.Cardio:
		return models.Exercise{
			Name:     re.Name,
			Type:     models.Cardio,
			Duration: re.DefaultDuration,
			Distance: re.DefaultDistance,
		}
	default:
		n := orInt(re.DefaultSets, fallbackSets)
		set := models.Set{Reps: orInt(re.DefaultReps, fallbackReps), Weight: re.DefaultWeight}
		sets := make([]models.Set, n)
		for i := range sets {
			sets[i] = set
		}
		return models.Exercise{Name: re.Name, Type: models.Weights, Sets: sets}
	}
}

// TemplateFromWorkout reduces performed exercises to defaults: the set count
// and the first set's reps and weight, or the duration and distance.
func TemplateFromWorkout(w models.Workout) models.Routine {
	r := models.Routine{Name: w.RoutineName, Exercises: make([]models.RoutineExercise, 0, len(w.Exercises))}
	for _, ex := range w.Exercises {
		re := models.RoutineExercise{Name: ex.Name, Type: ex.Type}
		switch ex.Type {
		case models.Cardio:
			re.DefaultDuration = ex.Duration
			re.DefaultDistance = ex.Distance
		default:
			re.Type = models.Weights
			re.DefaultSets = len(ex.Sets)
			re.DefaultReps = fallbackReps
			if len(ex.Sets) > 0 {
				re.DefaultReps = ex.Sets[0].Reps
				re.DefaultWeight = ex.Sets[0].Weight
			}
		}
		r.Exercises = append(r.Exercises, re)
	}
	return r
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func orFloat(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
