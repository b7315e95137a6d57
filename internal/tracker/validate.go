package tracker

import (
	"strings"

	"github.com/claude/liftlog/internal/models"
)

func validateWorkout(d models.WorkoutDraft) error {
	if len(d.Exercises) == 0 {
		return invalid("exercises", "add at least one exercise")
	}
	for i, ex := range d.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return invalid("exercises", "exercise %d needs a name", i+1)
		}
		switch ex.Type {
		case models.Weights:
			if len(ex.Sets) == 0 {
				return invalid("exercises", "%s needs at least one set", ex.Name)
			}
			for j, s := range ex.Sets {
				if s.Reps < 0 || s.Weight < 0 {
					return invalid("exercises", "%s set %d has negative values", ex.Name, j+1)
				}
			}
		case models.Cardio:
			if ex.Duration < 0 || ex.Distance < 0 {
				return invalid("exercises", "%s has negative duration or distance", ex.Name)
			}
		default:
			return invalid("exercises", "%s has unknown type %q", ex.Name, ex.Type)
		}
	}
	return nil
}

func validateRoutine(d models.RoutineDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("name", "give the routine a name")
	}
	if len(d.Exercises) == 0 {
		return invalid("exercises", "add at least one exercise")
	}
	for _, ex := range d.Exercises {
		if !ex.Type.Valid() {
			return invalid("exercises", "%s has unknown type %q", ex.Name, ex.Type)
		}
	}
	return nil
}

func workoutName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return models.DefaultWorkoutName
}
