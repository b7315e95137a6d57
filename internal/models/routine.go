package models

// RoutineExercise is an exercise template. It only carries defaults used to
// generate a fresh workout, never performed data.
type RoutineExercise struct {
	Name            string       `json:"name"`
	Type            ExerciseType `json:"type"`
	DefaultSets     int          `json:"defaultSets,omitempty"`
	DefaultReps     int          `json:"defaultReps,omitempty"`
	DefaultWeight   float64      `json:"defaultWeight,omitempty"`
	DefaultDuration float64      `json:"defaultDuration,omitempty"`
	DefaultDistance float64      `json:"defaultDistance,omitempty"`
}

// Routine is a named, reusable workout template.
type Routine struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Exercises []RoutineExercise `json:"exercises"`
}

// RoutineExerciseDraft is the routine editor's working copy of an exercise.
// While editing it may carry a full Sets array or Duration/Distance values
// next to the stored defaults; saving compacts it back to defaults.
type RoutineExerciseDraft struct {
	RoutineExercise
	Sets     []Set   `json:"sets,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Distance float64 `json:"distance,omitempty"`
}

// RoutineDraft is what the routine editor submits.
type RoutineDraft struct {
	Name      string                 `json:"name"`
	Exercises []RoutineExerciseDraft `json:"exercises"`
}

// Clone returns a deep copy of r.
func (r Routine) Clone() Routine {
	c := r
	if r.Exercises != nil {
		c.Exercises = append([]RoutineExercise(nil), r.Exercises...)
	}
	return c
}
