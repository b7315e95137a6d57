package models

import "time"

// ExerciseType discriminates the two exercise variants.
type ExerciseType string

const (
	Weights ExerciseType = "weights"
	Cardio  ExerciseType = "cardio"
)

// Valid reports whether t is a known exercise type.
func (t ExerciseType) Valid() bool {
	switch t {
	case Weights, Cardio:
		return true
	}
	return false
}

// Set is one performed set of a weights exercise.
type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// Exercise is an exercise as performed in a workout. Sets is used by the
// weights variant, Duration (minutes) and Distance (km) by the cardio one.
type Exercise struct {
	Name     string       `json:"name"`
	Type     ExerciseType `json:"type"`
	Sets     []Set        `json:"sets,omitempty"`
	Duration float64      `json:"duration,omitempty"`
	Distance float64      `json:"distance,omitempty"`
}

// MaxWeight returns the heaviest set weight, or 0 for cardio or no sets.
func (e Exercise) MaxWeight() float64 {
	if e.Type != Weights {
		return 0
	}
	var max float64
	for _, s := range e.Sets {
		if s.Weight > max {
			max = s.Weight
		}
	}
	return max
}

// Volume returns the sum of reps*weight over all sets.
func (e Exercise) Volume() float64 {
	if e.Type != Weights {
		return 0
	}
	var v float64
	for _, s := range e.Sets {
		v += float64(s.Reps) * s.Weight
	}
	return v
}

// Workout is a dated record of performed exercises.
// ID and Date are assigned once on creation and survive edits.
type Workout struct {
	ID          string     `json:"id"`
	Date        time.Time  `json:"date"`
	RoutineName string     `json:"routineName"`
	Exercises   []Exercise `json:"exercises"`
}

// DefaultWorkoutName labels workouts saved without a name.
const DefaultWorkoutName = "Workout"

// WorkoutDraft is what the workout editor submits.
type WorkoutDraft struct {
	RoutineName string     `json:"routineName"`
	Exercises   []Exercise `json:"exercises"`
}

// Clone returns a deep copy of w.
func (w Workout) Clone() Workout {
	c := w
	c.Exercises = cloneExercises(w.Exercises)
	return c
}

func cloneExercises(in []Exercise) []Exercise {
	if in == nil {
		return nil
	}
	out := make([]Exercise, len(in))
	for i, ex := range in {
		out[i] = ex
		if ex.Sets != nil {
			out[i].Sets = append([]Set(nil), ex.Sets...)
		}
	}
	return out
}
