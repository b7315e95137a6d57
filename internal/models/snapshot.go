package models

import "time"

// PersonalRecord is the heaviest single set logged for an exercise name and
// the date of the workout it was set in.
type PersonalRecord struct {
	Weight float64   `json:"weight"`
	Date   time.Time `json:"date"`
}

// RecordIndex maps exercise name (exact, case-sensitive) to its record.
type RecordIndex map[string]PersonalRecord

// NewRecord is a record newly set or improved by a saved workout.
type NewRecord struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Snapshot is the root aggregate persisted as one blob.
type Snapshot struct {
	Routines        []Routine   `json:"routines"`
	Workouts        []Workout   `json:"workouts"`
	PersonalRecords RecordIndex `json:"personalRecords"`
}

// NewSnapshot returns an empty snapshot with non-nil collections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Routines:        []Routine{},
		Workouts:        []Workout{},
		PersonalRecords: RecordIndex{},
	}
}

// Normalize replaces nil collections with empty ones so the snapshot
// always serializes as [] and {} rather than null.
func (s *Snapshot) Normalize() {
	if s.Routines == nil {
		s.Routines = []Routine{}
	}
	if s.Workouts == nil {
		s.Workouts = []Workout{}
	}
	if s.PersonalRecords == nil {
		s.PersonalRecords = RecordIndex{}
	}
}
