// Package records maintains the personal-record index: the heaviest single
// set ever logged per exercise name.
package records

import (
	"sort"

	"github.com/claude/liftlog/internal/models"
)

// UpdateFromWorkout raises records in idx that w beats and returns the ones
// it set or improved. It never lowers or removes a record, so it is only
// sound for additions; use RecomputeAll after a workout is removed.
func UpdateFromWorkout(idx models.RecordIndex, w models.Workout) []models.NewRecord {
	var improved []models.NewRecord
	for _, ex := range w.Exercises {
		if ex.Type != models.Weights {
			continue
		}
		max := ex.MaxWeight()
		if max <= 0 {
			continue
		}
		if cur, ok := idx[ex.Name]; ok && max <= cur.Weight {
			continue
		}
		idx[ex.Name] = models.PersonalRecord{Weight: max, Date: w.Date}
		improved = append(improved, models.NewRecord{Name: ex.Name, Weight: max})
	}
	return improved
}

// RecomputeAll rebuilds the index from scratch over workouts.
func RecomputeAll(workouts []models.Workout) models.RecordIndex {
	idx := models.RecordIndex{}
	for _, w := range workouts {
		UpdateFromWorkout(idx, w)
	}
	return idx
}

// Entry is one row of the records list.
type Entry struct {
	Name string `json:"name"`
	models.PersonalRecord
}

// Sorted returns the index as a list ordered by exercise name.
func Sorted(idx models.RecordIndex) []Entry {
	entries := make([]Entry, 0, len(idx))
	for name, pr := range idx {
		entries = append(entries, Entry{Name: name, PersonalRecord: pr})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
