// Package analytics holds read-only queries over the workout history:
// streaks, weekly counts, exercise name lists, per-exercise weight series
// and volume bucketing. Nothing here mutates its inputs.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Summary is the headline stats block.
type Summary struct {
	TotalWorkouts int `json:"total_workouts"`
	ThisWeek      int `json:"this_week"`
	Streak        int `json:"streak"`
}

// Summarize computes Summary as of now.
func Summarize(workouts []models.Workout, now time.Time) Summary {
	return Summary{
		TotalWorkouts: len(workouts),
		ThisWeek:      ThisWeekCount(workouts, now),
		Streak:        Streak(workouts, now),
	}
}

// Recent returns up to n workouts, newest first.
func Recent(workouts []models.Workout, n int) []models.Workout {
	out := append([]models.Workout(nil), workouts...)
	sortNewestFirst(out)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func sortNewestFirst(ws []models.Workout) {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Date.After(ws[j].Date) })
}

// WeightExerciseNames returns the distinct names of weights exercises in
// the history, sorted ascending.
func WeightExerciseNames(workouts []models.Workout) []string {
	names := make(map[string]bool)
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			if ex.Type == models.Weights {
				names[ex.Name] = true
			}
		}
	}
	return sortedKeys(names)
}

// AllExerciseNames returns the distinct exercise names across history and
// routine templates, sorted ascending.
func AllExerciseNames(workouts []models.Workout, routines []models.Routine) []string {
	names := make(map[string]bool)
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			names[ex.Name] = true
		}
	}
	for _, r := range routines {
		for _, ex := range r.Exercises {
			names[ex.Name] = true
		}
	}
	return sortedKeys(names)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultSuggestions is how many autocomplete matches Suggest returns when
// limit is not positive.
const DefaultSuggestions = 5

// Suggest returns names containing query, case-insensitively, skipping a
// name equal to the query itself. Input order is kept.
func Suggest(names []string, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestions
	}
	var out []string
	for _, n := range names {
		ln := strings.ToLower(n)
		if ln == q || !strings.Contains(ln, q) {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out
}

// SeriesPoint is one point of an exercise's weight trend.
type SeriesPoint struct {
	Date      time.Time `json:"date"`
	MaxWeight float64   `json:"max_weight"`
}

// ExerciseSeries returns, for every workout with a weights exercise named
// exactly name, its heaviest set, ordered by workout date. Exercises whose
// heaviest set is 0 are skipped. Fewer than two points is a valid result;
// callers render it as insufficient data.
func ExerciseSeries(workouts []models.Workout, name string) []SeriesPoint {
	ordered := append([]models.Workout(nil), workouts...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	var points []SeriesPoint
	for _, w := range ordered {
		for _, ex := range w.Exercises {
			if ex.Type != models.Weights || ex.Name != name {
				continue
			}
			if max := ex.MaxWeight(); max > 0 {
				points = append(points, SeriesPoint{Date: w.Date, MaxWeight: max})
			}
		}
	}
	return points
}

// WorkoutVolume sums reps*weight over all weights sets of w.
func WorkoutVolume(w models.Workout) float64 {
	var v float64
	for _, ex := range w.Exercises {
		v += ex.Volume()
	}
	return v
}

// Period selects the volume bucket size.
type Period string

const (
	Week  Period = "week"
	Month Period = "month"
)

// ParsePeriod validates a period name. Empty means Week.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(s)) {
	case Week, "":
		return Week, nil
	case Month:
		return Month, nil
	}
	return "", fmt.Errorf("unknown period %q (want week or month)", s)
}

// MaxVolumeBuckets is how many of the most recent buckets VolumeByPeriod keeps.
const MaxVolumeBuckets = 8

// VolumeBucket is the total volume of one week or month.
type VolumeBucket struct {
	Key    string  `json:"key"`
	Volume float64 `json:"volume"`

	order int
}

// VolumeByPeriod groups workout volume by week ("W<n>") or month
// ("YYYY-MM") of the workout date in loc, ascending, keeping the last
// MaxVolumeBuckets buckets.
//
// Week numbers are not ISO weeks: n = ceil((days since Jan 1 + Jan 1
// weekday + 1) / 7) with Sunday = 0, and carry no year, so the same week
// of different years shares a bucket.
func VolumeByPeriod(workouts []models.Workout, period Period, loc *time.Location) []VolumeBucket {
	buckets := make(map[string]*VolumeBucket)
	for _, w := range workouts {
		d := w.Date.In(loc)
		var key string
		var order int
		if period == Month {
			key = fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
			order = d.Year()*100 + int(d.Month())
		} else {
			order = weekNumber(d)
			key = fmt.Sprintf("W%d", order)
		}
		b, ok := buckets[key]
		if !ok {
			b = &VolumeBucket{Key: key, order: order}
			buckets[key] = b
		}
		b.Volume += WorkoutVolume(w)
	}

	out := make([]VolumeBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].order < out[j].order })
	if len(out) > MaxVolumeBuckets {
		out = out[len(out)-MaxVolumeBuckets:]
	}
	return out
}

func weekNumber(d time.Time) int {
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, d.Location())
	days := d.Sub(jan1).Hours() / 24
	return int(math.Ceil((days + float64(jan1.Weekday()) + 1) / 7))
}

// ExerciseLabel is the short tag shown on workout cards, e.g.
// "Bench · 3s" or "Run · 30min".
func ExerciseLabel(ex models.Exercise) string {
	switch ex.Type {
	case models.Cardio:
		return fmt.Sprintf("%s · %smin", ex.Name, formatNumber(ex.Duration))
	default:
		return fmt.Sprintf("%s · %ds", ex.Name, len(ex.Sets))
	}
}

func formatNumber(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
