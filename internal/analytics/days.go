package analytics

import (
	"time"

	"github.com/claude/liftlog/internal/models"
)

// day is a local calendar date.
type day struct {
	y int
	m time.Month
	d int
}

func dayOf(t time.Time, loc *time.Location) day {
	y, m, d := t.In(loc).Date()
	return day{y, m, d}
}

// prev steps back one calendar day. time.Date normalizes d-1 across month
// and year boundaries and is not affected by DST-length days.
func (d day) prev() day {
	y, m, dd := time.Date(d.y, d.m, d.d-1, 12, 0, 0, 0, time.UTC).Date()
	return day{y, m, dd}
}

func workoutDays(workouts []models.Workout, loc *time.Location) map[day]bool {
	days := make(map[day]bool, len(workouts))
	for _, w := range workouts {
		days[dayOf(w.Date, loc)] = true
	}
	return days
}

// Streak counts consecutive local calendar days with at least one workout,
// ending today if today has a workout, else yesterday. It is 0 when neither
// day has one. Calendar days are taken in today's location.
func Streak(workouts []models.Workout, today time.Time) int {
	loc := today.Location()
	days := workoutDays(workouts, loc)

	check := dayOf(today, loc)
	if !days[check] {
		check = check.prev()
		if !days[check] {
			return 0
		}
	}

	streak := 0
	for days[check] {
		streak++
		check = check.prev()
	}
	return streak
}

// WeekStart returns Monday 00:00 of the week containing now, in now's location.
func WeekStart(now time.Time) time.Time {
	sinceMonday := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, now.Location())
}

// ThisWeekCount counts workouts dated on or after the most recent Monday
// 00:00 local time.
func ThisWeekCount(workouts []models.Workout, now time.Time) int {
	monday := WeekStart(now)
	n := 0
	for _, w := range workouts {
		if !w.Date.Before(monday) {
			n++
		}
	}
	return n
}

// OnDay returns the workouts whose local calendar date equals that of
// date, newest first.
func OnDay(workouts []models.Workout, date time.Time) []models.Workout {
	loc := date.Location()
	want := dayOf(date, loc)
	var out []models.Workout
	for _, w := range workouts {
		if dayOf(w.Date, loc) == want {
			out = append(out, w)
		}
	}
	sortNewestFirst(out)
	return out
}

// WorkoutDays returns the days of the given month (1-based, ascending) on
// which at least one workout was logged.
func WorkoutDays(workouts []models.Workout, year int, month time.Month, loc *time.Location) []int {
	seen := make(map[int]bool)
	for _, w := range workouts {
		d := dayOf(w.Date, loc)
		if d.y == year && d.m == month {
			seen[d.d] = true
		}
	}
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	days := make([]int, 0, len(seen))
	for d := 1; d <= last; d++ {
		if seen[d] {
			days = append(days, d)
		}
	}
	return days
}
