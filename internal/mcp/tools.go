package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultWorkoutDays = 30

// defaultTimeRange returns start/end defaulting to the last days days.
// A date-only end includes that whole day.
func defaultTimeRange(startStr, endStr string, days int) (time.Time, time.Time, error) {
	var start, end time.Time

	if endStr != "" {
		t, dateOnly, err := parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
		if dateOnly {
			end = end.AddDate(0, 0, 1)
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		t, _, err := parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	} else {
		start = end.AddDate(0, 0, -days)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, bool, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, false, nil
	}
	t, err = time.Parse(time.DateOnly, s)
	if err == nil {
		return t, true, nil
	}
	return time.Time{}, false, err
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query logged workouts, newest first. Each workout lists its exercises with sets (reps x kg) or cardio duration/distance, plus total volume (sum of reps x weight)."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD), inclusive. Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Only workouts containing this exercise (partial, case-insensitive match, e.g. 'bench')")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Personal records: the heaviest single set ever logged per exercise name, with the date it was set."),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial, case-insensitive match)")),
)

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Headline stats: total workouts logged, workouts since Monday, and the current streak of consecutive training days."),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Weight progression of one exercise: the heaviest set of each workout it appears in, oldest first, plus the current record."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name (see list_exercises)")),
)

var toolGetVolume = mcp.NewTool("get_volume",
	mcp.WithDescription("Training volume (sum of reps x weight) per week or month for the 8 most recent periods."),
	mcp.WithString("period", mcp.Description("Aggregation period. Defaults to 'week'."), mcp.Enum("week", "month")),
)

var toolListRoutines = mcp.NewTool("list_routines",
	mcp.WithDescription("List saved routines (workout templates) with their default sets, reps and weights."),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List distinct exercise names from the workout history and routines."),
	mcp.WithString("kind", mcp.Description("'weights' for weights exercises from history only, 'all' for every name. Defaults to 'all'."), mcp.Enum("weights", "all")),
)

// --- Tool handlers ---

type workoutView struct {
	models.Workout
	Volume float64  `json:"volume"`
	Labels []string `json:"labels"`
}

func viewWorkout(w models.Workout) workoutView {
	v := workoutView{Workout: w, Volume: analytics.WorkoutVolume(w)}
	for _, ex := range w.Exercises {
		v.Labels = append(v.Labels, analytics.ExerciseLabel(ex))
	}
	return v
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func hasExercise(w models.Workout, filter string) bool {
	for _, ex := range w.Exercises {
		if containsFold(ex.Name, filter) {
			return true
		}
	}
	return false
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), defaultWorkoutDays)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	workouts, err := h.ds.Workouts(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	filter := req.GetString("exercise", "")
	views := make([]workoutView, 0, len(workouts))
	for _, w := range workouts {
		if filter != "" && !hasExercise(w, filter) {
			continue
		}
		views = append(views, viewWorkout(w))
	}
	return jsonResult(views)
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.ds.PersonalRecords(ctx)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	filter := req.GetString("exercise", "")
	out := make([]records.Entry, 0, len(entries))
	for _, e := range entries {
		if filter == "" || containsFold(e.Name, filter) {
			out = append(out, e)
		}
	}
	return jsonResult(out)
}

func (h *handlers) getTrainingStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.Stats(ctx)
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats)
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	points, err := h.ds.ExerciseSeries(ctx, exercise)
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	resp := map[string]any{
		"exercise":    exercise,
		"points":      points,
		"enough_data": len(points) >= 2,
	}
	if entries, err := h.ds.PersonalRecords(ctx); err == nil {
		for _, e := range entries {
			if e.Name == exercise {
				resp["record"] = e.PersonalRecord
			}
		}
	} else {
		h.log.Warn("mcp get_exercise_progress: records query failed", "error", err)
	}
	return jsonResult(resp)
}

func (h *handlers) getVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period, err := analytics.ParsePeriod(req.GetString("period", "week"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	buckets, err := h.ds.Volume(ctx, period)
	if err != nil {
		h.log.Error("mcp get_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(map[string]any{"period": period, "buckets": buckets})
}

func (h *handlers) listRoutines(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routines, err := h.ds.Routines(ctx)
	if err != nil {
		h.log.Error("mcp list_routines", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(routines)
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := req.GetString("kind", "all")
	if kind != "all" && kind != string(models.Weights) {
		return mcp.NewToolResultError("kind must be weights or all"), nil
	}

	names, err := h.ds.ExerciseNames(ctx, kind)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(names)
}
