package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

const recentWorkoutDays = 14

func (h *handlers) summary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := h.ds.Stats(ctx)
	if err != nil {
		return nil, err
	}

	recs, err := h.ds.PersonalRecords(ctx)
	if err != nil {
		h.log.Warn("summary: records query failed", "error", err)
	}

	latest, err := h.ds.RecentWorkouts(ctx, 1)
	if err != nil {
		h.log.Warn("summary: recent workouts query failed", "error", err)
	}

	summary := map[string]any{
		"stats":            stats,
		"personal_records": recs,
	}
	if len(latest) > 0 {
		summary["latest_workout"] = viewWorkout(latest[0])
	}

	return jsonContents(req.Params.URI, summary)
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -recentWorkoutDays)

	workouts, err := h.ds.Workouts(ctx, start, end)
	if err != nil {
		return nil, err
	}

	views := make([]workoutView, 0, len(workouts))
	for _, w := range workouts {
		views = append(views, viewWorkout(w))
	}
	return jsonContents(req.Params.URI, views)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
