package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/records"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Workouts(ctx context.Context, start, end time.Time) ([]models.Workout, error) {
	params := url.Values{}
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))

	var workouts []models.Workout
	if err := c.getJSON(ctx, "/api/v1/workouts", params, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *HTTPClient) RecentWorkouts(ctx context.Context, limit int) ([]models.Workout, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var workouts []models.Workout
	if err := c.getJSON(ctx, "/api/v1/workouts/recent", params, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (c *HTTPClient) PersonalRecords(ctx context.Context) ([]records.Entry, error) {
	var entries []records.Entry
	if err := c.getJSON(ctx, "/api/v1/records", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (analytics.Summary, error) {
	var s analytics.Summary
	err := c.getJSON(ctx, "/api/v1/stats", nil, &s)
	return s, err
}

func (c *HTTPClient) ExerciseSeries(ctx context.Context, exercise string) ([]analytics.SeriesPoint, error) {
	params := url.Values{}
	params.Set("exercise", exercise)

	var resp struct {
		Points []analytics.SeriesPoint `json:"points"`
	}
	if err := c.getJSON(ctx, "/api/v1/progress/series", params, &resp); err != nil {
		return nil, err
	}
	return resp.Points, nil
}

func (c *HTTPClient) Volume(ctx context.Context, period analytics.Period) ([]analytics.VolumeBucket, error) {
	params := url.Values{}
	params.Set("period", string(period))

	var resp struct {
		Buckets []analytics.VolumeBucket `json:"buckets"`
	}
	if err := c.getJSON(ctx, "/api/v1/progress/volume", params, &resp); err != nil {
		return nil, err
	}
	return resp.Buckets, nil
}

func (c *HTTPClient) Routines(ctx context.Context) ([]models.Routine, error) {
	var routines []models.Routine
	if err := c.getJSON(ctx, "/api/v1/routines", nil, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

func (c *HTTPClient) ExerciseNames(ctx context.Context, kind string) ([]string, error) {
	params := url.Values{}
	params.Set("kind", kind)

	var names []string
	if err := c.getJSON(ctx, "/api/v1/exercises", params, &names); err != nil {
		return nil, err
	}
	return names, nil
}
